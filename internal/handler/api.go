package handler

import (
	"log"
	"time"

	"github.com/folio/internal/content"
	"github.com/folio/internal/db"
	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

// statsProvider is the part of StatsService the handlers need.
type statsProvider interface {
	RecordReveal(section, itemKey, visitorID string, now time.Time) (*db.RevealStatistic, error)
	RecordPageView(visitorID string, now time.Time) error
	Overview(limit int, now time.Time) (service.Overview, error)
}

// Options wires the handler dependencies.
type Options struct {
	Store       *content.Store
	Stats       statsProvider
	SiteBaseURL string
	Mounts      service.RegistryOptions
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	store       *content.Store
	stats       statsProvider
	mounts      *service.Registry
	siteBaseURL string
	now         func() time.Time
}

// NewAPI constructs a handler set. The mount registry reports first-time
// reveals to the stats service.
func NewAPI(opts Options) *API {
	a := &API{
		store:       opts.Store,
		stats:       opts.Stats,
		siteBaseURL: opts.SiteBaseURL,
		now:         time.Now,
	}
	if a.store == nil {
		a.store = content.NewStaticStore(nil)
	}
	if opts.Mounts.Now != nil {
		a.now = opts.Mounts.Now
	}

	mountOpts := opts.Mounts
	mountOpts.OnReveal = a.recordReveal
	a.mounts = service.NewRegistry(mountOpts)
	return a
}

// Mounts exposes the page view registry so the server can run its janitor.
func (a *API) Mounts() *service.Registry {
	return a.mounts
}

func (a *API) recordReveal(visitorID, section, itemKey string) {
	if a.stats == nil || visitorID == "" {
		return
	}
	if _, err := a.stats.RecordReveal(section, itemKey, visitorID, a.now().UTC()); err != nil {
		log.Printf("[reveal] failed to record %s/%s: %v", section, itemKey, err)
	}
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}
	if _, exists := payload["siteBaseURL"]; !exists {
		payload["siteBaseURL"] = a.siteBaseURL
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = a.now().Year()
	}
	c.HTML(status, template, payload)
}
