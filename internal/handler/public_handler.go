package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/folio/internal/content"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	visitorCookieName   = "folio_visitor_id"
	visitorCookieMaxAge = 365 * 24 * 60 * 60
)

// navLink is one entry of the header navigation.
type navLink struct {
	ID    string
	Label string
}

func buildNav(lib *content.Library) []navLink {
	nav := []navLink{{ID: "home", Label: "Home"}}
	if lib.HasAbout() {
		nav = append(nav, navLink{ID: content.SectionAbout, Label: "About"})
	}
	for _, def := range lib.Sections() {
		nav = append(nav, navLink{ID: def.ID, Label: def.Title})
	}
	return nav
}

// ShowHome renders the portfolio page and mounts a fresh page view.
func (a *API) ShowHome(c *gin.Context) {
	visitorID := a.ensureVisitorID(c)
	lib := a.store.Library()
	mount := a.mounts.Create(lib, visitorID)

	if a.stats != nil {
		if err := a.stats.RecordPageView(visitorID, a.now().UTC()); err != nil {
			c.Error(err) // 不中断渲染，但记录错误
		}
	}

	title := strings.TrimSpace(lib.Hero.FullName())
	if title == "" {
		title = "Portfolio"
	}

	a.renderHTML(c, http.StatusOK, "index.html", gin.H{
		"title":      title,
		"mountID":    mount.ID,
		"hero":       lib.Hero,
		"heroImage":  lib.HeroImage,
		"hasContact": lib.HasContact(),
		"contact":    mount.Contact(),
		"hasAbout":   lib.HasAbout(),
		"about":      lib.About,
		"aboutImage": lib.AboutImage,
		"aboutBio":   lib.AboutBio,
		"sections":   mount.Sections(),
		"nav":        buildNav(lib),
		"footer":     lib.Footer,
	})
}

// ServeMedia redirects to the image source to try after the given number
// of load failures. A live page view resolves against the content it was
// rendered from; anything else uses the current content.
func (a *API) ServeMedia(c *gin.Context) {
	lib := a.store.Library()
	if view := strings.TrimSpace(c.Query("view")); view != "" {
		if m, err := a.mounts.Get(view); err == nil {
			lib = m.Library
		}
	}
	chain, ok := lib.Image(c.Param("section"), c.Param("key"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	failures := parseNonNegativeInt(c.Query("failed"))
	c.Header("Cache-Control", "no-cache")
	c.Redirect(http.StatusFound, chain.At(failures))
}

func (a *API) ensureVisitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookieName); err == nil && strings.TrimSpace(id) != "" {
		return id
	}

	visitorID := uuid.NewString()
	secure := c.Request.TLS != nil

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     visitorCookieName,
		Value:    visitorID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		MaxAge:   visitorCookieMaxAge,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})

	return visitorID
}
