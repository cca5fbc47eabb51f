package router

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/folio/internal/config"
	"github.com/folio/internal/content"
	"github.com/folio/internal/handler"
	"github.com/folio/internal/media"
	"github.com/folio/internal/service"
	"github.com/folio/internal/ui"
	"github.com/folio/internal/view"
	"github.com/folio/web"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "folio_session"

// Deps carries the long-lived services the routes are built on.
type Deps struct {
	Store  *content.Store
	Stats  *service.StatsService
	Prober *media.Prober
	Now    func() time.Time
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig, deps Deps) (*gin.Engine, *handler.API, error) {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(secureHeaders, cacheControl(cfg.AssetsURLPath))

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 12,
		SameSite: http.SameSiteLaxMode,
		Secure:   strings.HasPrefix(cfg.SiteBaseURL, "https://"),
	})
	r.Use(sessions.Sessions(sessionName, store))

	tmpl, err := web.Templates(templateFuncs(deps.Prober))
	if err != nil {
		return nil, nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// 静态文件服务
	r.StaticFS("/static", http.FS(web.Static()))
	if cfg.AssetsDir != "" && cfg.AssetsURLPath != "" && cfg.AssetsURLPath != "/" && cfg.AssetsURLPath != "/static" {
		r.Static(cfg.AssetsURLPath, cfg.AssetsDir)
	}

	opts := handler.Options{
		Store:       deps.Store,
		SiteBaseURL: cfg.SiteBaseURL,
		Mounts: service.RegistryOptions{
			TTL:      cfg.MountTTL,
			Cooldown: cfg.PageCooldown,
			Viewport: ui.Viewport{Breakpoint: cfg.CompactBreakpoint},
			Now:      deps.Now,
		},
	}
	// A nil *StatsService must not become a non-nil interface.
	if deps.Stats != nil {
		opts.Stats = deps.Stats
	}
	api := handler.NewAPI(opts)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	r.GET("/", api.ShowHome)
	r.GET("/media/:section/:key", api.ServeMedia)

	v := r.Group("/v/:view")
	{
		v.POST("/viewport", api.UpdateViewport)
		v.POST("/teardown", api.Teardown)
		v.POST("/hero/contact", api.OpenContact)
		v.POST("/hero/contact/close", api.CloseContact)

		sections := v.Group("/sections/:section")
		sections.GET("", api.GetSection)
		sections.POST("/next", api.NextPage)
		sections.POST("/prev", api.PrevPage)
		sections.POST("/toggle", api.ToggleShowAll)
		sections.POST("/tab/:tab", api.SwitchTab)
		sections.POST("/reveal/:key", api.Reveal)
		sections.GET("/items/:key", api.OpenItem)
		sections.POST("/close", api.CloseItem)
	}

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.GET("/login", handler.ShowLoginPage)
		admin.POST("/login", handler.Login)
		admin.GET("/logout", handler.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/dashboard", api.ShowDashboard)
			auth.GET("/api/stats", api.GetStats)
		}
	}

	return r, api, nil
}

func templateFuncs(prober *media.Prober) template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"dict":         dict,
		"icon":         view.IconSVG,
		"hasIcon":      view.HasIcon,
		"socialLinks":  view.SocialLinks,
		"contactItems": view.ContactItems,
		"imageSize": func(src string) *media.Size {
			if prober == nil || src == "" {
				return nil
			}
			size, err := prober.Probe(src)
			if err != nil {
				return nil
			}
			return &size
		},
	}
}

// dict builds a map from alternating keys and values so partials can take
// several arguments.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}

func secureHeaders(c *gin.Context) {
	h := c.Writer.Header()
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	c.Next()
}

// cacheControl caches static files and marks every other response no-store.
func cacheControl(assetsURLPath string) gin.HandlerFunc {
	assetsPrefix := strings.TrimRight(assetsURLPath, "/") + "/"
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		switch {
		case strings.HasPrefix(path, "/static/"):
			c.Header("Cache-Control", "public, max-age=86400")
		case assetsPrefix != "/" && strings.HasPrefix(path, assetsPrefix):
			c.Header("Cache-Control", "public, max-age=86400")
		default:
			c.Header("Cache-Control", "no-store")
		}
		c.Next()
	}
}
