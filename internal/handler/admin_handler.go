package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/folio/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const dashboardTopItems = 10

// ShowLoginPage 渲染登录页面
func ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title": "Admin login",
	})
}

// Login 处理用户登录请求，表单由 HTMX 提交
func Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if db.DB == nil {
		c.HTML(http.StatusServiceUnavailable, "login_error.html", gin.H{"error": "Database unavailable"})
		return
	}

	user, err := db.Authenticate(username, password)
	if err != nil {
		status, message := http.StatusUnauthorized, "Invalid username or password"
		if !errors.Is(err, db.ErrInvalidCredentials) {
			c.Error(err)
			status, message = http.StatusInternalServerError, "Login failed"
		}
		c.HTML(status, "login_error.html", gin.H{"error": message})
		return
	}

	// 设置会话
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "login_error.html", gin.H{"error": "Failed to save session"})
		return
	}

	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Redirect", "/admin/dashboard")
		c.Status(http.StatusOK)
		return
	}
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Logout 处理用户登出
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}

// ShowDashboard 渲染后台主面板：卡片曝光与页面访问统计
func (a *API) ShowDashboard(c *gin.Context) {
	session := sessions.Default(c)
	username := session.Get("username")

	data := gin.H{
		"title":       "Dashboard",
		"username":    username,
		"liveViews":   a.mounts.Len(),
		"contentAt":   a.store.LoadedAt(),
		"sectionSize": a.store.Library().Counts(),
	}

	if a.stats != nil {
		overview, err := a.stats.Overview(dashboardTopItems, a.now())
		if err != nil {
			c.Error(err)
			data["error"] = "Failed to load statistics"
		}
		data["overview"] = overview
	}

	a.renderHTML(c, http.StatusOK, "dashboard.html", data)
}

// GetStats returns the reveal and page view overview as JSON.
func (a *API) GetStats(c *gin.Context) {
	if a.stats == nil {
		respondError(c, http.StatusServiceUnavailable, "statistics unavailable")
		return
	}
	limit := parsePositiveInt(c.DefaultQuery("limit", "10"), dashboardTopItems)
	overview, err := a.stats.Overview(limit, a.now())
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "failed to load statistics")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totalReveals":   overview.TotalReveals,
		"uniqueVisitors": overview.UniqueVisitors,
		"itemCount":      overview.ItemCount,
		"topItems":       overview.TopItems,
		"sections":       overview.Sections,
		"hourly":         overview.Hourly,
		"liveViews":      a.mounts.Len(),
	})
}

// AuthRequired 是一个简单的认证中间件
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			if strings.HasPrefix(c.Request.URL.Path, "/admin/api/") {
				respondError(c, http.StatusUnauthorized, "unauthorized")
			} else {
				c.Redirect(http.StatusFound, "/admin/login")
			}
			c.Abort()
			return
		}
		c.Next()
	}
}
