package routes

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/chicknext/chicknext/config"
	"github.com/chicknext/chicknext/middleware"
	"github.com/chicknext/chicknext/utils"
)

// pageRoutes maps the web service's fixed URL paths to page files under the
// configured pages directory.
var pageRoutes = map[string]string{
	"/":            "Home.html",
	"/navbar":      "navbar.html",
	"/menu":        "menu.html",
	"/promotion":   "Promotion.html",
	"/aboutus":     "AboutusPage.html",
	"/search":      "search.html",
	"/snack":       "snack.html",
	"/topping":     "topping.html",
	"/drink":       "drink.html",
	"/description": "description.html",
	"/sign_in":     "LoginPage.html",
	"/sidebar":     "sidebar.html",
	"/menu_admin":  "menu_admin.html",
	"/add_admin":   "add_admin.html",
	"/add_menu":    "add_menu.html",
	"/edit_admin":  "edit_admin.html",
	"/edit_menu":   "edit_menu.html",
}

// SetupWebRouter wires the web service: static page routes, asset serving,
// and the session-gated /admin page.
func SetupWebRouter(cfg config.AppConfig, sessions *utils.SessionStore) *gin.Engine {
	r := newEngine(cfg)

	page := func(name string) gin.HandlerFunc {
		path := filepath.Join(cfg.PagesDir, name)
		return func(ctx *gin.Context) {
			ctx.File(path)
		}
	}

	for route, file := range pageRoutes {
		r.GET(route, page(file))
	}

	r.GET("/admin", middleware.SessionRequired(sessions), page("admin.html"))

	// Assets (css, scripts, pictures) live in several directories served at
	// the root path, so unmatched GETs fall through to a directory probe.
	staticDirs := cfg.StaticDirs
	r.NoRoute(func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet {
			ctx.Status(http.StatusNotFound)
			return
		}
		rel := filepath.Clean("/" + ctx.Request.URL.Path)
		for _, dir := range staticDirs {
			candidate := filepath.Join(dir, rel)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				ctx.File(candidate)
				return
			}
		}
		ctx.Status(http.StatusNotFound)
	})

	return r
}
