package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chicknext/chicknext/config"
	"github.com/chicknext/chicknext/controllers"
	"github.com/chicknext/chicknext/utils"
)

// SetupAPIRouter wires the API service: CRUD routes, the sign-in flow, and
// public serving of uploaded images.
func SetupAPIRouter(cfg config.AppConfig, db *gorm.DB, store *utils.UploadStore, sessions *utils.SessionStore, captcha *utils.RecaptchaVerifier, creds utils.CredentialVerifier) *gin.Engine {
	r := newEngine(cfg)

	// The front end runs on another origin and sends the session cookie.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/uploads", store.Dir())

	adminController := controllers.NewAdminController(db, store, creds, cfg.RedirectBase)
	productController := controllers.NewProductController(db, store, cfg.RedirectBase)
	authController := controllers.NewAuthController(db, creds, sessions, captcha)

	r.GET("/admin_data", adminController.List)
	r.GET("/admin_data/:adminid", adminController.Get)
	r.POST("/add_admin", adminController.Create)
	r.PUT("/admin_data/:adminid", adminController.Update)
	r.DELETE("/admin_data/:adminid", adminController.Delete)

	r.GET("/menu_data", productController.List)
	r.GET("/menu_data/:foodid", productController.Get)
	r.GET("/menu_data/category/:category", productController.ListByCategory)
	r.GET("/products", productController.Search)
	r.POST("/add_menu", productController.Create)
	r.PUT("/edit_menu/:foodid", productController.Update)
	r.DELETE("/delete_menu/:foodid", productController.Delete)

	r.POST("/sign-in", authController.SignIn)

	return r
}

// newEngine builds a gin engine with mode, access logging, and recovery
// configured from the application config.
func newEngine(cfg config.AppConfig) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if the access logger failed to init
		r.Use(gin.Recovery())
	}
	return r
}
