package handlers

import (
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/SscSPs/personal_finance_tracker/cmd/docs"
	portssvc "github.com/SscSPs/personal_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_tracker/internal/middleware"
	"github.com/SscSPs/personal_finance_tracker/internal/platform/config"
	"github.com/SscSPs/personal_finance_tracker/web"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// With accounts enabled every transaction, summary and dashboard route sits behind the
// session guard; otherwise all requests belong to the single legacy owner.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	useFlashSessions(r, cfg)
	useWireFieldNames()
	setupWebAssets(r)

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if cfg.AccountsEnabled() && services.User != nil && services.Session != nil {
		authHandler := NewAuthHandler(services.User, services.Session, cfg)
		registerAuthRoutes(r, cfg, authHandler)

		pages := r.Group("", middleware.RequireSession(services.Session, cfg.SessionCookieName, middleware.RedirectTo("/login")))
		registerPageRoutes(pages, services.User, true)

		api := r.Group("", middleware.RequireSession(services.Session, cfg.SessionCookieName, middleware.AbortUnauthorizedJSON))
		registerTransactionRoutes(api, services.Transaction, cfg.IsProduction)
		registerSummaryRoutes(api, services.Summary, cfg.IsProduction)
	} else {
		owner := r.Group("", middleware.SingleUser())
		registerPageRoutes(owner, nil, false)
		registerTransactionRoutes(owner, services.Transaction, cfg.IsProduction)
		registerSummaryRoutes(owner, services.Summary, cfg.IsProduction)
	}

	// Swagger routes (only outside production)
	setupSwaggerRoutes(r, cfg)
}

// setupWebAssets loads the embedded page templates and serves the static scripts.
func setupWebAssets(r *gin.Engine) {
	r.SetHTMLTemplate(template.Must(template.ParseFS(web.FS, "templates/*.html")))

	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		panic(err)
	}
	r.StaticFS("/static", http.FS(static))
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
