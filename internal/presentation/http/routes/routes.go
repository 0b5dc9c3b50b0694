package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/nota-perusahaan/internal/application/service"
	"github.com/sangkips/nota-perusahaan/internal/config"
	"github.com/sangkips/nota-perusahaan/internal/infrastructure/metrics"
	"github.com/sangkips/nota-perusahaan/internal/presentation/http/handler"
	"github.com/sangkips/nota-perusahaan/internal/presentation/http/middleware"
	"github.com/sangkips/nota-perusahaan/internal/presentation/http/web"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Page     *handler.PageHandler
	Receipt  *handler.ReceiptHandler
	Document *handler.DocumentHandler
	Export   *handler.ExportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Auth        *service.AuthService
	Cfg         *config.Config
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	RateLimiter *middleware.ClientRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) (*gin.Engine, error) {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	registerAuthRoutes(router, h)

	pages := router.Group("")
	pages.Use(middleware.PageAuthMiddleware(deps.Auth))
	{
		pages.GET("/", h.Page.Index)
		pages.GET("/history", h.Page.History)
		pages.GET("/setup", h.Page.Setup)
	}

	api := router.Group("/api")
	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter.Middleware())
	}
	api.Use(middleware.AuthMiddleware(deps.Auth))
	registerAPIRoutes(api, h)

	return router, nil
}

func registerAuthRoutes(router *gin.Engine, h *Handlers) {
	router.GET("/login", h.Auth.LoginPage)
	router.POST("/login", h.Auth.Login)
	router.GET("/register", h.Auth.RegisterPage)
	router.POST("/register", h.Auth.Register)
	router.GET("/logout", h.Auth.Logout)
}

func registerAPIRoutes(api *gin.RouterGroup, h *Handlers) {
	api.GET("/me", h.Auth.Me)
	api.GET("/companies", h.Receipt.Companies)
	api.GET("/recipients", h.Receipt.Recipients)
	api.GET("/stats", h.Receipt.Stats)

	receipts := api.Group("/receipts")
	{
		receipts.GET("", h.Receipt.List)
		receipts.POST("", h.Receipt.Create)
		receipts.GET("/next-number", h.Receipt.NextNumber)
		receipts.POST("/preview", h.Receipt.Preview)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.GET("/:id/pdf", h.Document.Download)
		receipts.POST("/:id/pdf", h.Document.Regenerate)
		receipts.GET("/:id/pdf/exists", h.Document.Exists)
		receipts.POST("/:id/print", h.Document.Print)
	}

	api.GET("/printer", h.Document.PrinterStatus)

	api.POST("/export", h.Export.Export)
	api.GET("/export/:filename", h.Export.Download)
}
