package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/casaviva/casaviva-backend/internal/handlers"
	"github.com/casaviva/casaviva-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	ContractHandler   *handlers.DocumentHandler
	TermsHandler      *handlers.DocumentHandler
	AcceptanceHandler *handlers.AcceptanceHandler
	AuthMiddleware    *middleware.AuthMiddleware
	ReauthMiddleware  *middleware.ReauthMiddleware
	AllowedOrigins    []string
}

// StepUpTable declares which operations demand a fresh password
// confirmation. Publishing puts text into legal force and deleting destroys
// a draft; everything else rides on the primary session alone.
func StepUpTable() *middleware.StepUpTable {
	table := middleware.NewStepUpTable()
	for _, group := range []string{"/api/contracts", "/api/terms"} {
		table.MarkOperation("POST", group+"/:id/publish", true)
		table.MarkOperation("DELETE", group+"/:id", true)
	}
	return table
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", middleware.ReauthHeader},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/api/login", cfg.AuthHandler.Login)

	public := router.Group("/api/public")
	{
		public.GET("/contracts/active", cfg.ContractHandler.Active)
		public.GET("/terms/active", cfg.TermsHandler.Active)
		public.POST("/contracts/:id/prepare-acceptance", cfg.AcceptanceHandler.PrepareAcceptance)
		public.POST("/terms/:id/prepare-acceptance", cfg.AcceptanceHandler.PrepareAcceptance)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	protected.Use(cfg.ReauthMiddleware.Gate())

	protected.POST("/api/auth/reauthenticate", cfg.AuthHandler.Reauthenticate)

	mountDocumentRoutes(protected.Group("/api/contracts"), cfg.ContractHandler, cfg.AcceptanceHandler)
	mountDocumentRoutes(protected.Group("/api/terms"), cfg.TermsHandler, cfg.AcceptanceHandler)

	protected.GET("/api/tenants/:id/acceptance", cfg.AcceptanceHandler.GetForTenant)

	return router
}

func mountDocumentRoutes(g *gin.RouterGroup, dh *handlers.DocumentHandler, ach *handlers.AcceptanceHandler) {
	g.GET("", dh.List)
	g.POST("", dh.Create)
	g.GET("/next-version", dh.NextVersion)
	g.GET("/:id", dh.Get)
	g.PATCH("/:id", dh.Update)
	g.POST("/:id/publish", dh.Publish)
	g.DELETE("/:id", dh.Delete)
	g.POST("/:id/render", dh.Render)
	g.GET("/:id/acceptances", ach.ListForDocument)
}
