package app

import (
	"github.com/gin-gonic/gin"

	"github.com/casaviva/casaviva-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:       handlers.Auth,
		ContractHandler:   handlers.Contract,
		TermsHandler:      handlers.Terms,
		AcceptanceHandler: handlers.Acceptance,
		AuthMiddleware:    middleware.Auth,
		ReauthMiddleware:  middleware.Reauth,
		AllowedOrigins:    cfg.AllowedOrigins,
	})
}
