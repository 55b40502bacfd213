package app

import (
	"github.com/casaviva/casaviva-backend/internal/middleware"
	"github.com/casaviva/casaviva-backend/internal/pkg/logger"
	"github.com/casaviva/casaviva-backend/internal/server"
)

type Middleware struct {
	Auth   *middleware.AuthMiddleware
	Reauth *middleware.ReauthMiddleware
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:   middleware.NewAuthMiddleware(log, services.Auth),
		Reauth: middleware.NewReauthMiddleware(log, services.Reauth, server.StepUpTable()),
	}
}
