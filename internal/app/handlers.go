package app

import (
	types "github.com/casaviva/casaviva-backend/internal/domain"
	"github.com/casaviva/casaviva-backend/internal/handlers"
	"github.com/casaviva/casaviva-backend/internal/pkg/logger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Contract   *handlers.DocumentHandler
	Terms      *handlers.DocumentHandler
	Acceptance *handlers.AcceptanceHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:       handlers.NewAuthHandler(services.Auth, services.Reauth),
		Contract:   handlers.NewDocumentHandler(services.Document, types.KindContract),
		Terms:      handlers.NewDocumentHandler(services.Document, types.KindTermsOfService),
		Acceptance: handlers.NewAcceptanceHandler(services.Acceptance),
	}
}
