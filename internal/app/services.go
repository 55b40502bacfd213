package app

import (
	"gorm.io/gorm"

	"github.com/casaviva/casaviva-backend/internal/pkg/logger"
	"github.com/casaviva/casaviva-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	Reauth     services.ReauthService
	Document   services.LegalDocumentService
	Acceptance services.AcceptanceService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos) Services {
	log.Info("Wiring services...")

	documentService := services.NewLegalDocumentService(db, log, repos.LegalDocument, repos.DocumentAcceptance)

	return Services{
		Auth:     services.NewAuthService(db, log, repos.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Reauth:   services.NewReauthService(db, log, repos.User, cfg.JWTSecretKey, cfg.ReauthTokenTTL),
		Document: documentService,
		Acceptance: services.NewAcceptanceService(
			db, log, documentService, repos.DocumentAcceptance, cfg.JWTSecretKey, cfg.AcceptanceTokenTTL),
	}
}
