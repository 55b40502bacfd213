package app

import (
	"gorm.io/gorm"

	legalrepo "github.com/casaviva/casaviva-backend/internal/data/repos/legal"
	userrepo "github.com/casaviva/casaviva-backend/internal/data/repos/user"
	"github.com/casaviva/casaviva-backend/internal/pkg/logger"
)

type Repos struct {
	User               userrepo.UserRepo
	LegalDocument      legalrepo.LegalDocumentRepo
	DocumentAcceptance legalrepo.DocumentAcceptanceRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:               userrepo.NewUserRepo(db, log),
		LegalDocument:      legalrepo.NewLegalDocumentRepo(db, log),
		DocumentAcceptance: legalrepo.NewDocumentAcceptanceRepo(db, log),
	}
}
