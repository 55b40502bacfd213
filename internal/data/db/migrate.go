package db

import (
	types "github.com/casaviva/casaviva-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Identity
		// =========================
		&types.User{},
		&types.Tenant{},

		// =========================
		// Plan catalog (scope target for legal documents)
		// =========================
		&types.Plan{},

		// =========================
		// Legal documents + acceptances
		// =========================
		&types.LegalDocument{},
		&types.DocumentAcceptance{},
	)
}
