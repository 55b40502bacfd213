package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/casaviva/casaviva-backend/internal/domain"
	"github.com/casaviva/casaviva-backend/internal/legal/hash"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
		TenantID:  uuid.New(),
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedTenant(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Tenant {
	tb.Helper()
	tn := &types.Tenant{
		ID:    uuid.New(),
		Name:  name,
		CNPJ:  uuid.NewString(),
		Email: name + "@example.com",
	}
	if err := tx.WithContext(ctx).Create(tn).Error; err != nil {
		tb.Fatalf("seed tenant: %v", err)
	}
	return tn
}

func SeedPlan(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Plan {
	tb.Helper()
	price := 299.0
	p := &types.Plan{
		ID:           uuid.New(),
		Name:         name,
		DisplayName:  name,
		Price:        &price,
		MaxUsers:     10,
		MaxResidents: 40,
		TrialDays:    14,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed plan: %v", err)
	}
	return p
}

func SeedDocument(tb testing.TB, ctx context.Context, tx *gorm.DB, kind types.DocumentKind, planID *uuid.UUID, version string, status types.DocumentStatus, createdBy uuid.UUID) *types.LegalDocument {
	tb.Helper()
	content := "Contrato {{tenant.name}} " + version
	d := &types.LegalDocument{
		ID:           uuid.New(),
		DocumentKind: kind,
		PlanID:       planID,
		Version:      version,
		Title:        "Contrato de Prestação de Serviços",
		Content:      content,
		ContentHash:  hash.ContentString(content),
		Status:       status,
		CreatedBy:    createdBy,
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed document: %v", err)
	}
	return d
}

func SeedAcceptance(tb testing.TB, ctx context.Context, tx *gorm.DB, doc *types.LegalDocument, tenantID, userID uuid.UUID) *types.DocumentAcceptance {
	tb.Helper()
	rendered := "Contrato Lar Aurora " + doc.Version
	a := &types.DocumentAcceptance{
		ID:                  uuid.New(),
		DocumentID:          doc.ID,
		TenantID:            tenantID,
		UserID:              userID,
		DocumentKind:        doc.DocumentKind,
		RenderedContentHash: hash.ContentString(rendered),
		RenderedContent:     rendered,
		IPAddress:           "203.0.113.7",
		UserAgent:           "integration-test",
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed acceptance: %v", err)
	}
	return a
}
