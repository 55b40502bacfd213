package legal

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/casaviva/casaviva-backend/internal/domain"
	"github.com/casaviva/casaviva-backend/internal/pkg/dbctx"
	"github.com/casaviva/casaviva-backend/internal/pkg/logger"
)

// DocumentAcceptanceRepo reads acceptance records. The write path lives in
// the onboarding flow, which exchanges acceptance tokens for rows; Create
// exists for that flow and for seeding.
type DocumentAcceptanceRepo interface {
	Create(dbc dbctx.Context, acceptances []*types.DocumentAcceptance) ([]*types.DocumentAcceptance, error)
	CountByDocumentIDs(dbc dbctx.Context, documentIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	GetByDocumentIDs(dbc dbctx.Context, documentIDs []uuid.UUID) ([]*types.DocumentAcceptance, error)
	GetByTenantIDs(dbc dbctx.Context, tenantIDs []uuid.UUID) ([]*types.DocumentAcceptance, error)
}

type documentAcceptanceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentAcceptanceRepo(db *gorm.DB, baseLog *logger.Logger) DocumentAcceptanceRepo {
	repoLog := baseLog.With("repo", "DocumentAcceptanceRepo")
	return &documentAcceptanceRepo{db: db, log: repoLog}
}

func (dar *documentAcceptanceRepo) Create(dbc dbctx.Context, acceptances []*types.DocumentAcceptance) ([]*types.DocumentAcceptance, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dar.db
	}

	if len(acceptances) == 0 {
		return []*types.DocumentAcceptance{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&acceptances).Error; err != nil {
		return nil, err
	}

	return acceptances, nil
}

func (dar *documentAcceptanceRepo) CountByDocumentIDs(dbc dbctx.Context, documentIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dar.db
	}

	counts := make(map[uuid.UUID]int64, len(documentIDs))
	if len(documentIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		DocumentID uuid.UUID
		Total      int64
	}
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.DocumentAcceptance{}).
		Select("document_id, COUNT(*) AS total").
		Where("document_id IN ?", documentIDs).
		Group("document_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.DocumentID] = r.Total
	}
	return counts, nil
}

func (dar *documentAcceptanceRepo) GetByDocumentIDs(dbc dbctx.Context, documentIDs []uuid.UUID) ([]*types.DocumentAcceptance, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dar.db
	}

	var results []*types.DocumentAcceptance

	if len(documentIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Preload("Tenant").
		Where("document_id IN ?", documentIDs).
		Order("accepted_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (dar *documentAcceptanceRepo) GetByTenantIDs(dbc dbctx.Context, tenantIDs []uuid.UUID) ([]*types.DocumentAcceptance, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dar.db
	}

	var results []*types.DocumentAcceptance

	if len(tenantIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Preload("Document").
		Where("tenant_id IN ?", tenantIDs).
		Order("accepted_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}
