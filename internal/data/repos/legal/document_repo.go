package legal

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/casaviva/casaviva-backend/internal/domain"
	"github.com/casaviva/casaviva-backend/internal/pkg/dbctx"
	"github.com/casaviva/casaviva-backend/internal/pkg/logger"
)

// ListFilter narrows List. Zero values mean "no filter".
type ListFilter struct {
	Kind   types.DocumentKind
	Status types.DocumentStatus
	PlanID *uuid.UUID
}

type LegalDocumentRepo interface {
	Create(dbc dbctx.Context, docs []*types.LegalDocument) ([]*types.LegalDocument, error)
	Update(dbc dbctx.Context, doc *types.LegalDocument) error
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.LegalDocument, error)
	GetByVersionInFamily(dbc dbctx.Context, kind types.DocumentKind, planID *uuid.UUID, version string) ([]*types.LegalDocument, error)
	ListFamilyVersions(dbc dbctx.Context, kind types.DocumentKind, planID *uuid.UUID) ([]string, error)
	List(dbc dbctx.Context, filter ListFilter) ([]*types.LegalDocument, error)
	GetActiveInFamily(dbc dbctx.Context, kind types.DocumentKind, planID *uuid.UUID) ([]*types.LegalDocument, error)
	LockFamily(dbc dbctx.Context, kind types.DocumentKind, planID *uuid.UUID) ([]*types.LegalDocument, error)
	FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type legalDocumentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLegalDocumentRepo(db *gorm.DB, baseLog *logger.Logger) LegalDocumentRepo {
	repoLog := baseLog.With("repo", "LegalDocumentRepo")
	return &legalDocumentRepo{db: db, log: repoLog}
}

// scopeFamily narrows a query to one (kind, plan) family. A nil planID is
// the generic family, matched with IS NULL, never with = NULL.
func scopeFamily(tx *gorm.DB, kind types.DocumentKind, planID *uuid.UUID) *gorm.DB {
	tx = tx.Where("document_kind = ?", kind)
	if planID == nil {
		return tx.Where("plan_id IS NULL")
	}
	return tx.Where("plan_id = ?", *planID)
}

func (ldr *legalDocumentRepo) Create(dbc dbctx.Context, docs []*types.LegalDocument) ([]*types.LegalDocument, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ldr.db
	}

	if len(docs) == 0 {
		return []*types.LegalDocument{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&docs).Error; err != nil {
		return nil, err
	}

	return docs, nil
}

func (ldr *legalDocumentRepo) Update(dbc dbctx.Context, doc *types.LegalDocument) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ldr.db
	}

	return transaction.WithContext(dbc.Ctx).Save(doc).Error
}

func (ldr *legalDocumentRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.LegalDocument, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ldr.db
	}

	var results []*types.LegalDocument

	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Preload("Plan").
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (ldr *legalDocumentRepo) GetByVersionInFamily(dbc dbctx.Context, kind types.DocumentKind, planID *uuid.UUID, version string) ([]*types.LegalDocument, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ldr.db
	}

	var results []*types.LegalDocument

	if err := scopeFamily(transaction.WithContext(dbc.Ctx), kind, planID).
		Where("version = ?", version).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (ldr *legalDocumentRepo) ListFamilyVersions(dbc dbctx.Context, kind types.DocumentKind, planID *uuid.UUID) ([]string, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ldr.db
	}

	var versions []string

	if err := scopeFamily(transaction.WithContext(dbc.Ctx).Model(&types.LegalDocument{}), kind, planID).
		Order("created_at DESC").
		Pluck("version", &versions).Error; err != nil {
		return nil, err
	}

	return versions, nil
}

func (ldr *legalDocumentRepo) List(dbc dbctx.Context, filter ListFilter) ([]*types.LegalDocument, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ldr.db
	}

	query := transaction.WithContext(dbc.Ctx).Preload("Plan")
	if filter.Kind != "" {
		query = query.Where("document_kind = ?", filter.Kind)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PlanID != nil {
		query = query.Where("plan_id = ?", *filter.PlanID)
	}

	var results []*types.LegalDocument
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (ldr *legalDocumentRepo) GetActiveInFamily(dbc dbctx.Context, kind types.DocumentKind, planID *uuid.UUID) ([]*types.LegalDocument, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ldr.db
	}

	var results []*types.LegalDocument

	if err := scopeFamily(transaction.WithContext(dbc.Ctx).Preload("Plan"), kind, planID).
		Where("status = ?", types.StatusActive).
		Order("effective_from DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

// LockFamily loads every row of a family FOR UPDATE. Publish serializes on
// this lock so two racing publishes cannot leave zero or two ACTIVE rows.
// Callers must hold an open transaction in dbc.Tx.
func (ldr *legalDocumentRepo) LockFamily(dbc dbctx.Context, kind types.DocumentKind, planID *uuid.UUID) ([]*types.LegalDocument, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ldr.db
	}

	var results []*types.LegalDocument

	if err := scopeFamily(transaction.WithContext(dbc.Ctx), kind, planID).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (ldr *legalDocumentRepo) FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ldr.db
	}

	if len(ids) == 0 {
		return nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Unscoped().
		Where("id IN (?)", ids).
		Delete(&types.LegalDocument{}).Error; err != nil {
		return err
	}

	return nil
}
