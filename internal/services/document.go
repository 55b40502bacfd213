package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	legalrepo "github.com/casaviva/casaviva-backend/internal/data/repos/legal"
	types "github.com/casaviva/casaviva-backend/internal/domain"
	"github.com/casaviva/casaviva-backend/internal/legal/hash"
	"github.com/casaviva/casaviva-backend/internal/legal/template"
	"github.com/casaviva/casaviva-backend/internal/legal/version"
	"github.com/casaviva/casaviva-backend/internal/pkg/apperr"
	"github.com/casaviva/casaviva-backend/internal/pkg/dbctx"
	"github.com/casaviva/casaviva-backend/internal/pkg/logger"
)

type CreateDocumentInput struct {
	Kind    types.DocumentKind
	PlanID  *uuid.UUID
	Version string
	Title   string
	Content string
}

type UpdateDocumentInput struct {
	Title   *string
	Content *string
}

type PublishDocumentInput struct {
	EffectiveFrom *time.Time
}

type LegalDocumentService interface {
	Create(dbc dbctx.Context, in CreateDocumentInput, createdBy uuid.UUID) (*types.LegalDocument, error)
	Update(dbc dbctx.Context, id uuid.UUID, in UpdateDocumentInput) (*types.LegalDocument, error)
	Publish(dbc dbctx.Context, id uuid.UUID, in PublishDocumentInput, publishedBy uuid.UUID) (*types.LegalDocument, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
	FindAll(dbc dbctx.Context, filter legalrepo.ListFilter) ([]*types.LegalDocument, error)
	FindOne(dbc dbctx.Context, id uuid.UUID) (*types.LegalDocument, error)
	FindActiveForPlan(dbc dbctx.Context, kind types.DocumentKind, planID *uuid.UUID) (*types.LegalDocument, error)
	NextVersion(dbc dbctx.Context, kind types.DocumentKind, planID *uuid.UUID, isMajor bool) (string, error)
	Render(dbc dbctx.Context, id uuid.UUID, vars template.Variables) (*types.LegalDocument, error)
}

type legalDocumentService struct {
	db             *gorm.DB
	log            *logger.Logger
	documentRepo   legalrepo.LegalDocumentRepo
	acceptanceRepo legalrepo.DocumentAcceptanceRepo
}

func NewLegalDocumentService(
	db *gorm.DB,
	log *logger.Logger,
	documentRepo legalrepo.LegalDocumentRepo,
	acceptanceRepo legalrepo.DocumentAcceptanceRepo,
) LegalDocumentService {
	serviceLog := log.With("service", "LegalDocumentService")
	return &legalDocumentService{
		db:             db,
		log:            serviceLog,
		documentRepo:   documentRepo,
		acceptanceRepo: acceptanceRepo,
	}
}

// kindLabel returns the Portuguese noun used in user-facing messages.
func kindLabel(kind types.DocumentKind) string {
	if kind == types.KindTermsOfService {
		return "termo de uso"
	}
	return "contrato"
}

func (lds *legalDocumentService) Create(dbc dbctx.Context, in CreateDocumentInput, createdBy uuid.UUID) (*types.LegalDocument, error) {
	existing, err := lds.documentRepo.GetByVersionInFamily(dbc, in.Kind, in.PlanID, in.Version)
	if err != nil {
		return nil, fmt.Errorf("check existing version: %w", err)
	}
	if len(existing) > 0 {
		return nil, apperr.New(apperr.KindDuplicateVersion,
			fmt.Sprintf("Já existe um %s com versão %s para este plano", kindLabel(in.Kind), in.Version))
	}

	doc := &types.LegalDocument{
		ID:           uuid.New(),
		DocumentKind: in.Kind,
		PlanID:       in.PlanID,
		Version:      in.Version,
		Title:        in.Title,
		Content:      in.Content,
		ContentHash:  hash.ContentString(in.Content),
		Status:       types.StatusDraft,
		CreatedBy:    createdBy,
	}
	if _, err := lds.documentRepo.Create(dbc, []*types.LegalDocument{doc}); err != nil {
		return nil, fmt.Errorf("create %s: %w", kindLabel(in.Kind), err)
	}

	lds.log.Info("Document created", "id", doc.ID, "kind", doc.DocumentKind, "version", doc.Version)
	return doc, nil
}

func (lds *legalDocumentService) Update(dbc dbctx.Context, id uuid.UUID, in UpdateDocumentInput) (*types.LegalDocument, error) {
	doc, err := lds.getOne(dbc, id)
	if err != nil {
		return nil, err
	}
	if !doc.IsDraft() {
		return nil, apperr.New(apperr.KindInvalidState,
			fmt.Sprintf("Apenas %ss em DRAFT podem ser editados", kindLabel(doc.DocumentKind)))
	}

	if in.Title != nil {
		doc.Title = *in.Title
	}
	if in.Content != nil {
		doc.Content = *in.Content
		// Hash follows the content while the document is editable; it is
		// frozen once ACTIVE because Update refuses non-drafts above.
		doc.ContentHash = hash.ContentString(*in.Content)
	}

	if err := lds.documentRepo.Update(dbc, doc); err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	return doc, nil
}

func (lds *legalDocumentService) Publish(dbc dbctx.Context, id uuid.UUID, in PublishDocumentInput, publishedBy uuid.UUID) (*types.LegalDocument, error) {
	doc, err := lds.getOne(dbc, id)
	if err != nil {
		return nil, err
	}
	if !doc.IsDraft() {
		return nil, apperr.New(apperr.KindInvalidState,
			fmt.Sprintf("Apenas %ss DRAFT podem ser publicados", kindLabel(doc.DocumentKind)))
	}

	effectiveFrom := time.Now()
	if in.EffectiveFrom != nil {
		effectiveFrom = *in.EffectiveFrom
	}

	conn := dbc.Tx
	if conn == nil {
		conn = lds.db
	}

	// Revoking the current ACTIVE sibling and activating the target must
	// commit together; the family row lock serializes racing publishes so
	// readers never observe zero or two ACTIVE documents.
	var published *types.LegalDocument
	err = conn.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		txc := dbctx.Context{Ctx: dbc.Ctx, Tx: tx}

		family, lockErr := lds.documentRepo.LockFamily(txc, doc.DocumentKind, doc.PlanID)
		if lockErr != nil {
			return fmt.Errorf("lock document family: %w", lockErr)
		}

		var target *types.LegalDocument
		for _, row := range family {
			if row.ID == doc.ID {
				target = row
			}
		}
		if target == nil {
			return apperr.New(apperr.KindNotFound,
				fmt.Sprintf("%s não encontrado", titleLabel(doc.DocumentKind)))
		}
		// Re-check under the lock: a racing publish may have already moved
		// this draft.
		if !target.IsDraft() {
			return apperr.New(apperr.KindInvalidState,
				fmt.Sprintf("Apenas %ss DRAFT podem ser publicados", kindLabel(doc.DocumentKind)))
		}

		now := time.Now()
		for _, row := range family {
			if row.ID == target.ID || !row.IsActive() {
				continue
			}
			row.Status = types.StatusRevoked
			row.RevokedAt = &now
			revokedBy := publishedBy
			row.RevokedBy = &revokedBy
			if updErr := lds.documentRepo.Update(txc, row); updErr != nil {
				return fmt.Errorf("revoke previous version: %w", updErr)
			}
		}

		target.Status = types.StatusActive
		target.EffectiveFrom = &effectiveFrom
		if updErr := lds.documentRepo.Update(txc, target); updErr != nil {
			return fmt.Errorf("activate document: %w", updErr)
		}

		published = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	lds.log.Info("Document published", "id", published.ID, "kind", published.DocumentKind, "version", published.Version)
	return published, nil
}

func (lds *legalDocumentService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	doc, err := lds.getOne(dbc, id)
	if err != nil {
		return err
	}
	if !doc.IsDraft() {
		return apperr.New(apperr.KindInvalidState,
			fmt.Sprintf("Apenas %ss DRAFT podem ser deletados", kindLabel(doc.DocumentKind)))
	}

	counts, err := lds.acceptanceRepo.CountByDocumentIDs(dbc, []uuid.UUID{doc.ID})
	if err != nil {
		return fmt.Errorf("count acceptances: %w", err)
	}
	if counts[doc.ID] > 0 {
		// Legal retention: anything a tenant has accepted can never be
		// removed, draft or not.
		return apperr.New(apperr.KindHasAcceptances,
			fmt.Sprintf("Não é possível deletar %s que já possui aceites", kindLabel(doc.DocumentKind)))
	}

	if err := lds.documentRepo.FullDeleteByIDs(dbc, []uuid.UUID{doc.ID}); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	lds.log.Info("Document deleted", "id", doc.ID, "kind", doc.DocumentKind, "version", doc.Version)
	return nil
}

func (lds *legalDocumentService) FindAll(dbc dbctx.Context, filter legalrepo.ListFilter) ([]*types.LegalDocument, error) {
	docs, err := lds.documentRepo.List(dbc, filter)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	counts, err := lds.acceptanceRepo.CountByDocumentIDs(dbc, ids)
	if err != nil {
		return nil, fmt.Errorf("count acceptances: %w", err)
	}
	for _, d := range docs {
		d.AcceptanceCount = counts[d.ID]
	}

	return docs, nil
}

func (lds *legalDocumentService) FindOne(dbc dbctx.Context, id uuid.UUID) (*types.LegalDocument, error) {
	doc, err := lds.getOne(dbc, id)
	if err != nil {
		return nil, err
	}

	counts, err := lds.acceptanceRepo.CountByDocumentIDs(dbc, []uuid.UUID{doc.ID})
	if err != nil {
		return nil, fmt.Errorf("count acceptances: %w", err)
	}
	doc.AcceptanceCount = counts[doc.ID]

	return doc, nil
}

func (lds *legalDocumentService) FindActiveForPlan(dbc dbctx.Context, kind types.DocumentKind, planID *uuid.UUID) (*types.LegalDocument, error) {
	// A plan-specific ACTIVE document beats the generic one; the generic
	// document is only the fallback.
	if planID != nil {
		rows, err := lds.documentRepo.GetActiveInFamily(dbc, kind, planID)
		if err != nil {
			return nil, fmt.Errorf("find active document: %w", err)
		}
		if len(rows) > 0 {
			return rows[0], nil
		}
	}

	rows, err := lds.documentRepo.GetActiveInFamily(dbc, kind, nil)
	if err != nil {
		return nil, fmt.Errorf("find active document: %w", err)
	}
	if len(rows) == 0 {
		return nil, apperr.New(apperr.KindNoActiveDocument,
			fmt.Sprintf("Nenhum %s ativo disponível no momento", kindLabel(kind)))
	}
	return rows[0], nil
}

func (lds *legalDocumentService) NextVersion(dbc dbctx.Context, kind types.DocumentKind, planID *uuid.UUID, isMajor bool) (string, error) {
	existing, err := lds.documentRepo.ListFamilyVersions(dbc, kind, planID)
	if err != nil {
		return "", fmt.Errorf("list family versions: %w", err)
	}
	return version.Next(existing, isMajor), nil
}

func (lds *legalDocumentService) Render(dbc dbctx.Context, id uuid.UUID, vars template.Variables) (*types.LegalDocument, error) {
	doc, err := lds.FindOne(dbc, id)
	if err != nil {
		return nil, err
	}

	rendered := *doc
	rendered.Content = template.Render(doc.Content, vars)
	return &rendered, nil
}

func (lds *legalDocumentService) getOne(dbc dbctx.Context, id uuid.UUID) (*types.LegalDocument, error) {
	rows, err := lds.documentRepo.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if len(rows) == 0 {
		return nil, apperr.New(apperr.KindNotFound, "Documento não encontrado")
	}
	return rows[0], nil
}

// titleLabel is kindLabel with the first letter upper-cased, for messages
// that start with the noun.
func titleLabel(kind types.DocumentKind) string {
	if kind == types.KindTermsOfService {
		return "Termo de uso"
	}
	return "Contrato"
}
