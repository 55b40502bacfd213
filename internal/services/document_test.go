package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	legalrepo "github.com/casaviva/casaviva-backend/internal/data/repos/legal"
	types "github.com/casaviva/casaviva-backend/internal/domain"
	"github.com/casaviva/casaviva-backend/internal/legal/hash"
	"github.com/casaviva/casaviva-backend/internal/legal/template"
	"github.com/casaviva/casaviva-backend/internal/pkg/apperr"
	"github.com/casaviva/casaviva-backend/internal/pkg/dbctx"
)

func newDocumentFixture() (LegalDocumentService, *fakeDocumentRepo, *fakeAcceptanceRepo, dbctx.Context) {
	docRepo := newFakeDocumentRepo()
	accRepo := &fakeAcceptanceRepo{}
	svc := NewLegalDocumentService(nil, testLogger(), docRepo, accRepo)
	return svc, docRepo, accRepo, dbctx.Context{Ctx: context.Background()}
}

func seedFakeDocument(repo *fakeDocumentRepo, kind types.DocumentKind, planID *uuid.UUID, version string, status types.DocumentStatus) *types.LegalDocument {
	doc := &types.LegalDocument{
		ID:           uuid.New(),
		DocumentKind: kind,
		PlanID:       planID,
		Version:      version,
		Title:        "Contrato de Prestação de Serviços",
		Content:      "Conteúdo do documento",
		ContentHash:  hash.ContentString("Conteúdo do documento"),
		Status:       status,
		CreatedBy:    uuid.New(),
	}
	if status == types.StatusActive {
		now := time.Now()
		doc.EffectiveFrom = &now
	}
	repo.docs[doc.ID] = doc
	return doc
}

func TestCreateDocument(t *testing.T) {
	svc, _, _, dbc := newDocumentFixture()

	createdBy := uuid.New()
	doc, err := svc.Create(dbc, CreateDocumentInput{
		Kind:    types.KindContract,
		Version: "v1.0",
		Title:   "Contrato Padrão",
		Content: "Texto do contrato",
	}, createdBy)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if doc.Status != types.StatusDraft {
		t.Fatalf("expected new document in DRAFT, got %s", doc.Status)
	}
	if doc.ContentHash != hash.ContentString("Texto do contrato") {
		t.Fatalf("content hash not derived from content")
	}
	if doc.CreatedBy != createdBy {
		t.Fatalf("created_by not recorded")
	}
}

func TestCreateDocumentDuplicateVersion(t *testing.T) {
	svc, docRepo, _, dbc := newDocumentFixture()
	seedFakeDocument(docRepo, types.KindContract, nil, "v1.0", types.StatusDraft)

	_, err := svc.Create(dbc, CreateDocumentInput{
		Kind:    types.KindContract,
		Version: "v1.0",
		Title:   "Contrato Padrão",
		Content: "Outro texto",
	}, uuid.New())
	if !apperr.IsKind(err, apperr.KindDuplicateVersion) {
		t.Fatalf("expected DUPLICATE_VERSION, got %v", err)
	}
}

func TestCreateDocumentSameVersionOtherFamily(t *testing.T) {
	svc, docRepo, _, dbc := newDocumentFixture()
	planID := uuid.New()
	seedFakeDocument(docRepo, types.KindContract, &planID, "v1.0", types.StatusDraft)

	// Same version in the generic family is a different family, not a dup.
	if _, err := svc.Create(dbc, CreateDocumentInput{
		Kind:    types.KindContract,
		Version: "v1.0",
		Title:   "Contrato Padrão",
		Content: "Texto",
	}, uuid.New()); err != nil {
		t.Fatalf("expected creation in other family to succeed, got %v", err)
	}
}

func TestUpdateDocumentRehashes(t *testing.T) {
	svc, docRepo, _, dbc := newDocumentFixture()
	doc := seedFakeDocument(docRepo, types.KindContract, nil, "v1.0", types.StatusDraft)

	newContent := "Texto revisado"
	updated, err := svc.Update(dbc, doc.ID, UpdateDocumentInput{Content: &newContent})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ContentHash != hash.ContentString(newContent) {
		t.Fatalf("content hash not recomputed after edit")
	}
}

func TestUpdateDocumentRejectsNonDraft(t *testing.T) {
	svc, docRepo, _, dbc := newDocumentFixture()
	doc := seedFakeDocument(docRepo, types.KindContract, nil, "v1.0", types.StatusActive)

	title := "Novo título"
	_, err := svc.Update(dbc, doc.ID, UpdateDocumentInput{Title: &title})
	if !apperr.IsKind(err, apperr.KindInvalidState) {
		t.Fatalf("expected INVALID_STATE, got %v", err)
	}
}

func TestUpdateDocumentNotFound(t *testing.T) {
	svc, _, _, dbc := newDocumentFixture()

	title := "Novo título"
	_, err := svc.Update(dbc, uuid.New(), UpdateDocumentInput{Title: &title})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestPublishRejectsNonDraft(t *testing.T) {
	svc, docRepo, _, dbc := newDocumentFixture()
	doc := seedFakeDocument(docRepo, types.KindContract, nil, "v1.0", types.StatusRevoked)

	_, err := svc.Publish(dbc, doc.ID, PublishDocumentInput{}, uuid.New())
	if !apperr.IsKind(err, apperr.KindInvalidState) {
		t.Fatalf("expected INVALID_STATE, got %v", err)
	}
}

func TestPublishUnknownDocument(t *testing.T) {
	svc, _, _, dbc := newDocumentFixture()

	_, err := svc.Publish(dbc, uuid.New(), PublishDocumentInput{}, uuid.New())
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestDeleteDraftWithoutAcceptances(t *testing.T) {
	svc, docRepo, _, dbc := newDocumentFixture()
	doc := seedFakeDocument(docRepo, types.KindContract, nil, "v1.0", types.StatusDraft)

	if err := svc.Delete(dbc, doc.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := docRepo.docs[doc.ID]; ok {
		t.Fatalf("document still present after delete")
	}
}

func TestDeleteRejectsNonDraft(t *testing.T) {
	svc, docRepo, _, dbc := newDocumentFixture()
	doc := seedFakeDocument(docRepo, types.KindContract, nil, "v1.0", types.StatusActive)

	err := svc.Delete(dbc, doc.ID)
	if !apperr.IsKind(err, apperr.KindInvalidState) {
		t.Fatalf("expected INVALID_STATE, got %v", err)
	}
}

func TestDeleteRejectsAcceptedDraft(t *testing.T) {
	svc, docRepo, accRepo, dbc := newDocumentFixture()
	doc := seedFakeDocument(docRepo, types.KindContract, nil, "v1.0", types.StatusDraft)
	accRepo.rows = append(accRepo.rows, &types.DocumentAcceptance{
		ID:           uuid.New(),
		DocumentID:   doc.ID,
		TenantID:     uuid.New(),
		DocumentKind: doc.DocumentKind,
	})

	err := svc.Delete(dbc, doc.ID)
	if !apperr.IsKind(err, apperr.KindHasAcceptances) {
		t.Fatalf("expected HAS_ACCEPTANCES, got %v", err)
	}
	if _, ok := docRepo.docs[doc.ID]; !ok {
		t.Fatalf("document removed despite acceptances")
	}
}

func TestFindAllFillsAcceptanceCounts(t *testing.T) {
	svc, docRepo, accRepo, dbc := newDocumentFixture()
	doc := seedFakeDocument(docRepo, types.KindContract, nil, "v1.0", types.StatusActive)
	for i := 0; i < 3; i++ {
		accRepo.rows = append(accRepo.rows, &types.DocumentAcceptance{
			ID:           uuid.New(),
			DocumentID:   doc.ID,
			TenantID:     uuid.New(),
			DocumentKind: doc.DocumentKind,
		})
	}

	docs, err := svc.FindAll(dbc, legalrepo.ListFilter{Kind: types.KindContract})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].AcceptanceCount != 3 {
		t.Fatalf("expected acceptance_count 3, got %d", docs[0].AcceptanceCount)
	}
}

func TestFindActiveForPlanPrefersSpecific(t *testing.T) {
	svc, docRepo, _, dbc := newDocumentFixture()
	planID := uuid.New()
	seedFakeDocument(docRepo, types.KindContract, nil, "v1.0", types.StatusActive)
	specific := seedFakeDocument(docRepo, types.KindContract, &planID, "v2.0", types.StatusActive)

	found, err := svc.FindActiveForPlan(dbc, types.KindContract, &planID)
	if err != nil {
		t.Fatalf("FindActiveForPlan: %v", err)
	}
	if found.ID != specific.ID {
		t.Fatalf("expected plan-specific document %s, got %s", specific.ID, found.ID)
	}
}

func TestFindActiveForPlanFallsBackToGeneric(t *testing.T) {
	svc, docRepo, _, dbc := newDocumentFixture()
	planID := uuid.New()
	generic := seedFakeDocument(docRepo, types.KindContract, nil, "v1.0", types.StatusActive)

	found, err := svc.FindActiveForPlan(dbc, types.KindContract, &planID)
	if err != nil {
		t.Fatalf("FindActiveForPlan: %v", err)
	}
	if found.ID != generic.ID {
		t.Fatalf("expected generic document %s, got %s", generic.ID, found.ID)
	}
}

func TestFindActiveForPlanNoneActive(t *testing.T) {
	svc, docRepo, _, dbc := newDocumentFixture()
	seedFakeDocument(docRepo, types.KindContract, nil, "v1.0", types.StatusDraft)

	_, err := svc.FindActiveForPlan(dbc, types.KindContract, nil)
	if !apperr.IsKind(err, apperr.KindNoActiveDocument) {
		t.Fatalf("expected NO_ACTIVE_DOCUMENT, got %v", err)
	}
}

func TestNextVersionFromFamilyHistory(t *testing.T) {
	svc, docRepo, _, dbc := newDocumentFixture()
	seedFakeDocument(docRepo, types.KindContract, nil, "v1.0", types.StatusRevoked)
	seedFakeDocument(docRepo, types.KindContract, nil, "v1.5", types.StatusActive)
	seedFakeDocument(docRepo, types.KindContract, nil, "v2.1", types.StatusDraft)

	next, err := svc.NextVersion(dbc, types.KindContract, nil, false)
	if err != nil {
		t.Fatalf("NextVersion: %v", err)
	}
	if next != "v2.2" {
		t.Fatalf("expected v2.2, got %s", next)
	}

	next, err = svc.NextVersion(dbc, types.KindContract, nil, true)
	if err != nil {
		t.Fatalf("NextVersion: %v", err)
	}
	if next != "v3.0" {
		t.Fatalf("expected v3.0, got %s", next)
	}
}

func TestNextVersionEmptyFamily(t *testing.T) {
	svc, _, _, dbc := newDocumentFixture()

	next, err := svc.NextVersion(dbc, types.KindTermsOfService, nil, false)
	if err != nil {
		t.Fatalf("NextVersion: %v", err)
	}
	if next != "v1.0" {
		t.Fatalf("expected v1.0 for empty family, got %s", next)
	}
}

func TestRenderDoesNotMutateStored(t *testing.T) {
	svc, docRepo, _, dbc := newDocumentFixture()
	doc := seedFakeDocument(docRepo, types.KindContract, nil, "v1.0", types.StatusActive)
	doc.Content = "Contratante: {{tenant.name}}"
	doc.ContentHash = hash.ContentString(doc.Content)

	rendered, err := svc.Render(dbc, doc.ID, template.Variables{
		"tenant": map[string]any{"name": "Casa Recanto Feliz"},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if rendered.Content != "Contratante: Casa Recanto Feliz" {
		t.Fatalf("unexpected rendered content: %q", rendered.Content)
	}
	if docRepo.docs[doc.ID].Content != "Contratante: {{tenant.name}}" {
		t.Fatalf("stored template mutated by render")
	}
}
