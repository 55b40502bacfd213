package services

import (
	"sort"

	"github.com/google/uuid"

	legalrepo "github.com/casaviva/casaviva-backend/internal/data/repos/legal"
	userrepo "github.com/casaviva/casaviva-backend/internal/data/repos/user"
	types "github.com/casaviva/casaviva-backend/internal/domain"
	"github.com/casaviva/casaviva-backend/internal/pkg/dbctx"
	"github.com/casaviva/casaviva-backend/internal/pkg/logger"
)

func testLogger() *logger.Logger {
	l, err := logger.New("test")
	if err != nil {
		panic(err)
	}
	return l
}

// fakeDocumentRepo keeps documents in memory so service logic can be
// exercised without a database. Only publish's transactional path needs the
// real thing; that lives in the integration tests.
type fakeDocumentRepo struct {
	docs map[uuid.UUID]*types.LegalDocument
}

var _ legalrepo.LegalDocumentRepo = (*fakeDocumentRepo)(nil)

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: map[uuid.UUID]*types.LegalDocument{}}
}

func (f *fakeDocumentRepo) sameFamily(d *types.LegalDocument, kind types.DocumentKind, planID *uuid.UUID) bool {
	if d.DocumentKind != kind {
		return false
	}
	if planID == nil {
		return d.PlanID == nil
	}
	return d.PlanID != nil && *d.PlanID == *planID
}

func (f *fakeDocumentRepo) Create(_ dbctx.Context, docs []*types.LegalDocument) ([]*types.LegalDocument, error) {
	for _, d := range docs {
		copied := *d
		f.docs[d.ID] = &copied
	}
	return docs, nil
}

func (f *fakeDocumentRepo) Update(_ dbctx.Context, doc *types.LegalDocument) error {
	copied := *doc
	f.docs[doc.ID] = &copied
	return nil
}

func (f *fakeDocumentRepo) GetByIDs(_ dbctx.Context, ids []uuid.UUID) ([]*types.LegalDocument, error) {
	var out []*types.LegalDocument
	for _, id := range ids {
		if d, ok := f.docs[id]; ok {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) GetByVersionInFamily(_ dbctx.Context, kind types.DocumentKind, planID *uuid.UUID, version string) ([]*types.LegalDocument, error) {
	var out []*types.LegalDocument
	for _, d := range f.docs {
		if f.sameFamily(d, kind, planID) && d.Version == version {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) ListFamilyVersions(_ dbctx.Context, kind types.DocumentKind, planID *uuid.UUID) ([]string, error) {
	var out []string
	for _, d := range f.docs {
		if f.sameFamily(d, kind, planID) {
			out = append(out, d.Version)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeDocumentRepo) List(_ dbctx.Context, filter legalrepo.ListFilter) ([]*types.LegalDocument, error) {
	var out []*types.LegalDocument
	for _, d := range f.docs {
		if filter.Kind != "" && d.DocumentKind != filter.Kind {
			continue
		}
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		if filter.PlanID != nil && (d.PlanID == nil || *d.PlanID != *filter.PlanID) {
			continue
		}
		copied := *d
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeDocumentRepo) GetActiveInFamily(_ dbctx.Context, kind types.DocumentKind, planID *uuid.UUID) ([]*types.LegalDocument, error) {
	var out []*types.LegalDocument
	for _, d := range f.docs {
		if f.sameFamily(d, kind, planID) && d.Status == types.StatusActive {
			copied := *d
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].EffectiveFrom, out[j].EffectiveFrom
		if ti == nil || tj == nil {
			return tj == nil
		}
		return ti.After(*tj)
	})
	return out, nil
}

func (f *fakeDocumentRepo) LockFamily(dbc dbctx.Context, kind types.DocumentKind, planID *uuid.UUID) ([]*types.LegalDocument, error) {
	var out []*types.LegalDocument
	for _, d := range f.docs {
		if f.sameFamily(d, kind, planID) {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) FullDeleteByIDs(_ dbctx.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(f.docs, id)
	}
	return nil
}

// fakeAcceptanceRepo serves counts and rows from memory.
type fakeAcceptanceRepo struct {
	rows []*types.DocumentAcceptance
}

var _ legalrepo.DocumentAcceptanceRepo = (*fakeAcceptanceRepo)(nil)

func (f *fakeAcceptanceRepo) Create(_ dbctx.Context, acceptances []*types.DocumentAcceptance) ([]*types.DocumentAcceptance, error) {
	f.rows = append(f.rows, acceptances...)
	return acceptances, nil
}

func (f *fakeAcceptanceRepo) CountByDocumentIDs(_ dbctx.Context, documentIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := map[uuid.UUID]int64{}
	for _, id := range documentIDs {
		for _, r := range f.rows {
			if r.DocumentID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

func (f *fakeAcceptanceRepo) GetByDocumentIDs(_ dbctx.Context, documentIDs []uuid.UUID) ([]*types.DocumentAcceptance, error) {
	var out []*types.DocumentAcceptance
	for _, r := range f.rows {
		for _, id := range documentIDs {
			if r.DocumentID == id {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (f *fakeAcceptanceRepo) GetByTenantIDs(_ dbctx.Context, tenantIDs []uuid.UUID) ([]*types.DocumentAcceptance, error) {
	var out []*types.DocumentAcceptance
	for _, r := range f.rows {
		for _, id := range tenantIDs {
			if r.TenantID == id {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

// fakeUserRepo holds users in memory for auth/reauth tests.
type fakeUserRepo struct {
	users []*types.User
}

var _ userrepo.UserRepo = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) Create(_ dbctx.Context, users []*types.User) ([]*types.User, error) {
	f.users = append(f.users, users...)
	return users, nil
}

func (f *fakeUserRepo) GetByIDs(_ dbctx.Context, ids []uuid.UUID) ([]*types.User, error) {
	var out []*types.User
	for _, u := range f.users {
		for _, id := range ids {
			if u.ID == id {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetByEmails(_ dbctx.Context, emails []string) ([]*types.User, error) {
	var out []*types.User
	for _, u := range f.users {
		for _, e := range emails {
			if u.Email == e {
				out = append(out, u)
			}
		}
	}
	return out, nil
}
