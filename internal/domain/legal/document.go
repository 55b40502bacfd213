package legal

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casaviva/casaviva-backend/internal/domain/plan"
)

// DocumentKind selects one of the two parallel document families. Both
// follow the same lifecycle rules.
type DocumentKind string

const (
	KindContract       DocumentKind = "CONTRACT"
	KindTermsOfService DocumentKind = "TERMS_OF_SERVICE"
)

// DocumentStatus is the lifecycle state. DRAFT can only become ACTIVE,
// ACTIVE can only become REVOKED, REVOKED is terminal.
type DocumentStatus string

const (
	StatusDraft   DocumentStatus = "DRAFT"
	StatusActive  DocumentStatus = "ACTIVE"
	StatusRevoked DocumentStatus = "REVOKED"
)

// LegalDocument is one version of a legally-binding document. The family is
// (document_kind, plan_id); plan_id null means the generic document that
// applies to every plan without a more specific one.
type LegalDocument struct {
	ID           uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	DocumentKind DocumentKind `gorm:"not null;index:idx_legal_document_family;uniqueIndex:uq_legal_document_family_version,priority:1;column:document_kind" json:"document_kind"`
	PlanID       *uuid.UUID   `gorm:"index:idx_legal_document_family;uniqueIndex:uq_legal_document_family_version,priority:2;column:plan_id" json:"plan_id"`
	Plan         *plan.Plan   `gorm:"foreignKey:PlanID;references:ID" json:"plan,omitempty"`

	Version string `gorm:"not null;uniqueIndex:uq_legal_document_family_version,priority:3;column:version" json:"version"`
	Title   string `gorm:"not null;column:title" json:"title"`
	Content string `gorm:"type:text;not null;column:content" json:"content"`
	// ContentHash fingerprints the raw authored template, not the rendered
	// text. It is recomputed on every DRAFT content change and frozen the
	// moment the document becomes ACTIVE.
	ContentHash string `gorm:"not null;column:content_hash" json:"content_hash"`

	Status        DocumentStatus `gorm:"not null;default:DRAFT;index;column:status" json:"status"`
	EffectiveFrom *time.Time     `gorm:"column:effective_from" json:"effective_from,omitempty"`
	RevokedAt     *time.Time     `gorm:"column:revoked_at" json:"revoked_at,omitempty"`
	RevokedBy     *uuid.UUID     `gorm:"column:revoked_by" json:"revoked_by,omitempty"`
	CreatedBy     uuid.UUID      `gorm:"not null;column:created_by" json:"created_by"`

	// AcceptanceCount is filled by the service layer on reads; it is not a
	// column.
	AcceptanceCount int64 `gorm:"-" json:"acceptance_count"`

	CreatedAt time.Time      `gorm:"not null;default:now();column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LegalDocument) TableName() string { return "legal_document" }

// IsDraft reports whether the document can still be edited or deleted.
func (d *LegalDocument) IsDraft() bool { return d.Status == StatusDraft }

// IsActive reports whether the document is the one currently in force for
// its family.
func (d *LegalDocument) IsActive() bool { return d.Status == StatusActive }
