package legal

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casaviva/casaviva-backend/internal/domain/tenant"
)

// DocumentAcceptance is the durable record that a tenant accepted one exact
// document version. Rows are written by the onboarding flow when it
// exchanges an acceptance token; this subsystem only reads them, for the
// legal-retention check on delete and for the admin listing.
type DocumentAcceptance struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	DocumentID uuid.UUID      `gorm:"not null;index;column:document_id" json:"document_id"`
	Document   *LegalDocument `gorm:"constraint:OnDelete:RESTRICT;foreignKey:DocumentID;references:ID" json:"document,omitempty"`
	TenantID   uuid.UUID      `gorm:"not null;uniqueIndex:uq_document_acceptance_tenant_kind,priority:1;column:tenant_id" json:"tenant_id"`
	Tenant     *tenant.Tenant `gorm:"foreignKey:TenantID;references:ID" json:"tenant,omitempty"`
	UserID     uuid.UUID      `gorm:"not null;column:user_id" json:"user_id"`

	DocumentKind DocumentKind `gorm:"not null;uniqueIndex:uq_document_acceptance_tenant_kind,priority:2;column:document_kind" json:"document_kind"`

	// renderedContentHash of the snapshot the tenant actually saw, and the
	// snapshot itself, copied verbatim out of the acceptance token so the
	// proof survives any later edit of the source document.
	RenderedContentHash string `gorm:"not null;column:rendered_content_hash" json:"rendered_content_hash"`
	RenderedContent     string `gorm:"type:text;not null;column:rendered_content" json:"rendered_content"`

	IPAddress  string    `gorm:"column:ip_address" json:"ip_address"`
	UserAgent  string    `gorm:"type:text;column:user_agent" json:"user_agent"`
	AcceptedAt time.Time `gorm:"not null;default:now();column:accepted_at" json:"accepted_at"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (DocumentAcceptance) TableName() string { return "document_acceptance" }
