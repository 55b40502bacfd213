package tenant

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant is the institution (ILPI) that contracts the platform. Only the
// identification fields consumed by acceptance reads and contract variables
// live here; everything else about tenants belongs to other services.
type Tenant struct {
	ID    uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name  string    `gorm:"not null;column:name" json:"name"`
	CNPJ  string    `gorm:"uniqueIndex;column:cnpj" json:"cnpj"`
	Email string    `gorm:"not null;column:email" json:"email"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Tenant) TableName() string { return "tenant" }
