package plan

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plan is a subscription plan a legal document can be scoped to. A nil
// Price means the plan is quoted on request; -1 on the limits means
// unlimited. Plan catalog management lives elsewhere; documents only need
// the scope key and the fields templates substitute.
type Plan struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	DisplayName  string    `gorm:"not null;column:display_name" json:"display_name"`
	Price        *float64  `gorm:"column:price" json:"price"`
	MaxUsers     int       `gorm:"not null;default:-1;column:max_users" json:"max_users"`
	MaxResidents int       `gorm:"not null;default:-1;column:max_residents" json:"max_residents"`
	TrialDays    int       `gorm:"not null;default:0;column:trial_days" json:"trial_days"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Plan) TableName() string { return "plan" }
