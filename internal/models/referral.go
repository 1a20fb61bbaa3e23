package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Referral is a promoter-owned code tied to one event. Usage count and
// earnings are incremented inside the same transaction as the purchase
// that cites the code.
type Referral struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Code           string          `gorm:"unique;not null" json:"code"`
	CommissionRate int             `gorm:"not null" json:"commission_rate"`
	IsActive       bool            `gorm:"not null;default:true" json:"is_active"`
	UsageCount     int             `gorm:"not null;default:0" json:"usage_count"`
	TotalEarnings  decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"total_earnings"`

	EventID    uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	Event      *Event    `json:"event,omitempty"`
	PromoterID uuid.UUID `gorm:"type:uuid;not null;index" json:"promoter_id"`
	Promoter   *User     `gorm:"foreignKey:PromoterID" json:"promoter,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (referral *Referral) BeforeCreate(tx *gorm.DB) (err error) {
	if referral.ID == uuid.Nil {
		referral.ID = uuid.New()
	}
	return
}
