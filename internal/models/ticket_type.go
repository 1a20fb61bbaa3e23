package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TicketType is a purchasable SKU within an event. TotalSupply is immutable
// after creation; AvailableSupply only moves down through the conditional
// decrement in the settlement engine, or up through the admin correction
// endpoint. Invariant: 0 <= AvailableSupply <= TotalSupply.
type TicketType struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Price           decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	TotalSupply     int             `gorm:"not null" json:"total_supply"`
	AvailableSupply int             `gorm:"not null" json:"available_supply"`
	MaxPerWallet    int             `gorm:"not null;default:4" json:"max_per_wallet"`
	OnSale          bool            `gorm:"not null;default:true" json:"on_sale"`

	EventID uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	Event   *Event    `json:"event,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (tt *TicketType) BeforeCreate(tx *gorm.DB) (err error) {
	if tt.ID == uuid.Nil {
		tt.ID = uuid.New()
	}
	return
}

// SoldCount derives units sold from the supply counters.
func (tt *TicketType) SoldCount() int {
	return tt.TotalSupply - tt.AvailableSupply
}
