package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ticket states. USED is terminal. A LISTED ticket returns to ACTIVE on
// listing cancel, or to ACTIVE under the new owner when the listing sells.
const (
	TicketActive = "ACTIVE"
	TicketListed = "LISTED"
	TicketUsed   = "USED"
)

type Ticket struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TokenID      string          `gorm:"not null;index" json:"token_id"`
	Status       string          `gorm:"not null;default:'ACTIVE';index" json:"status"`
	PricePaid    decimal.Decimal `gorm:"type:numeric;not null" json:"price_paid"`
	OwnerAddress string          `gorm:"not null;index" json:"owner_address"`

	BuyerID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"buyer_id"`
	Buyer        *User      `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	TicketTypeID uuid.UUID  `gorm:"type:uuid;not null;index" json:"ticket_type_id"`
	TicketType   *TicketType `json:"ticket_type,omitempty"`
	EventID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"event_id"`

	UsedAt      *time.Time `json:"used_at,omitempty"`
	CheckedInBy *uuid.UUID `gorm:"type:uuid" json:"checked_in_by,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ticket *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	return
}
