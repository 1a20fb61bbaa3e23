package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Listing states. Re-listing a ticket after a cancel reuses the cancelled
// row with a fresh price and listed_at instead of creating a second row,
// so the unique index on ticket_id enforces at most one listing per ticket.
const (
	ListingActive    = "active"
	ListingSold      = "sold"
	ListingCancelled = "cancelled"
)

type Listing struct {
	ID     uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Price  decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	Status string          `gorm:"not null;default:'active';index" json:"status"`

	TicketID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"ticket_id"`
	Ticket   *Ticket   `json:"ticket,omitempty"`
	SellerID uuid.UUID `gorm:"type:uuid;not null;index" json:"seller_id"`
	Seller   *User     `gorm:"foreignKey:SellerID" json:"seller,omitempty"`

	ListedAt time.Time  `gorm:"not null" json:"listed_at"`
	SoldAt   *time.Time `json:"sold_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (listing *Listing) BeforeCreate(tx *gorm.DB) (err error) {
	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	return
}
