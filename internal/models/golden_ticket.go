package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GoldenTicket is a premium collectible class owned by a verified artist.
// When IsLimited, SoldQuantity is incremented against MaxQuantity with the
// same conditional-update guard as ticket-type supply.
type GoldenTicket struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Description     string          `json:"description"`
	BasePrice       decimal.Decimal `gorm:"type:numeric;not null" json:"base_price"`
	PriceMultiplier decimal.Decimal `gorm:"type:numeric;not null;default:1" json:"price_multiplier"`
	RoyaltyPct      int             `gorm:"not null;default:0" json:"royalty_pct"`
	BonusRoyaltyPct int             `gorm:"not null;default:0" json:"bonus_royalty_pct"`
	IsLimited       bool            `gorm:"not null;default:false" json:"is_limited"`
	MaxQuantity     int             `gorm:"not null;default:0" json:"max_quantity"`
	SoldQuantity    int             `gorm:"not null;default:0" json:"sold_quantity"`

	ArtistID uuid.UUID  `gorm:"type:uuid;not null;index" json:"artist_id"`
	Artist   *User      `gorm:"foreignKey:ArtistID" json:"artist,omitempty"`
	EventID  *uuid.UUID `gorm:"type:uuid;index" json:"event_id,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (gt *GoldenTicket) BeforeCreate(tx *gorm.DB) (err error) {
	if gt.ID == uuid.Nil {
		gt.ID = uuid.New()
	}
	return
}

// TotalRoyaltyPct is the artist base royalty plus the golden-tier bonus.
func (gt *GoldenTicket) TotalRoyaltyPct() int {
	return gt.RoyaltyPct + gt.BonusRoyaltyPct
}

// GoldenPurchase records a settled golden-ticket sale together with the
// synthesized collectible metadata. Immutable once written.
type GoldenPurchase struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	FinalPrice    decimal.Decimal `gorm:"type:numeric;not null" json:"final_price"`
	PlatformFee   decimal.Decimal `gorm:"type:numeric;not null" json:"platform_fee"`
	RoyaltyAmount decimal.Decimal `gorm:"type:numeric;not null" json:"royalty_amount"`
	TokenID       string          `gorm:"not null" json:"token_id"`
	TxHash        string          `gorm:"not null" json:"tx_hash"`
	Metadata      string          `gorm:"type:text" json:"metadata"`

	GoldenTicketID uuid.UUID     `gorm:"type:uuid;not null;index" json:"golden_ticket_id"`
	GoldenTicket   *GoldenTicket `json:"golden_ticket,omitempty"`
	BuyerID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"buyer_id"`
	Buyer          *User         `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (gp *GoldenPurchase) BeforeCreate(tx *gorm.DB) (err error) {
	if gp.ID == uuid.Nil {
		gp.ID = uuid.New()
	}
	return
}
