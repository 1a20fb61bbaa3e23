package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionPrimary = "primary"
	TransactionResale  = "resale"
	TransactionGolden  = "golden"
)

// Transaction is the immutable settlement record written once per completed
// purchase. It is the audit trail: nothing in the codebase updates a
// Transaction after creation.
type Transaction struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Type string    `gorm:"not null;index" json:"type"`

	Quantity         int             `gorm:"not null" json:"quantity"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric;not null" json:"total_amount"`
	PlatformFee      decimal.Decimal `gorm:"type:numeric;not null" json:"platform_fee"`
	RoyaltyAmount    decimal.Decimal `gorm:"type:numeric;not null" json:"royalty_amount"`
	CommissionAmount decimal.Decimal `gorm:"type:numeric;not null" json:"commission_amount"`
	SellerAmount     decimal.Decimal `gorm:"type:numeric;not null" json:"seller_amount"`
	IsResale         bool            `gorm:"not null;default:false" json:"is_resale"`
	TxHash           string          `gorm:"not null" json:"tx_hash"`

	BuyerID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"buyer_id"`
	SellerID     *uuid.UUID `gorm:"type:uuid;index" json:"seller_id,omitempty"`
	EventID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"event_id"`
	TicketTypeID *uuid.UUID `gorm:"type:uuid;index" json:"ticket_type_id,omitempty"`
	TicketID     *uuid.UUID `gorm:"type:uuid;index" json:"ticket_id,omitempty"`
	ReferralID   *uuid.UUID `gorm:"type:uuid" json:"referral_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (txn *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	return
}
