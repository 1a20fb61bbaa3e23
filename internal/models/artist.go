package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ArtistTierRising   = "rising"
	ArtistTierHeadline = "headline"
	ArtistTierLegend   = "legend"
)

// Artist verification workflow.
const (
	VerificationNone     = "none"
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

type ArtistProfile struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StageName          string    `gorm:"not null" json:"stage_name"`
	Bio                string    `json:"bio"`
	Tier               string    `gorm:"not null;default:'rising'" json:"tier"`
	VerificationStatus string    `gorm:"not null;default:'none'" json:"verification_status"`
	VerifiedAt         *time.Time `json:"verified_at,omitempty"`

	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User   *User     `json:"user,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (profile *ArtistProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	return
}

var tierPerks = map[string][]string{
	ArtistTierRising:   {"profile badge", "golden ticket minting"},
	ArtistTierHeadline: {"profile badge", "golden ticket minting", "bonus royalty 2%", "featured placement"},
	ArtistTierLegend:   {"profile badge", "golden ticket minting", "bonus royalty 5%", "featured placement", "early payout"},
}

// Perks lists the perks unlocked by the profile's tier. Unknown tiers get
// the rising set.
func (profile *ArtistProfile) Perks() []string {
	if perks, ok := tierPerks[profile.Tier]; ok {
		return perks
	}
	return tierPerks[ArtistTierRising]
}

// BonusRoyaltyPct is the extra royalty share granted by the tier, applied
// on top of a golden ticket's base royalty.
func (profile *ArtistProfile) BonusRoyaltyPct() int {
	switch profile.Tier {
	case ArtistTierHeadline:
		return 2
	case ArtistTierLegend:
		return 5
	default:
		return 0
	}
}
