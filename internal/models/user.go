package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles resolved from the login identifier. Stored denormalized on the user
// so the policy check never needs a join.
const (
	RoleAdmin     = "admin"
	RoleOrganizer = "organizer"
	RoleBuyer     = "buyer"
	RoleInspector = "inspector"
	RoleArtist    = "artist"
	RolePromoter  = "promoter"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Identifier    string    `gorm:"unique;not null" json:"identifier"`
	Role          string    `gorm:"not null" json:"role"`
	WalletAddress string    `gorm:"unique;not null" json:"wallet_address"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return
}
