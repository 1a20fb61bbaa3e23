package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event lifecycle. Status is mutated only by admin (approve/reject),
// the organizer (cancel), or the completed sweep (past end time).
const (
	EventPending   = "pending"
	EventApproved  = "approved"
	EventRejected  = "rejected"
	EventCancelled = "cancelled"
	EventCompleted = "completed"
)

// RoyaltySplit is the percentage share of a sale owed to each party.
// Embedded on Event; the percentages must sum to 100 or less.
type RoyaltySplit struct {
	OrganizerPct int `gorm:"not null;default:0" json:"organizer_pct"`
	ArtistPct    int `gorm:"not null;default:0" json:"artist_pct"`
	VenuePct     int `gorm:"not null;default:0" json:"venue_pct"`
	PlatformPct  int `gorm:"not null;default:0" json:"platform_pct"`
}

// ResaleTotalPct is the share withheld from a reseller: everything
// except the platform's cut, which is charged separately as the resale fee.
func (r RoyaltySplit) ResaleTotalPct() int {
	return r.OrganizerPct + r.ArtistPct + r.VenuePct
}

func (r RoyaltySplit) Validate() error {
	for _, pct := range []int{r.OrganizerPct, r.ArtistPct, r.VenuePct, r.PlatformPct} {
		if pct < 0 {
			return fmt.Errorf("royalty percentage must not be negative")
		}
	}
	if sum := r.OrganizerPct + r.ArtistPct + r.VenuePct + r.PlatformPct; sum > 100 {
		return fmt.Errorf("royalty percentages sum to %d, must not exceed 100", sum)
	}
	return nil
}

type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Category    string    `gorm:"index" json:"category"`
	Venue       string    `gorm:"not null" json:"venue"`
	City        string    `gorm:"index" json:"city"`
	StartTime   time.Time `gorm:"not null" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	Status      string    `gorm:"not null;default:'pending';index" json:"status"`
	BannerPath  string    `json:"banner_path,omitempty"`

	Royalty RoyaltySplit `gorm:"embedded;embeddedPrefix:royalty_" json:"royalty"`

	OrganizerID uuid.UUID    `gorm:"type:uuid;not null;index" json:"organizer_id"`
	Organizer   *User        `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	TicketTypes []TicketType `json:"ticket_types,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
