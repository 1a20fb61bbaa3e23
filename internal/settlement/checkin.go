package settlement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ticketchain/ticketchain/internal/models"
)

type CheckInInput struct {
	InspectorID uuid.UUID
	TicketID    uuid.UUID
	TokenID     string
	// EventID narrows the check to one event's gate; zero value skips it.
	EventID uuid.UUID
}

// CheckInResult reports the transition. On an ErrTicketUsed rejection the
// prior check-in metadata is still populated so the gate can show when and
// by whom the ticket was consumed.
type CheckInResult struct {
	Ticket      models.Ticket
	UsedAt      *time.Time
	CheckedInBy *uuid.UUID
}

// CheckIn performs the one-way ACTIVE -> USED transition. Preconditions run
// in a fixed order (exists, token match, event match, not used, not listed,
// ownership verified); the final update is conditional on status still
// being ACTIVE, which is the idempotency guard: a concurrent duplicate
// lands on the USED path the second time.
func (e *Engine) CheckIn(ctx context.Context, in CheckInInput) (*CheckInResult, error) {
	result := &CheckInResult{}

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket models.Ticket
		if err := tx.First(&ticket, "id = ?", in.TicketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}
		result.Ticket = ticket

		if in.TokenID != "" && ticket.TokenID != in.TokenID {
			return ErrTokenMismatch
		}
		if in.EventID != uuid.Nil && ticket.EventID != in.EventID {
			return ErrEventMismatch
		}
		if ticket.Status == models.TicketUsed {
			result.UsedAt = ticket.UsedAt
			result.CheckedInBy = ticket.CheckedInBy
			return ErrTicketUsed
		}
		if ticket.Status == models.TicketListed {
			return ErrTicketListed
		}

		owned, err := e.provider.VerifyOwnership(ctx, ticket.OwnerAddress, ticket.TokenID)
		if err != nil {
			return err
		}
		if !owned {
			return ErrOwnershipUnverified
		}

		now := time.Now()
		use := tx.Model(&models.Ticket{}).
			Where("id = ? AND status = ?", ticket.ID, models.TicketActive).
			Updates(map[string]interface{}{
				"status":        models.TicketUsed,
				"used_at":       now,
				"checked_in_by": in.InspectorID,
			})
		if use.Error != nil {
			return use.Error
		}
		if use.RowsAffected == 0 {
			// Lost the race: someone consumed or listed it between the read
			// and the update. Re-read so the rejection is accurate.
			if err := tx.First(&ticket, "id = ?", ticket.ID).Error; err != nil {
				return err
			}
			if ticket.Status == models.TicketUsed {
				result.UsedAt = ticket.UsedAt
				result.CheckedInBy = ticket.CheckedInBy
				return ErrTicketUsed
			}
			return ErrTicketListed
		}

		result.Ticket.Status = models.TicketUsed
		result.Ticket.UsedAt = &now
		result.Ticket.CheckedInBy = &in.InspectorID
		result.UsedAt = &now
		result.CheckedInBy = &in.InspectorID
		return nil
	})
	if err != nil {
		return result, err
	}

	e.logger.Info("ticket checked in",
		zap.String("ticket_id", in.TicketID.String()),
		zap.String("inspector_id", in.InspectorID.String()),
	)
	return result, nil
}
