package settlement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ticketchain/ticketchain/internal/models"
)

type ListInput struct {
	SellerID uuid.UUID
	TicketID uuid.UUID
	Price    decimal.Decimal
}

// List puts an owned ACTIVE ticket up for resale. The ticket state flip is
// a conditional update from ACTIVE, so two concurrent list calls cannot
// both succeed; the loser sees either AlreadyListed or InvalidState.
// A cancelled listing row for the same ticket is reactivated in place with
// the new price rather than replaced.
func (e *Engine) List(ctx context.Context, in ListInput) (*models.Listing, error) {
	var listing models.Listing

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket models.Ticket
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ticket, "id = ?", in.TicketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}

		if ticket.BuyerID != in.SellerID {
			return ErrNotOwner
		}
		if ticket.Status == models.TicketListed {
			return ErrAlreadyListed
		}
		if ticket.Status != models.TicketActive {
			return ErrInvalidState
		}

		flip := tx.Model(&models.Ticket{}).
			Where("id = ? AND status = ?", ticket.ID, models.TicketActive).
			Update("status", models.TicketListed)
		if flip.Error != nil {
			return flip.Error
		}
		if flip.RowsAffected == 0 {
			return ErrInvalidState
		}

		err := tx.Where("ticket_id = ?", ticket.ID).First(&listing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			listing = models.Listing{
				Price:    in.Price,
				Status:   models.ListingActive,
				TicketID: ticket.ID,
				SellerID: in.SellerID,
				ListedAt: time.Now(),
			}
			return tx.Create(&listing).Error
		case err != nil:
			return err
		case listing.Status == models.ListingActive:
			return ErrAlreadyListed
		default:
			listing.Price = in.Price
			listing.Status = models.ListingActive
			listing.SellerID = in.SellerID
			listing.ListedAt = time.Now()
			listing.SoldAt = nil
			return tx.Save(&listing).Error
		}
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("ticket listed",
		zap.String("ticket_id", in.TicketID.String()),
		zap.String("price", in.Price.String()),
	)
	return &listing, nil
}

// CancelListing returns a listed ticket to its owner's hands: listing
// active -> cancelled, ticket LISTED -> ACTIVE.
func (e *Engine) CancelListing(ctx context.Context, sellerID, listingID uuid.UUID) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&listing, "id = ?", listingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotFound
			}
			return err
		}

		if listing.SellerID != sellerID {
			return ErrNotOwner
		}
		if listing.Status != models.ListingActive {
			return ErrListingNotFound
		}

		if err := tx.Model(&listing).Update("status", models.ListingCancelled).Error; err != nil {
			return err
		}

		flip := tx.Model(&models.Ticket{}).
			Where("id = ? AND status = ?", listing.TicketID, models.TicketListed).
			Update("status", models.TicketActive)
		if flip.Error != nil {
			return flip.Error
		}
		if flip.RowsAffected == 0 {
			// Ticket was not LISTED while its listing was active. Fail the
			// transaction rather than cancel a listing over a broken pair.
			return ErrInvalidState
		}
		return nil
	})
}

type ResalePurchaseInput struct {
	BuyerID      uuid.UUID
	BuyerAddress string
	ListingID    uuid.UUID
}

type ResaleResult struct {
	Listing     models.Listing
	Ticket      models.Ticket
	Transaction models.Transaction
}

// PurchaseListing settles a resale. The listing row is locked and flipped
// to sold conditionally, so a listing can only ever sell once. The royalty
// share is computed from the event's split and recorded on the transaction;
// it is not paid out here (payout is a separate ledger concern).
func (e *Engine) PurchaseListing(ctx context.Context, in ResalePurchaseInput) (*ResaleResult, error) {
	result := &ResaleResult{}

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Ticket").
			First(&listing, "id = ?", in.ListingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotFound
			}
			return err
		}

		if listing.Status != models.ListingActive || listing.Ticket == nil {
			return ErrListingNotFound
		}
		if listing.SellerID == in.BuyerID {
			return ErrSelfPurchase
		}

		var event models.Event
		if err := tx.First(&event, "id = ?", listing.Ticket.EventID).Error; err != nil {
			return err
		}

		platformFee, royaltyAmount, sellerAmount := ResaleSplit(listing.Price, event.Royalty.ResaleTotalPct())

		txHash, err := e.provider.Transfer(ctx, listing.Ticket.OwnerAddress, in.BuyerAddress, listing.Ticket.TokenID)
		if err != nil {
			return err
		}

		now := time.Now()
		sold := tx.Model(&models.Listing{}).
			Where("id = ? AND status = ?", listing.ID, models.ListingActive).
			Updates(map[string]interface{}{"status": models.ListingSold, "sold_at": now})
		if sold.Error != nil {
			return sold.Error
		}
		if sold.RowsAffected == 0 {
			return ErrListingNotFound
		}

		handover := tx.Model(&models.Ticket{}).
			Where("id = ? AND status = ?", listing.TicketID, models.TicketListed).
			Updates(map[string]interface{}{
				"status":        models.TicketActive,
				"buyer_id":      in.BuyerID,
				"owner_address": in.BuyerAddress,
				"price_paid":    listing.Price,
			})
		if handover.Error != nil {
			return handover.Error
		}
		if handover.RowsAffected == 0 {
			return ErrInvalidState
		}

		txn := models.Transaction{
			Type:          models.TransactionResale,
			Quantity:      1,
			TotalAmount:   listing.Price,
			PlatformFee:   platformFee,
			RoyaltyAmount: royaltyAmount,
			SellerAmount:  sellerAmount,
			IsResale:      true,
			TxHash:        txHash,
			BuyerID:       in.BuyerID,
			SellerID:      &listing.SellerID,
			EventID:       listing.Ticket.EventID,
			TicketTypeID:  &listing.Ticket.TicketTypeID,
			TicketID:      &listing.TicketID,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}

		listing.Status = models.ListingSold
		listing.SoldAt = &now
		result.Listing = listing
		result.Transaction = txn

		return tx.First(&result.Ticket, "id = ?", listing.TicketID).Error
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("resale settled",
		zap.String("listing_id", in.ListingID.String()),
		zap.String("buyer_id", in.BuyerID.String()),
		zap.String("price", result.Listing.Price.String()),
	)
	return result, nil
}
