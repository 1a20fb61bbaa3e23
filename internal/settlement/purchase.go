package settlement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ticketchain/ticketchain/internal/models"
)

type PurchaseInput struct {
	BuyerID      uuid.UUID
	BuyerAddress string
	TicketTypeID uuid.UUID
	Quantity     int
	ReferralCode string
}

type PurchaseResult struct {
	Tickets     []models.Ticket
	Transaction models.Transaction
	// Milestones holds the percent-sold thresholds (50/75/100) this
	// purchase pushed the ticket type across.
	Milestones  []int
	EventID     uuid.UUID
	EventTitle  string
	OrganizerID uuid.UUID
}

// Purchase settles a primary sale. The ticket-type row is locked for the
// duration of the transaction, which serializes the supply check, the
// wallet-limit count and the decrement against concurrent purchases of the
// same type. Everything commits or nothing does.
func (e *Engine) Purchase(ctx context.Context, in PurchaseInput) (*PurchaseResult, error) {
	result := &PurchaseResult{}

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tt models.TicketType
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Event").
			First(&tt, "id = ?", in.TicketTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketTypeNotFound
			}
			return err
		}

		if tt.Event == nil || tt.Event.Status != models.EventApproved || !tt.OnSale {
			return ErrEventNotOnSale
		}
		if tt.AvailableSupply < in.Quantity {
			return ErrInsufficientSupply
		}

		var held int64
		if err := tx.Model(&models.Ticket{}).
			Where("ticket_type_id = ? AND buyer_id = ? AND status IN ?",
				tt.ID, in.BuyerID, []string{models.TicketActive, models.TicketUsed}).
			Count(&held).Error; err != nil {
			return err
		}
		if !WalletLimitOK(int(held), in.Quantity, tt.MaxPerWallet) {
			return ErrWalletLimitExceeded
		}

		// The row is locked, but the decrement keeps its own floor guard so
		// the supply invariant holds even if the lock is ever dropped.
		dec := tx.Model(&models.TicketType{}).
			Where("id = ? AND available_supply >= ?", tt.ID, in.Quantity).
			UpdateColumn("available_supply", gorm.Expr("available_supply - ?", in.Quantity))
		if dec.Error != nil {
			return dec.Error
		}
		if dec.RowsAffected == 0 {
			return ErrInsufficientSupply
		}

		minted, err := e.provider.Mint(ctx, in.BuyerAddress, tt.ID.String(), in.Quantity)
		if err != nil {
			return err
		}

		tickets := make([]models.Ticket, 0, in.Quantity)
		for _, tokenID := range minted.TokenIDs {
			tickets = append(tickets, models.Ticket{
				TokenID:      tokenID,
				Status:       models.TicketActive,
				PricePaid:    tt.Price,
				OwnerAddress: in.BuyerAddress,
				BuyerID:      in.BuyerID,
				TicketTypeID: tt.ID,
				EventID:      tt.EventID,
			})
		}
		if err := tx.Create(&tickets).Error; err != nil {
			return err
		}

		total := PrimaryTotal(tt.Price, in.Quantity, e.primaryFeeRate)
		txn := models.Transaction{
			Type:         models.TransactionPrimary,
			Quantity:     in.Quantity,
			TotalAmount:  total,
			PlatformFee:  PrimaryFee(tt.Price, in.Quantity, e.primaryFeeRate),
			SellerAmount: total.Sub(PrimaryFee(tt.Price, in.Quantity, e.primaryFeeRate)),
			TxHash:       minted.TxHash,
			BuyerID:      in.BuyerID,
			SellerID:     &tt.Event.OrganizerID,
			EventID:      tt.EventID,
			TicketTypeID: &tt.ID,
		}

		if in.ReferralCode != "" {
			if err := e.applyReferral(tx, in.ReferralCode, tt.EventID, total, &txn); err != nil {
				return err
			}
		}

		if err := tx.Create(&txn).Error; err != nil {
			return err
		}

		preSold := tt.SoldCount()
		result.Tickets = tickets
		result.Transaction = txn
		result.Milestones = MilestonesCrossed(preSold, preSold+in.Quantity, tt.TotalSupply)
		result.EventID = tt.EventID
		result.EventTitle = tt.Event.Title
		result.OrganizerID = tt.Event.OrganizerID
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("primary purchase settled",
		zap.String("buyer_id", in.BuyerID.String()),
		zap.String("ticket_type_id", in.TicketTypeID.String()),
		zap.Int("quantity", in.Quantity),
		zap.String("total", result.Transaction.TotalAmount.String()),
	)
	return result, nil
}

// applyReferral credits the promoter when the cited code exists, is active
// and matches the event. An invalid code does not fail the purchase; the
// buyer simply gets no commission attributed.
func (e *Engine) applyReferral(tx *gorm.DB, code string, eventID uuid.UUID, total decimal.Decimal, txn *models.Transaction) error {
	var ref models.Referral
	err := tx.Where("code = ? AND event_id = ? AND is_active = ?", code, eventID, true).First(&ref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			e.logger.Warn("referral code not applicable", zap.String("code", code))
			return nil
		}
		return err
	}

	commission := ReferralCommission(total, ref.CommissionRate)
	upd := tx.Model(&models.Referral{}).
		Where("id = ?", ref.ID).
		Updates(map[string]interface{}{
			"usage_count":    gorm.Expr("usage_count + 1"),
			"total_earnings": gorm.Expr("total_earnings + ?", commission),
		})
	if upd.Error != nil {
		return upd.Error
	}

	txn.CommissionAmount = commission
	txn.ReferralID = &ref.ID
	return nil
}
