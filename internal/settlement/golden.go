package settlement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ticketchain/ticketchain/internal/models"
)

type GoldenPurchaseInput struct {
	BuyerID        uuid.UUID
	BuyerAddress   string
	GoldenTicketID uuid.UUID
}

// goldenMetadata is the synthesized collectible descriptor stored with the
// purchase record.
type goldenMetadata struct {
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	Edition    int    `json:"edition"`
	TokenID    string `json:"token_id"`
	MintedAt   string `json:"minted_at"`
	Collection string `json:"collection"`
}

// PurchaseGolden settles a golden-ticket sale. Structurally a primary
// purchase with different multipliers: same row lock, same conditional
// counter guard (sold_quantity against max_quantity when limited), one
// transaction for the whole flow.
func (e *Engine) PurchaseGolden(ctx context.Context, in GoldenPurchaseInput) (*models.GoldenPurchase, error) {
	var purchase models.GoldenPurchase

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var gt models.GoldenTicket
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Artist").
			First(&gt, "id = ?", in.GoldenTicketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGoldenNotFound
			}
			return err
		}

		if gt.IsLimited {
			inc := tx.Model(&models.GoldenTicket{}).
				Where("id = ? AND sold_quantity < max_quantity", gt.ID).
				UpdateColumn("sold_quantity", gorm.Expr("sold_quantity + 1"))
			if inc.Error != nil {
				return inc.Error
			}
			if inc.RowsAffected == 0 {
				return ErrGoldenSoldOut
			}
		} else {
			if err := tx.Model(&models.GoldenTicket{}).
				Where("id = ?", gt.ID).
				UpdateColumn("sold_quantity", gorm.Expr("sold_quantity + 1")).Error; err != nil {
				return err
			}
		}

		finalPrice, platformFee, royaltyAmount := GoldenSettlement(gt.BasePrice, gt.PriceMultiplier, gt.TotalRoyaltyPct())

		minted, err := e.provider.Mint(ctx, in.BuyerAddress, "golden-"+gt.ID.String(), 1)
		if err != nil {
			return err
		}
		tokenID := minted.TokenIDs[0]

		artistName := gt.ArtistID.String()
		if gt.Artist != nil {
			artistName = gt.Artist.Identifier
		}
		meta, err := json.Marshal(goldenMetadata{
			Name:       gt.Name,
			Artist:     artistName,
			Edition:    gt.SoldQuantity + 1,
			TokenID:    tokenID,
			MintedAt:   time.Now().UTC().Format(time.RFC3339),
			Collection: fmt.Sprintf("ticketchain-golden-%s", gt.ID),
		})
		if err != nil {
			return err
		}

		purchase = models.GoldenPurchase{
			FinalPrice:     finalPrice,
			PlatformFee:    platformFee,
			RoyaltyAmount:  royaltyAmount,
			TokenID:        tokenID,
			TxHash:         minted.TxHash,
			Metadata:       string(meta),
			GoldenTicketID: gt.ID,
			BuyerID:        in.BuyerID,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		txn := models.Transaction{
			Type:          models.TransactionGolden,
			Quantity:      1,
			TotalAmount:   finalPrice,
			PlatformFee:   platformFee,
			RoyaltyAmount: royaltyAmount,
			SellerAmount:  finalPrice.Sub(platformFee).Sub(royaltyAmount),
			TxHash:        minted.TxHash,
			BuyerID:       in.BuyerID,
			SellerID:      &gt.ArtistID,
			EventID:       eventOrNil(gt.EventID),
		}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("golden ticket settled",
		zap.String("golden_ticket_id", in.GoldenTicketID.String()),
		zap.String("buyer_id", in.BuyerID.String()),
		zap.String("final_price", purchase.FinalPrice.String()),
	)
	return &purchase, nil
}

func eventOrNil(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
