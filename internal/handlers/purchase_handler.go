package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ticketchain/ticketchain/internal/helpers"
	"github.com/ticketchain/ticketchain/internal/middleware"
	"github.com/ticketchain/ticketchain/internal/notify"
	"github.com/ticketchain/ticketchain/internal/settlement"
	"github.com/ticketchain/ticketchain/monitoring"
)

type PurchaseRequest struct {
	TicketTypeID uuid.UUID `json:"ticket_type_id" binding:"required"`
	Quantity     int       `json:"quantity" binding:"required,min=1"`
	ReferralCode string    `json:"referral_code"`
}

// Purchase settles a primary sale through the settlement engine, then
// enqueues the organizer notification and any crossed sale milestones.
func Purchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	engine := middleware.GetSettlement(c)
	if engine == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Settlement engine not configured.")
		return
	}

	result, err := engine.Purchase(c.Request.Context(), settlement.PurchaseInput{
		BuyerID:      userID,
		BuyerAddress: middleware.WalletAddress(c),
		TicketTypeID: req.TicketTypeID,
		Quantity:     req.Quantity,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	monitoring.RecordPrimarySale(result.EventID.String(), req.Quantity)

	// Settlement is committed; notification failures only get logged by
	// the queue, they never unwind the sale.
	if queue := middleware.GetNotify(c); queue != nil {
		ctx := c.Request.Context()
		_ = queue.EnqueueSale(ctx, notify.SalePayload{
			OrganizerID: result.OrganizerID,
			EventID:     result.EventID,
			EventTitle:  result.EventTitle,
			Quantity:    req.Quantity,
			TotalAmount: result.Transaction.TotalAmount.String(),
		})
		for _, percent := range result.Milestones {
			_ = queue.EnqueueMilestone(ctx, notify.MilestonePayload{
				OrganizerID:  result.OrganizerID,
				EventID:      result.EventID,
				EventTitle:   result.EventTitle,
				TicketTypeID: req.TicketTypeID,
				Percent:      percent,
			})
		}
	}

	helpers.RespondWithData(c, http.StatusCreated, gin.H{
		"tickets":     result.Tickets,
		"transaction": result.Transaction,
	})
}
