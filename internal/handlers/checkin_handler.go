package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ticketchain/ticketchain/internal/helpers"
	"github.com/ticketchain/ticketchain/internal/middleware"
	"github.com/ticketchain/ticketchain/internal/settlement"
	"github.com/ticketchain/ticketchain/monitoring"
)

// VerifyRequest identifies the ticket either by a scanned QR payload or by
// explicit IDs. event_id narrows the check to the inspector's gate.
type VerifyRequest struct {
	QRData   string    `json:"qr_data"`
	TicketID uuid.UUID `json:"ticket_id"`
	TokenID  string    `json:"token_id"`
	EventID  uuid.UUID `json:"event_id"`
}

// VerifyTicket performs the inspector check-in: the one-way transition of
// a ticket from usable to consumed.
func VerifyTicket(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	if req.QRData != "" {
		ticketID, tokenID, eventID, err := helpers.ParseTicketQR(req.QRData, os.Getenv("JWT_SECRET"))
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		req.TicketID = ticketID
		req.TokenID = tokenID
		if req.EventID == uuid.Nil {
			req.EventID = eventID
		}
	}
	if req.TicketID == uuid.Nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Ticket ID or QR data is required.")
		return
	}

	inspectorID, ok := middleware.UserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	engine := middleware.GetSettlement(c)
	if engine == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Settlement engine not configured.")
		return
	}
	result, err := engine.CheckIn(c.Request.Context(), settlement.CheckInInput{
		InspectorID: inspectorID,
		TicketID:    req.TicketID,
		TokenID:     req.TokenID,
		EventID:     req.EventID,
	})
	if err != nil {
		// The already-used rejection carries the prior check-in metadata so
		// the gate can show who consumed the ticket and when.
		if errors.Is(err, settlement.ErrTicketUsed) {
			monitoring.RecordCheckIn("already_used")
			c.JSON(http.StatusConflict, helpers.Response{
				Success: false,
				Error:   err.Error(),
				Data: gin.H{
					"used_at":       result.UsedAt,
					"checked_in_by": result.CheckedInBy,
				},
			})
			return
		}
		monitoring.RecordCheckIn("rejected")
		helpers.RespondWithDomainError(c, err)
		return
	}

	monitoring.RecordCheckIn("ok")
	helpers.RespondWithData(c, http.StatusOK, gin.H{
		"ticket_id":  result.Ticket.ID,
		"status":     result.Ticket.Status,
		"used_at":    result.UsedAt,
		"checked_in": true,
	})
}
