package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"github.com/ticketchain/ticketchain/internal/helpers"
	"github.com/ticketchain/ticketchain/internal/middleware"
	"github.com/ticketchain/ticketchain/internal/models"
)

// MyTickets lists the caller's tickets across all states.
func MyTickets(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	gormDB := middleware.GetDB(c)

	var tickets []models.Ticket
	err := gormDB.Preload("TicketType").
		Where("buyer_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving tickets.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, tickets)
}

// TicketQR renders the signed gate-entry QR for one of the caller's
// tickets. Listed and used tickets have no business at a gate.
func TicketQR(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	gormDB := middleware.GetDB(c)

	var ticket models.Ticket
	if err := gormDB.Where("id = ?", c.Param("id")).First(&ticket).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Ticket not found.")
		return
	}
	if ticket.BuyerID != userID {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't own this ticket.")
		return
	}
	if ticket.Status != models.TicketActive {
		helpers.RespondWithError(c, http.StatusConflict, "Only active tickets can be presented at the gate.")
		return
	}

	qrData := helpers.BuildTicketQR(ticket.ID, ticket.TokenID, ticket.EventID, os.Getenv("JWT_SECRET"))
	qrImage, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}
