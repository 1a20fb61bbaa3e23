package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ticketchain/ticketchain/internal/helpers"
	"github.com/ticketchain/ticketchain/internal/middleware"
	"github.com/ticketchain/ticketchain/internal/models"
)

type TicketTypeRequest struct {
	Name         string          `json:"name" binding:"required"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	TotalSupply  int             `json:"total_supply" binding:"required,min=1"`
	MaxPerWallet int             `json:"max_per_wallet"`
}

// CreateTicketType adds a SKU to the organizer's own event. Total supply is
// fixed here for good; available supply starts equal to it.
func CreateTicketType(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	var req TicketTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	if req.Price.IsNegative() {
		helpers.RespondWithError(c, http.StatusBadRequest, "Price must not be negative.")
		return
	}
	if req.MaxPerWallet < 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Max per wallet must not be negative.")
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	gormDB := middleware.GetDB(c)

	var event models.Event
	if err := gormDB.Where("id = ? AND organizer_id = ?", eventID, userID).First(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusForbidden, "Event not found or you don't have permission to modify it.")
		return
	}

	tt := models.TicketType{
		Name:            req.Name,
		Price:           req.Price,
		TotalSupply:     req.TotalSupply,
		AvailableSupply: req.TotalSupply,
		MaxPerWallet:    req.MaxPerWallet,
		EventID:         event.ID,
	}
	if err := gormDB.Create(&tt).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create ticket type.")
		return
	}

	helpers.RespondWithData(c, http.StatusCreated, gin.H{"ticket_type_id": tt.ID})
}

func GetTicketType(c *gin.Context) {
	gormDB := middleware.GetDB(c)

	var tt models.TicketType
	if err := gormDB.Preload("Event").Where("id = ?", c.Param("id")).First(&tt).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Ticket type not found.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, tt)
}
