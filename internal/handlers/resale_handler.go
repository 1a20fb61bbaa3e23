package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ticketchain/ticketchain/internal/helpers"
	"github.com/ticketchain/ticketchain/internal/middleware"
	"github.com/ticketchain/ticketchain/internal/models"
	"github.com/ticketchain/ticketchain/internal/settlement"
	"github.com/ticketchain/ticketchain/monitoring"
)

type ResellRequest struct {
	TicketID uuid.UUID       `json:"ticket_id" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
}

// ResellTicket lists one of the caller's ACTIVE tickets for resale.
func ResellTicket(c *gin.Context) {
	var req ResellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	if !req.Price.IsPositive() {
		helpers.RespondWithError(c, http.StatusBadRequest, "Price must be positive.")
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
	listing, err := engine.List(c.Request.Context(), settlement.ListInput{
		SellerID: userID,
		TicketID: req.TicketID,
		Price:    req.Price,
	})
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	helpers.RespondWithData(c, http.StatusCreated, listing)
}

// PurchaseListing settles a resale purchase of an active listing.
func PurchaseListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid listing ID.")
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
	result, err := engine.PurchaseListing(c.Request.Context(), settlement.ResalePurchaseInput{
		BuyerID:      userID,
		BuyerAddress: middleware.WalletAddress(c),
		ListingID:    listingID,
	})
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	monitoring.RecordResale(result.Transaction.EventID.String())

	helpers.RespondWithData(c, http.StatusOK, gin.H{
		"ticket":      result.Ticket,
		"listing":     result.Listing,
		"transaction": result.Transaction,
	})
}

// CancelListing withdraws the caller's own active listing.
func CancelListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid listing ID.")
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
	if err := engine.CancelListing(c.Request.Context(), userID, listingID); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"status": models.ListingCancelled})
}

// ListListings returns active listings, optionally narrowed to one event.
func ListListings(c *gin.Context) {
	gormDB := middleware.GetDB(c)

	query := gormDB.Model(&models.Listing{}).
		Where("status = ?", models.ListingActive).
		Preload("Ticket").Preload("Seller")
	if eventID := c.Query("event_id"); eventID != "" {
		query = query.Joins("JOIN tickets ON tickets.id = listings.ticket_id").
			Where("tickets.event_id = ?", eventID)
	}

	var listings []models.Listing
	if err := query.Order("listed_at DESC").Find(&listings).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving listings.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, listings)
}
