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

type GoldenTicketRequest struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	BasePrice       decimal.Decimal `json:"base_price" binding:"required"`
	PriceMultiplier decimal.Decimal `json:"price_multiplier"`
	RoyaltyPct      int             `json:"royalty_pct"`
	IsLimited       bool            `json:"is_limited"`
	MaxQuantity     int             `json:"max_quantity"`
	EventID         *uuid.UUID      `json:"event_id"`
}

// CreateGoldenTicket mints a new collectible class for a verified artist.
// The tier bonus royalty is snapshotted at creation time.
func CreateGoldenTicket(c *gin.Context) {
	var req GoldenTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	if !req.BasePrice.IsPositive() {
		helpers.RespondWithError(c, http.StatusBadRequest, "Base price must be positive.")
		return
	}
	if req.IsLimited && req.MaxQuantity < 1 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Limited golden tickets need a positive max quantity.")
		return
	}
	if req.RoyaltyPct < 0 || req.RoyaltyPct > 100 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Royalty percentage must be between 0 and 100.")
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	gormDB := middleware.GetDB(c)

	var profile models.ArtistProfile
	if err := gormDB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		helpers.RespondWithError(c, http.StatusForbidden, "Artist profile not found.")
		return
	}
	if profile.VerificationStatus != models.VerificationApproved {
		helpers.RespondWithError(c, http.StatusForbidden, "Only verified artists can mint golden tickets.")
		return
	}

	multiplier := req.PriceMultiplier
	if multiplier.IsZero() {
		multiplier = decimal.NewFromInt(1)
	}

	gt := models.GoldenTicket{
		Name:            req.Name,
		Description:     req.Description,
		BasePrice:       req.BasePrice,
		PriceMultiplier: multiplier,
		RoyaltyPct:      req.RoyaltyPct,
		BonusRoyaltyPct: profile.BonusRoyaltyPct(),
		IsLimited:       req.IsLimited,
		MaxQuantity:     req.MaxQuantity,
		ArtistID:        userID,
		EventID:         req.EventID,
	}
	if err := gormDB.Create(&gt).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create golden ticket.")
		return
	}

	helpers.RespondWithData(c, http.StatusCreated, gt)
}

func ListGoldenTickets(c *gin.Context) {
	gormDB := middleware.GetDB(c)

	query := gormDB.Model(&models.GoldenTicket{}).Preload("Artist")
	if artistID := c.Query("artist_id"); artistID != "" {
		query = query.Where("artist_id = ?", artistID)
	}

	var goldens []models.GoldenTicket
	if err := query.Order("created_at DESC").Find(&goldens).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving golden tickets.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, goldens)
}

// PurchaseGoldenTicket settles a collectible purchase.
func PurchaseGoldenTicket(c *gin.Context) {
	goldenID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid golden ticket ID.")
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
	purchase, err := engine.PurchaseGolden(c.Request.Context(), settlement.GoldenPurchaseInput{
		BuyerID:        userID,
		BuyerAddress:   middleware.WalletAddress(c),
		GoldenTicketID: goldenID,
	})
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	monitoring.RecordGoldenPurchase()
	helpers.RespondWithData(c, http.StatusCreated, purchase)
}
