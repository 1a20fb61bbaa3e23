package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ticketchain/ticketchain/internal/helpers"
	"github.com/ticketchain/ticketchain/internal/middleware"
	"github.com/ticketchain/ticketchain/internal/models"
)

// ApproveEvent moves a pending event on sale.
func ApproveEvent(c *gin.Context) {
	moderateEvent(c, models.EventApproved)
}

// RejectEvent declines a pending event.
func RejectEvent(c *gin.Context) {
	moderateEvent(c, models.EventRejected)
}

func moderateEvent(c *gin.Context, status string) {
	gormDB := middleware.GetDB(c)

	result := gormDB.Model(&models.Event{}).
		Where("id = ? AND status = ?", c.Param("id"), models.EventPending).
		Update("status", status)
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event status.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusConflict, "Event not found or not pending.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"status": status})
}

type SupplyCorrectionRequest struct {
	AvailableSupply int    `json:"available_supply" binding:"min=0"`
	Reason          string `json:"reason" binding:"required"`
}

// CorrectSupply is the only restock path: an explicit admin adjustment of
// available supply, capped by the immutable total.
func CorrectSupply(c *gin.Context) {
	var req SupplyCorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB := middleware.GetDB(c)

	result := gormDB.Model(&models.TicketType{}).
		Where("id = ? AND total_supply >= ?", c.Param("id"), req.AvailableSupply).
		Update("available_supply", req.AvailableSupply)
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to correct supply.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusConflict, "Ticket type not found or correction exceeds total supply.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"available_supply": req.AvailableSupply})
}

// ApproveArtist completes the artist verification workflow.
func ApproveArtist(c *gin.Context) {
	moderateArtist(c, models.VerificationApproved)
}

func RejectArtist(c *gin.Context) {
	moderateArtist(c, models.VerificationRejected)
}

func moderateArtist(c *gin.Context, status string) {
	gormDB := middleware.GetDB(c)

	updates := map[string]interface{}{"verification_status": status}
	if status == models.VerificationApproved {
		updates["verified_at"] = time.Now()
	}

	result := gormDB.Model(&models.ArtistProfile{}).
		Where("id = ? AND verification_status = ?", c.Param("id"), models.VerificationPending).
		Updates(updates)
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update verification status.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusConflict, "Artist not found or not pending verification.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"verification_status": status})
}

// Dashboard aggregates marketplace totals for the admin view.
func Dashboard(c *gin.Context) {
	gormDB := middleware.GetDB(c)

	var eventCounts []struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	if err := gormDB.Model(&models.Event{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&eventCounts).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error aggregating events.")
		return
	}

	var volume struct {
		Transactions int64           `json:"transactions"`
		GrossVolume  decimal.Decimal `json:"gross_volume"`
		PlatformFees decimal.Decimal `json:"platform_fees"`
		Royalties    decimal.Decimal `json:"royalties"`
		Commissions  decimal.Decimal `json:"commissions"`
	}
	if err := gormDB.Model(&models.Transaction{}).
		Select(`COUNT(*) AS transactions,
			COALESCE(SUM(total_amount), 0) AS gross_volume,
			COALESCE(SUM(platform_fee), 0) AS platform_fees,
			COALESCE(SUM(royalty_amount), 0) AS royalties,
			COALESCE(SUM(commission_amount), 0) AS commissions`).
		Scan(&volume).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error aggregating transactions.")
		return
	}

	var ticketsSold int64
	gormDB.Model(&models.Ticket{}).Count(&ticketsSold)
	var checkedIn int64
	gormDB.Model(&models.Ticket{}).Where("status = ?", models.TicketUsed).Count(&checkedIn)
	var activeListings int64
	gormDB.Model(&models.Listing{}).Where("status = ?", models.ListingActive).Count(&activeListings)

	helpers.RespondWithData(c, http.StatusOK, gin.H{
		"events":          eventCounts,
		"settlement":      volume,
		"tickets_sold":    ticketsSold,
		"checked_in":      checkedIn,
		"active_listings": activeListings,
	})
}
