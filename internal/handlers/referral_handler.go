package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ticketchain/ticketchain/internal/helpers"
	"github.com/ticketchain/ticketchain/internal/middleware"
	"github.com/ticketchain/ticketchain/internal/models"
)

type ReferralRequest struct {
	Code           string    `json:"code" binding:"required,min=4"`
	EventID        uuid.UUID `json:"event_id" binding:"required"`
	CommissionRate int       `json:"commission_rate" binding:"required,min=1,max=50"`
}

// CreateReferral registers a promoter code for an approved event.
func CreateReferral(c *gin.Context) {
	var req ReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	gormDB := middleware.GetDB(c)

	var event models.Event
	if err := gormDB.Where("id = ? AND status = ?", req.EventID, models.EventApproved).First(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found or not approved.")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	var existing models.Referral
	if err := gormDB.Where("code = ?", code).First(&existing).Error; err == nil {
		helpers.RespondWithError(c, http.StatusConflict, "Referral code already exists.")
		return
	}

	referral := models.Referral{
		Code:           code,
		CommissionRate: req.CommissionRate,
		EventID:        req.EventID,
		PromoterID:     userID,
	}
	if err := gormDB.Create(&referral).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create referral code.")
		return
	}

	helpers.RespondWithData(c, http.StatusCreated, referral)
}

// MyReferrals returns the caller's codes with usage and earnings.
func MyReferrals(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	gormDB := middleware.GetDB(c)

	var referrals []models.Referral
	err := gormDB.Preload("Event").
		Where("promoter_id = ?", userID).
		Order("created_at DESC").
		Find(&referrals).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving referrals.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, referrals)
}

// DeactivateReferral turns the caller's code off; existing transactions
// keep their recorded commissions.
func DeactivateReferral(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	gormDB := middleware.GetDB(c)

	result := gormDB.Model(&models.Referral{}).
		Where("id = ? AND promoter_id = ?", c.Param("id"), userID).
		Update("is_active", false)
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to deactivate referral.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Referral not found.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"is_active": false})
}
