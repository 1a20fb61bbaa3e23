package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ticketchain/ticketchain/internal/helpers"
	"github.com/ticketchain/ticketchain/internal/middleware"
	"github.com/ticketchain/ticketchain/internal/models"
)

type VerificationRequest struct {
	StageName string `json:"stage_name" binding:"required"`
	Bio       string `json:"bio"`
}

// RequestVerification moves the caller's artist profile into the pending
// verification queue for admin review.
func RequestVerification(c *gin.Context) {
	var req VerificationRequest
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

	var profile models.ArtistProfile
	if err := gormDB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Artist profile not found.")
		return
	}
	if profile.VerificationStatus == models.VerificationApproved {
		helpers.RespondWithError(c, http.StatusConflict, "Artist is already verified.")
		return
	}

	profile.StageName = req.StageName
	profile.Bio = req.Bio
	profile.VerificationStatus = models.VerificationPending
	if err := gormDB.Save(&profile).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to submit verification request.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"verification_status": profile.VerificationStatus})
}

// GetArtistPerks exposes an artist's tier and unlocked perks.
func GetArtistPerks(c *gin.Context) {
	gormDB := middleware.GetDB(c)

	var profile models.ArtistProfile
	if err := gormDB.Preload("User").Where("id = ?", c.Param("id")).First(&profile).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Artist not found.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{
		"stage_name":          profile.StageName,
		"tier":                profile.Tier,
		"verification_status": profile.VerificationStatus,
		"perks":               profile.Perks(),
		"bonus_royalty_pct":   profile.BonusRoyaltyPct(),
	})
}
