package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ticketchain/ticketchain/internal/auth"
	"github.com/ticketchain/ticketchain/internal/helpers"
	"github.com/ticketchain/ticketchain/internal/middleware"
	"github.com/ticketchain/ticketchain/internal/models"
	"github.com/ticketchain/ticketchain/internal/wallet"
)

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required,min=3"`
}

// Login resolves the identifier to a role, finds or creates the user with
// their deterministic custodial wallet, and issues the session token.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	role := auth.ResolveRole(req.Identifier)
	keypair := wallet.Derive(req.Identifier)

	var user models.User
	if err := gormDB.Where("identifier = ?", req.Identifier).First(&user).Error; err != nil {
		user = models.User{
			Identifier:    req.Identifier,
			Role:          role,
			WalletAddress: keypair.Address,
		}
		if err := gormDB.Create(&user).Error; err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create user.")
			return
		}

		// First artist login gets an unverified profile to hang the
		// verification workflow off.
		if role == models.RoleArtist {
			profile := models.ArtistProfile{
				StageName: req.Identifier,
				UserID:    user.ID,
			}
			if err := gormDB.Create(&profile).Error; err != nil {
				helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create artist profile.")
				return
			}
		}
	}

	tokens := middleware.GetTokens(c)
	if tokens == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Token service not configured.")
		return
	}
	token, err := tokens.Issue(user.ID, user.Identifier, user.Role, user.WalletAddress)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":             user.ID,
			"identifier":     user.Identifier,
			"role":           user.Role,
			"wallet_address": user.WalletAddress,
		},
	})
}
