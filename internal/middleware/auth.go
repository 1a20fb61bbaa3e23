package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ticketchain/ticketchain/internal/auth"
	"github.com/ticketchain/ticketchain/internal/helpers"
)

const (
	ContextUserID        = "user_id"
	ContextUserRole      = "user_role"
	ContextWalletAddress = "wallet_address"
)

// JWTAuthMiddleware validates the bearer token and loads the session claims
// into the request context.
func JWTAuthMiddleware(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Missing authorization header.")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid authorization header.")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextWalletAddress, claims.WalletAddress)
		c.Next()
	}
}

// RequireCapability is the single policy gate: it evaluates the caller's
// role against the required capability before the handler body runs.
func RequireCapability(capability auth.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, ok := c.Get(ContextUserRole)
		if !ok {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Missing user context.")
			c.Abort()
			return
		}
		role, _ := roleVal.(string)
		if !auth.Allowed(role, capability) {
			helpers.RespondWithError(c, http.StatusForbidden, "Insufficient permissions.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID pulls the authenticated caller's id out of the context.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}

// WalletAddress pulls the caller's custodial wallet address.
func WalletAddress(c *gin.Context) string {
	val, exists := c.Get(ContextWalletAddress)
	if !exists {
		return ""
	}
	addr, _ := val.(string)
	return addr
}
