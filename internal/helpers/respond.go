package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ticketchain/ticketchain/internal/settlement"
)

// Response is the API envelope every handler returns.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func RespondWithData(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{Success: true, Data: data})
}

func RespondWithError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{Success: false, Error: message})
}

// statusOf maps settlement sentinels onto the HTTP taxonomy: 404 for
// missing rows, 403 for ownership, 409 for state conflicts, 400 for
// malformed claims. Unknown errors are 500 with a generic message so
// internals never leak to callers.
func statusOf(err error) (int, bool) {
	switch {
	case errors.Is(err, settlement.ErrEventNotFound),
		errors.Is(err, settlement.ErrTicketTypeNotFound),
		errors.Is(err, settlement.ErrTicketNotFound),
		errors.Is(err, settlement.ErrListingNotFound),
		errors.Is(err, settlement.ErrGoldenNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, settlement.ErrNotOwner):
		return http.StatusForbidden, true
	case errors.Is(err, settlement.ErrInsufficientSupply),
		errors.Is(err, settlement.ErrWalletLimitExceeded),
		errors.Is(err, settlement.ErrGoldenSoldOut),
		errors.Is(err, settlement.ErrAlreadyListed),
		errors.Is(err, settlement.ErrInvalidState),
		errors.Is(err, settlement.ErrTicketUsed),
		errors.Is(err, settlement.ErrTicketListed):
		return http.StatusConflict, true
	case errors.Is(err, settlement.ErrEventNotOnSale),
		errors.Is(err, settlement.ErrSelfPurchase),
		errors.Is(err, settlement.ErrTokenMismatch),
		errors.Is(err, settlement.ErrEventMismatch),
		errors.Is(err, settlement.ErrOwnershipUnverified):
		return http.StatusBadRequest, true
	}
	return http.StatusInternalServerError, false
}

// RespondWithDomainError renders a settlement error with its mapped status.
func RespondWithDomainError(c *gin.Context, err error) {
	status, known := statusOf(err)
	if !known {
		RespondWithError(c, status, "Internal server error.")
		return
	}
	RespondWithError(c, status, err.Error())
}
