package settlement

import "errors"

// Sentinel errors for the ticket lifecycle. Handlers map these onto the
// HTTP taxonomy (404 for not-found, 409 for state conflicts, 403 for
// ownership) in internal/helpers.
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrListingNotFound    = errors.New("listing not found")
	ErrGoldenNotFound     = errors.New("golden ticket not found")

	ErrEventNotOnSale      = errors.New("event is not open for sale")
	ErrInsufficientSupply  = errors.New("insufficient supply")
	ErrWalletLimitExceeded = errors.New("wallet limit exceeded")
	ErrGoldenSoldOut       = errors.New("golden ticket sold out")

	ErrNotOwner      = errors.New("caller does not own this ticket")
	ErrInvalidState  = errors.New("ticket is not in a listable state")
	ErrAlreadyListed = errors.New("ticket already has an active listing")
	ErrSelfPurchase  = errors.New("cannot purchase your own listing")

	ErrTokenMismatch       = errors.New("token id does not match ticket")
	ErrEventMismatch       = errors.New("ticket does not belong to this event")
	ErrTicketListed        = errors.New("ticket is listed for resale")
	ErrTicketUsed          = errors.New("ticket already used")
	ErrOwnershipUnverified = errors.New("on-chain ownership verification failed")
)
