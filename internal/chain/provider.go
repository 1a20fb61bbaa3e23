// Package chain defines the settlement-provider contract the ticket
// lifecycle depends on. The lifecycle code never knows which backend is
// active; a real chain client slots in behind the same interface.
package chain

import "context"

// MintResult carries the simulated transaction hash and the token IDs
// assigned to the freshly minted units.
type MintResult struct {
	TxHash   string
	TokenIDs []string
}

// Provider is the narrow settlement backend contract: mint new tokens,
// transfer one, and confirm who currently holds one.
type Provider interface {
	Mint(ctx context.Context, owner, tokenClass string, quantity int) (MintResult, error)
	Transfer(ctx context.Context, from, to, tokenID string) (string, error)
	VerifyOwnership(ctx context.Context, owner, tokenID string) (bool, error)
}
