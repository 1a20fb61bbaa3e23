// Package wallet derives reproducible custodial key pairs from login
// identifiers. Pure functions, no store access; the same identifier always
// yields the same address so a user keeps their wallet across logins.
package wallet

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

const addressBytes = 20

// Keypair is a derived wallet. PrivateKey never leaves the server; only the
// address is persisted and exposed.
type Keypair struct {
	Address    string
	PrivateKey string
}

// Derive maps an identifier (email or phone) to a deterministic keypair.
// The identifier is normalized so "Alice@x.com" and "alice@x.com " derive
// the same wallet.
func Derive(identifier string) Keypair {
	normalized := strings.ToLower(strings.TrimSpace(identifier))

	key := sha3.Sum256([]byte("ticketchain/key:" + normalized))
	pub := sha3.Sum256([]byte("ticketchain/address:" + normalized))

	return Keypair{
		Address:    "0x" + hex.EncodeToString(pub[len(pub)-addressBytes:]),
		PrivateKey: "0x" + hex.EncodeToString(key[:]),
	}
}
