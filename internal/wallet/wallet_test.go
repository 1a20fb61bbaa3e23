package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveDeterministic(t *testing.T) {
	first := Derive("alice@example.com")
	second := Derive("alice@example.com")

	assert.Equal(t, first.Address, second.Address)
	assert.Equal(t, first.PrivateKey, second.PrivateKey)
}

func TestDeriveNormalizesIdentifier(t *testing.T) {
	base := Derive("alice@example.com")

	assert.Equal(t, base.Address, Derive("Alice@Example.com").Address)
	assert.Equal(t, base.Address, Derive("  alice@example.com  ").Address)
}

func TestDeriveAddressFormat(t *testing.T) {
	kp := Derive("+628123456789")

	assert.True(t, strings.HasPrefix(kp.Address, "0x"))
	assert.Len(t, kp.Address, 2+40)
	assert.True(t, strings.HasPrefix(kp.PrivateKey, "0x"))
	assert.Len(t, kp.PrivateKey, 2+64)
}

func TestDeriveDistinctIdentifiers(t *testing.T) {
	a := Derive("alice@example.com")
	b := Derive("bob@example.com")

	assert.NotEqual(t, a.Address, b.Address)
	assert.NotEqual(t, a.PrivateKey, b.PrivateKey)
}

func TestDeriveKeyDiffersFromAddress(t *testing.T) {
	kp := Derive("alice@example.com")
	assert.NotContains(t, kp.PrivateKey, strings.TrimPrefix(kp.Address, "0x"))
}
