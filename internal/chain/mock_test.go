package chain

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockMint(t *testing.T) {
	m := NewMock(nil)
	ctx := context.Background()

	result, err := m.Mint(ctx, "0xabc", "event-1-vip", 3)
	require.NoError(t, err)

	assert.Len(t, result.TokenIDs, 3)
	assert.True(t, strings.HasPrefix(result.TxHash, "0x"))
	for _, tokenID := range result.TokenIDs {
		assert.True(t, strings.HasPrefix(tokenID, "event-1-vip-"))

		owned, err := m.VerifyOwnership(ctx, "0xabc", tokenID)
		require.NoError(t, err)
		assert.True(t, owned)
	}
}

func TestMockMintRejectsNonPositiveQuantity(t *testing.T) {
	m := NewMock(nil)

	_, err := m.Mint(context.Background(), "0xabc", "class", 0)
	assert.Error(t, err)

	_, err = m.Mint(context.Background(), "0xabc", "class", -2)
	assert.Error(t, err)
}

func TestMockTransfer(t *testing.T) {
	m := NewMock(nil)
	ctx := context.Background()

	result, err := m.Mint(ctx, "0xseller", "ga", 1)
	require.NoError(t, err)
	tokenID := result.TokenIDs[0]

	hash, err := m.Transfer(ctx, "0xseller", "0xbuyer", tokenID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "0x"))

	owned, err := m.VerifyOwnership(ctx, "0xbuyer", tokenID)
	require.NoError(t, err)
	assert.True(t, owned)

	owned, err = m.VerifyOwnership(ctx, "0xseller", tokenID)
	require.NoError(t, err)
	assert.False(t, owned)
}

func TestMockTransferWrongHolder(t *testing.T) {
	m := NewMock(nil)
	ctx := context.Background()

	result, err := m.Mint(ctx, "0xseller", "ga", 1)
	require.NoError(t, err)

	_, err = m.Transfer(ctx, "0xintruder", "0xbuyer", result.TokenIDs[0])
	assert.Error(t, err)
}

func TestMockVerifyUnknownTokenIsOwned(t *testing.T) {
	// Tokens minted before a restart are not in the ledger; the store, not
	// the mock, decides ownership for those.
	m := NewMock(nil)

	owned, err := m.VerifyOwnership(context.Background(), "0xanyone", "ga-unknown")
	require.NoError(t, err)
	assert.True(t, owned)
}

func TestMockTxHashesAreUnique(t *testing.T) {
	m := NewMock(nil)
	ctx := context.Background()

	first, err := m.Mint(ctx, "0xabc", "class", 1)
	require.NoError(t, err)
	second, err := m.Mint(ctx, "0xabc", "class", 1)
	require.NoError(t, err)

	assert.NotEqual(t, first.TxHash, second.TxHash)
}
