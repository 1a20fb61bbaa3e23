package chain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Mock is an in-memory settlement provider. It keeps a token -> owner
// ledger so transfers and ownership checks behave consistently within one
// process, and synthesizes transaction hashes from the call arguments.
type Mock struct {
	mu     sync.Mutex
	owners map[string]string
	nonce  uint64
	logger *zap.Logger
}

func NewMock(logger *zap.Logger) *Mock {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mock{
		owners: make(map[string]string),
		logger: logger,
	}
}

func (m *Mock) txHash(parts ...string) string {
	m.nonce++
	seed := fmt.Sprintf("%d|%s", m.nonce, parts)
	sum := sha256.Sum256([]byte(seed))
	return "0x" + hex.EncodeToString(sum[:])
}

func (m *Mock) Mint(ctx context.Context, owner, tokenClass string, quantity int) (MintResult, error) {
	if quantity <= 0 {
		return MintResult{}, fmt.Errorf("mint quantity must be positive, got %d", quantity)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tokenIDs := make([]string, 0, quantity)
	for i := 0; i < quantity; i++ {
		tokenID := fmt.Sprintf("%s-%s", tokenClass, uuid.New().String())
		m.owners[tokenID] = owner
		tokenIDs = append(tokenIDs, tokenID)
	}

	hash := m.txHash("mint", owner, tokenClass)
	m.logger.Debug("minted tokens",
		zap.String("owner", owner),
		zap.String("token_class", tokenClass),
		zap.Int("quantity", quantity),
		zap.String("tx_hash", hash),
	)
	return MintResult{TxHash: hash, TokenIDs: tokenIDs}, nil
}

func (m *Mock) Transfer(ctx context.Context, from, to, tokenID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if current, ok := m.owners[tokenID]; ok && current != from {
		return "", fmt.Errorf("token %s is not held by %s", tokenID, from)
	}
	m.owners[tokenID] = to

	hash := m.txHash("transfer", from, to, tokenID)
	m.logger.Debug("transferred token",
		zap.String("token_id", tokenID),
		zap.String("from", from),
		zap.String("to", to),
		zap.String("tx_hash", hash),
	)
	return hash, nil
}

// VerifyOwnership reports whether owner holds tokenID. Tokens the mock has
// never seen (e.g. after a restart) verify as owned: the database is the
// source of truth and the ledger is only a consistency check on top.
func (m *Mock) VerifyOwnership(ctx context.Context, owner, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.owners[tokenID]
	if !ok {
		return true, nil
	}
	return current == owner, nil
}
