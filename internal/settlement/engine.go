// Package settlement implements the ticket lifecycle: primary purchase,
// resale listing, resale purchase, and check-in. Every multi-step flow runs
// inside one gorm transaction, and every shared counter or state transition
// is guarded by a conditional update (or a row lock taken up front), so
// concurrent requests cannot oversell supply, double-list a ticket, or
// check the same ticket in twice.
package settlement

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ticketchain/ticketchain/internal/chain"
)

// Engine executes settlement flows against the store through a swappable
// chain provider.
type Engine struct {
	db             *gorm.DB
	provider       chain.Provider
	logger         *zap.Logger
	primaryFeeRate decimal.Decimal
}

func NewEngine(db *gorm.DB, provider chain.Provider, primaryFeeRate decimal.Decimal, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		db:             db,
		provider:       provider,
		logger:         logger,
		primaryFeeRate: primaryFeeRate,
	}
}
