package settlement

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ticketchain/ticketchain/internal/models"
)

// CompletePastEvents flips approved events whose end time has passed to
// completed. Invoked on a ticker from the server; a single conditional
// UPDATE, safe to run from multiple replicas.
func (e *Engine) CompletePastEvents(ctx context.Context) (int64, error) {
	res := e.db.WithContext(ctx).Model(&models.Event{}).
		Where("status = ? AND end_time < ?", models.EventApproved, time.Now()).
		Update("status", models.EventCompleted)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		e.logger.Info("completed past events", zap.Int64("count", res.RowsAffected))
	}
	return res.RowsAffected, nil
}
