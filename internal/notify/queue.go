// Package notify enqueues notification jobs onto Redis lists for an
// external delivery worker. Delivery itself (email, push) is out of scope;
// this package only guarantees the job lands on the queue.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// QueueOrganizer is the Redis list key for organizer sale notifications.
	QueueOrganizer = "notify:organizer"
	// QueueMilestones is the Redis list key for percent-sold milestone alerts.
	QueueMilestones = "notify:milestones"
)

// SalePayload notifies an organizer of a settled purchase on their event.
type SalePayload struct {
	OrganizerID uuid.UUID `json:"organizer_id"`
	EventID     uuid.UUID `json:"event_id"`
	EventTitle  string    `json:"event_title"`
	Quantity    int       `json:"quantity"`
	TotalAmount string    `json:"total_amount"`
	IsResale    bool      `json:"is_resale"`
}

// MilestonePayload fires when a ticket type crosses a percent-sold mark.
type MilestonePayload struct {
	OrganizerID  uuid.UUID `json:"organizer_id"`
	EventID      uuid.UUID `json:"event_id"`
	EventTitle   string    `json:"event_title"`
	TicketTypeID uuid.UUID `json:"ticket_type_id"`
	Percent      int       `json:"percent"`
}

type job struct {
	ID        string          `json:"id"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// Queue pushes notification jobs to Redis. A nil client degrades to
// log-only so the API keeps serving when Redis is down or not configured.
type Queue struct {
	client *redis.Client
	logger *zap.Logger
}

func NewQueue(client *redis.Client, logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{client: client, logger: logger}
}

func (q *Queue) push(ctx context.Context, key string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	if q.client == nil {
		q.logger.Info("notification (no queue configured)", zap.String("queue", key), zap.ByteString("payload", body))
		return nil
	}

	raw, err := json.Marshal(job{
		ID:        uuid.New().String(),
		Payload:   body,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.client.RPush(ctx, key, raw).Err(); err != nil {
		q.logger.Error("notification enqueue failed", zap.String("queue", key), zap.Error(err))
		return fmt.Errorf("rpush %s: %w", key, err)
	}
	return nil
}

// EnqueueSale queues an organizer sale notification.
func (q *Queue) EnqueueSale(ctx context.Context, payload SalePayload) error {
	return q.push(ctx, QueueOrganizer, payload)
}

// EnqueueMilestone queues a percent-sold milestone alert.
func (q *Queue) EnqueueMilestone(ctx context.Context, payload MilestonePayload) error {
	return q.push(ctx, QueueMilestones, payload)
}
