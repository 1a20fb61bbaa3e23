package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEnqueueSalePushesJob(t *testing.T) {
	client, mock := redismock.NewClientMock()
	q := NewQueue(client, nil)

	mock.Regexp().ExpectRPush(QueueOrganizer, `.*`).SetVal(1)

	err := q.EnqueueSale(context.Background(), SalePayload{
		OrganizerID: uuid.New(),
		EventID:     uuid.New(),
		EventTitle:  "Launch Night",
		Quantity:    2,
		TotalAmount: "210",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnqueueFailureIsLoggedAndReturned(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	client, mock := redismock.NewClientMock()
	q := NewQueue(client, zap.New(core))

	mock.Regexp().ExpectRPush(QueueMilestones, `.*`).
		SetErr(errors.New("connection refused"))

	err := q.EnqueueMilestone(context.Background(), MilestonePayload{
		OrganizerID:  uuid.New(),
		EventID:      uuid.New(),
		EventTitle:   "Launch Night",
		TicketTypeID: uuid.New(),
		Percent:      50,
	})
	assert.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("notification enqueue failed").Len())
}

func TestNilClientDegradesToLogOnly(t *testing.T) {
	q := NewQueue(nil, nil)

	err := q.EnqueueSale(context.Background(), SalePayload{
		OrganizerID: uuid.New(),
		EventID:     uuid.New(),
		EventTitle:  "Launch Night",
		Quantity:    1,
		TotalAmount: "105",
	})
	assert.NoError(t, err)
}
