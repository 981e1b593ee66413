package notify_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/margianalogistics/logibot/internal/notify"
	"github.com/margianalogistics/logibot/internal/order"
)

type stubSender struct {
	failFor map[string]error
	sent    []string
}

func (s *stubSender) Send(ctx context.Context, chatID, text string) error {
	if err, ok := s.failFor[chatID]; ok {
		return err
	}
	s.sent = append(s.sent, chatID)
	return nil
}

type stubAcker struct {
	failFor map[uuid.UUID]error
	acked   []uuid.UUID
}

func (a *stubAcker) MarkSent(ctx context.Context, id uuid.UUID) error {
	if err, ok := a.failFor[id]; ok {
		return err
	}
	a.acked = append(a.acked, id)
	return nil
}

func batchOf(n int) []notify.Record {
	recs := make([]notify.Record, 0, n)
	for i := 1; i <= n; i++ {
		recs = append(recs, notify.Record{
			ID:          uuid.New(),
			ChatID:      fmt.Sprintf("chat-%d", i),
			OrderNumber: fmt.Sprintf("ORD-%03d", i),
			EventType:   order.EventDeparture,
			Message:     "reminder",
			CreatedAt:   time.Now(),
		})
	}
	return recs
}

func TestDispatch_AllDelivered(t *testing.T) {
	sender := &stubSender{}
	acker := &stubAcker{}
	d := notify.NewDispatcher(sender, acker,
		notify.WithDispatcherLogger(slog.New(slog.DiscardHandler)))

	recs := batchOf(3)
	outcomes := d.Dispatch(context.Background(), recs)

	require.Len(t, outcomes, 3)
	for i, o := range outcomes {
		assert.True(t, o.Sent)
		assert.NoError(t, o.Err)
		assert.Equal(t, recs[i].ID, o.RecordID)
	}
	assert.Len(t, sender.sent, 3)
	assert.Len(t, acker.acked, 3)
}

func TestDispatch_FailureIsolation(t *testing.T) {
	recs := batchOf(5)
	sender := &stubSender{failFor: map[string]error{
		recs[2].ChatID: errors.New("chat not found"),
	}}
	acker := &stubAcker{}
	d := notify.NewDispatcher(sender, acker,
		notify.WithDispatcherLogger(slog.New(slog.DiscardHandler)))

	outcomes := d.Dispatch(context.Background(), recs)

	require.Len(t, outcomes, 5)
	for i, o := range outcomes {
		if i == 2 {
			assert.False(t, o.Sent)
			assert.Error(t, o.Err)
			continue
		}
		assert.True(t, o.Sent, "record %d should be delivered", i)
		assert.NoError(t, o.Err)
	}

	// The failed record is never acknowledged; the other four are.
	assert.NotContains(t, acker.acked, recs[2].ID)
	assert.Len(t, acker.acked, 4)
}

func TestDispatch_AckFailureStillReportsSent(t *testing.T) {
	recs := batchOf(2)
	sender := &stubSender{}
	acker := &stubAcker{failFor: map[uuid.UUID]error{
		recs[0].ID: errors.New("store down"),
	}}
	d := notify.NewDispatcher(sender, acker,
		notify.WithDispatcherLogger(slog.New(slog.DiscardHandler)))

	outcomes := d.Dispatch(context.Background(), recs)

	require.Len(t, outcomes, 2)
	// Delivery succeeded even though the mark failed; the record will be
	// delivered again on a later tick.
	assert.True(t, outcomes[0].Sent)
	assert.NoError(t, outcomes[0].Err)
	assert.True(t, outcomes[1].Sent)
	assert.Equal(t, []uuid.UUID{recs[1].ID}, acker.acked)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, chatID, text string) error {
	args := m.Called(ctx, chatID, text)
	return args.Error(0)
}

func TestDispatch_SendsRecordMessage(t *testing.T) {
	recs := batchOf(1)
	sender := new(mockSender)
	sender.On("Send", mock.Anything, recs[0].ChatID, recs[0].Message).Return(nil).Once()

	d := notify.NewDispatcher(sender, &stubAcker{},
		notify.WithDispatcherLogger(slog.New(slog.DiscardHandler)))

	outcomes := d.Dispatch(context.Background(), recs)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Sent)
	sender.AssertExpectations(t)
}

func TestDispatch_EmptyBatch(t *testing.T) {
	d := notify.NewDispatcher(&stubSender{}, &stubAcker{},
		notify.WithDispatcherLogger(slog.New(slog.DiscardHandler)))

	outcomes := d.Dispatch(context.Background(), nil)
	assert.Empty(t, outcomes)
}
