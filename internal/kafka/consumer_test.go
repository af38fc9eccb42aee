package kafka

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader hands out queued messages, then returns io.EOF.
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return kafka.Message{}, err
	}
	if len(r.queue) == 0 {
		return kafka.Message{}, io.EOF
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func newTestConsumer(messages ...kafka.Message) (*Consumer, *fakeReader) {
	reader := &fakeReader{queue: messages}
	return &Consumer{reader: reader, log: logger.NewNop(), backoff: time.Millisecond}, reader
}

func TestConsumer_CommitsAfterHandler(t *testing.T) {
	c, reader := newTestConsumer(kafka.Message{Offset: 1}, kafka.Message{Offset: 2})

	var handled []int64
	err := c.Consume(context.Background(), func(_ context.Context, msg kafka.Message) error {
		// Nothing for this message is committed yet.
		assert.NotContains(t, reader.committed, msg.Offset)
		handled = append(handled, msg.Offset)
		return nil
	})

	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []int64{1, 2}, handled)
	assert.Equal(t, []int64{1, 2}, reader.committed)
}

func TestConsumer_RetriesFailedMessage(t *testing.T) {
	c, reader := newTestConsumer(kafka.Message{Offset: 1}, kafka.Message{Offset: 2})

	calls := map[int64]int{}
	err := c.Consume(context.Background(), func(_ context.Context, msg kafka.Message) error {
		calls[msg.Offset]++
		if msg.Offset == 1 && calls[msg.Offset] == 1 {
			return errors.New("smtp down")
		}
		return nil
	})

	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 2, calls[1])
	assert.Equal(t, 1, calls[2])
	assert.Equal(t, []int64{1, 2}, reader.committed)
}

func TestConsumer_SkipsMessageAfterMaxAttempts(t *testing.T) {
	c, reader := newTestConsumer(kafka.Message{Offset: 1}, kafka.Message{Offset: 2})

	calls := map[int64]int{}
	err := c.Consume(context.Background(), func(_ context.Context, msg kafka.Message) error {
		calls[msg.Offset]++
		if msg.Offset == 1 {
			return errors.New("smtp down")
		}
		return nil
	})

	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, maxAttempts, calls[1])
	assert.Equal(t, 1, calls[2])
	assert.Equal(t, []int64{1, 2}, reader.committed)
}

func TestConsumer_StopsOnCancelDuringBackoff(t *testing.T) {
	c, reader := newTestConsumer(kafka.Message{Offset: 1})
	c.backoff = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- c.Consume(ctx, func(context.Context, kafka.Message) error {
			cancel()
			return errors.New("smtp down")
		})
	}()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}
	assert.Empty(t, reader.committed)
}
