// Package worker drains the notifications topic into the email sender and
// periodically completes bookings whose flights have landed.
package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	kafkago "github.com/segmentio/kafka-go"
)

type MessageSource interface {
	Consume(ctx context.Context, handler func(context.Context, kafkago.Message) error) error
}

type Notifier interface {
	Send(ctx context.Context, event kafka.BookingEvent) error
}

type Completer interface {
	CompleteDepartedBookings(ctx context.Context) ([]domain.Booking, error)
}

const defaultRestartDelay = 5 * time.Second

type Worker struct {
	source       MessageSource
	notifier     Notifier
	completer    Completer
	interval     time.Duration
	restartDelay time.Duration
	log          logger.Logger
}

func New(source MessageSource, notifier Notifier, completer Completer, interval time.Duration, log logger.Logger) *Worker {
	return &Worker{
		source:       source,
		notifier:     notifier,
		completer:    completer,
		interval:     interval,
		restartDelay: defaultRestartDelay,
		log:          log,
	}
}

// Run consumes notifications in the background and sweeps on every tick
// until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	go w.consume(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Sweep(ctx)
		case <-ctx.Done():
			w.log.Info("worker stopping")
			return nil
		}
	}
}

// consume keeps a consumer running until ctx is done, restarting it after
// restartDelay whenever it stops on an error.
func (w *Worker) consume(ctx context.Context) {
	for {
		err := w.source.Consume(ctx, w.HandleMessage)
		if ctx.Err() != nil {
			return
		}
		w.log.Error("consumer stopped, restarting", "error", err, "delay", w.restartDelay.String())

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.restartDelay):
		}
	}
}

// HandleMessage skips undecodable payloads so one bad message cannot stall
// the consumer group.
func (w *Worker) HandleMessage(ctx context.Context, msg kafkago.Message) error {
	var event kafka.BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		w.log.Warn("decode event failed", "offset", msg.Offset, "error", err)
		return nil
	}
	return w.notifier.Send(ctx, event)
}

func (w *Worker) Sweep(ctx context.Context) {
	completed, err := w.completer.CompleteDepartedBookings(ctx)
	if err != nil {
		w.log.Error("complete bookings failed", "error", err)
		return
	}
	if len(completed) > 0 {
		w.log.Info("completed bookings", "count", len(completed))
	}
}
