package messaging

import (
	"context"
	"math/rand"
	"time"
)

// Messenger delivers a batch of messages. The simulated implementation
// stands in for a real provider (Z-API, Twilio and the like).
type Messenger interface {
	SendBatch(ctx context.Context, count int, progress func(done, total int)) (success int, err error)
}

// SimulatedMessenger reproduces the latency profile of a provider call
// without sending anything. Every delivery succeeds.
type SimulatedMessenger struct {
	// MinDelay and MaxDelay bound the per-recipient latency.
	MinDelay time.Duration
	MaxDelay time.Duration
}

// NewSimulatedMessenger returns a messenger with the default
// 100-300ms per-recipient delay.
func NewSimulatedMessenger() *SimulatedMessenger {
	return &SimulatedMessenger{
		MinDelay: 100 * time.Millisecond,
		MaxDelay: 300 * time.Millisecond,
	}
}

// SendBatch simulates sequential delivery to count recipients,
// invoking progress after each one. A cancelled context stops the batch
// early and returns the successes so far.
func (m *SimulatedMessenger) SendBatch(ctx context.Context, count int, progress func(done, total int)) (int, error) {
	success := 0
	for i := 0; i < count; i++ {
		delay := m.MinDelay
		if m.MaxDelay > m.MinDelay {
			delay += time.Duration(rand.Int63n(int64(m.MaxDelay - m.MinDelay)))
		}

		select {
		case <-ctx.Done():
			return success, ctx.Err()
		case <-time.After(delay):
		}

		success++
		if progress != nil {
			progress(i+1, count)
		}
	}
	return success, nil
}
