package production

import (
	"context"
	"time"

	"github.com/comalice/sweepfsm"
)

// PublishedTransition bundles a transition with its run metadata.
type PublishedTransition struct {
	Transition sweepfsm.Transition
	RunID      string
	Timestamp  time.Time
}

// ChannelPublisher forwards transitions to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	ch      chan<- PublishedTransition
	runID   string
	dropped int
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(runID string, ch chan<- PublishedTransition) *ChannelPublisher {
	return &ChannelPublisher{ch: ch, runID: runID}
}

func (p *ChannelPublisher) Publish(ctx context.Context, t sweepfsm.Transition) error {
	select {
	case p.ch <- PublishedTransition{Transition: t, RunID: p.runID, Timestamp: time.Now()}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.dropped++
		return nil // Non-blocking drop
	}
}

// Dropped returns how many transitions were dropped on a full channel.
func (p *ChannelPublisher) Dropped() int {
	return p.dropped
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}

// Transitioned implements sweepfsm.Observer.
func (p *ChannelPublisher) Transitioned(t sweepfsm.Transition) {
	_ = p.Publish(context.Background(), t)
}

// Stepped implements sweepfsm.Observer.
func (p *ChannelPublisher) Stepped(sweepfsm.Step) {}
