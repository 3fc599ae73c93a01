// Package eventstream publishes tick events off of the simulation. The
// streaming server that subscribes, diffs, and fans events out to
// viewers lives outside this repo; this package only produces and
// delivers the event.
package eventstream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"worldground/internal/tick"
)

// Publisher delivers one tick event somewhere. Implementations must not
// block the caller indefinitely; ctx governs how long Publish may take.
type Publisher interface {
	Publish(ctx context.Context, ev tick.Event) error
}

// ChannelPublisher delivers events onto an in-memory Go channel, for
// tests and the dev harness. If the channel is full, Publish waits until
// there is room or ctx is done; in the latter case the event is not
// delivered and ctx.Err() is returned.
type ChannelPublisher struct {
	Events chan tick.Event
}

// NewChannelPublisher builds a ChannelPublisher with the given buffer
// size.
func NewChannelPublisher(buffer int) *ChannelPublisher {
	return &ChannelPublisher{Events: make(chan tick.Event, buffer)}
}

func (p *ChannelPublisher) Publish(ctx context.Context, ev tick.Event) error {
	select {
	case p.Events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NATSPublisher marshals each tick event to JSON and publishes it on a
// per-world subject.
type NATSPublisher struct {
	Conn    *nats.Conn
	WorldID string
}

// NewNATSPublisher builds a NATSPublisher for worldID's subject.
func NewNATSPublisher(conn *nats.Conn, worldID string) *NATSPublisher {
	return &NATSPublisher{Conn: conn, WorldID: worldID}
}

// Subject returns the NATS subject this publisher writes to.
func (p *NATSPublisher) Subject() string {
	return fmt.Sprintf("worldground.tick.%s", p.WorldID)
}

func (p *NATSPublisher) Publish(_ context.Context, ev tick.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal tick event: %w", err)
	}
	return p.Conn.Publish(p.Subject(), data)
}
