package eventstream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldground/internal/tick"
)

func TestChannelPublisherDeliversEvent(t *testing.T) {
	p := NewChannelPublisher(1)

	err := p.Publish(context.Background(), tick.Event{TickCount: 7})
	require.NoError(t, err)

	select {
	case ev := <-p.Events:
		assert.Equal(t, uint64(7), ev.TickCount)
	default:
		t.Fatal("expected buffered event")
	}
}

func TestChannelPublisherRespectsContextWhenFull(t *testing.T) {
	p := NewChannelPublisher(1)
	require.NoError(t, p.Publish(context.Background(), tick.Event{TickCount: 1}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := p.Publish(ctx, tick.Event{TickCount: 2})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNATSPublisherSubjectIsPerWorld(t *testing.T) {
	p := NewNATSPublisher(nil, "abc-123")
	assert.Equal(t, "worldground.tick.abc-123", p.Subject())
}
