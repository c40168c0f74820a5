package lifecycle

import (
	"testing"
	"time"

	"ecsrs/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcasterDeliversToAllSubscribers(t *testing.T) {
	b := NewBroadcaster()

	ch1, cancel1 := b.Subscribe()
	defer cancel1()
	ch2, cancel2 := b.Subscribe()
	defer cancel2()

	event := Event{
		ReportID:     "r1",
		TrackingCode: "ECR-2026-0001",
		From:         types.ReportStatusSubmitted,
		To:           types.ReportStatusAssigned,
	}
	b.Publish(event)

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case got := <-ch:
			assert.Equal(t, "r1", got.ReportID)
			assert.Equal(t, types.ReportStatusAssigned, got.To)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestBroadcasterDropsWhenSubscriberIsFull(t *testing.T) {
	b := NewBroadcaster()

	ch, cancel := b.Subscribe()
	defer cancel()

	// Flood past the buffer without reading; Publish must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.Publish(Event{ReportID: "r1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}

	// The buffer holds what fit, the rest was dropped.
	assert.NotEmpty(t, ch)
	assert.LessOrEqual(t, len(ch), 16)
}

func TestBroadcasterCancelStopsDelivery(t *testing.T) {
	b := NewBroadcaster()

	ch, cancel := b.Subscribe()
	cancel()

	b.Publish(Event{ReportID: "r1"})

	require.Empty(t, ch)
}
