package lifecycle

import (
	"sync"
	"time"

	"ecsrs/pkg/types"
)

// Event is emitted after every committed status change. Delivery
// mechanisms (SSE, polling, queues) subscribe to a Broadcaster; the
// engine itself has no opinion about transport.
type Event struct {
	ReportID     string             `json:"reportId"`
	TrackingCode string             `json:"trackingCode"`
	From         types.ReportStatus `json:"from"`
	To           types.ReportStatus `json:"to"`
	At           time.Time          `json:"at"`
}

// Broadcaster is an in-memory fan-out of lifecycle events. Slow
// subscribers drop events rather than block the engine; the audit
// trail, not the event stream, is the source of truth.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan Event]struct{})}
}

func (b *Broadcaster) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe returns a buffered event channel and a cancel func that
// must be called when the subscriber goes away.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
	}

	return ch, cancel
}
