// Package events publishes router lifecycle notifications.
//
// Subscribers registered on the Bus are called synchronously, in the same
// event-dispatch turn as the navigation that produced the event. Every event
// is also published as JSON on a watermill gochannel topic for consumers that
// want to process it out of band.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"github.com/BrandonKowalski/switchboard/pkg/switchboard/route"
)

// Topic is the watermill topic every event is published on.
const Topic = "switchboard.events"

// Type identifies what happened.
type Type string

const (
	CommandRun     Type = "command.run"
	RouteOpen      Type = "route.open"
	RouteEnter     Type = "route.enter"
	RouteLeave     Type = "route.leave"
	ContainerClose Type = "container.close"
	StateSave      Type = "state.save"
	StateRestore   Type = "state.restore"
)

// Event is a single lifecycle notification.
type Event struct {
	Type      Type       `json:"type"`
	Container string     `json:"container"`
	Route     string     `json:"route,omitempty"`
	Args      route.Args `json:"args,omitempty"`
}

// Subscriber receives events.
type Subscriber func(event Event)

type subscriberEntry struct {
	id uint64
	fn Subscriber
}

// Bus fans events out to subscribers. A nil *Bus drops everything.
type Bus struct {
	mu sync.RWMutex

	pubsub *gochannel.GoChannel
	logger *slog.Logger

	subscribers map[Type][]subscriberEntry
	global      []subscriberEntry

	nextID uint64
	closed bool
}

// NewBus creates a Bus. A nil logger discards watermill publish failures.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{
				OutputChannelBuffer: 100,
				Persistent:          false,
			},
			watermill.NopLogger{},
		),
		logger:      logger,
		subscribers: make(map[Type][]subscriberEntry),
	}
}

// Subscribe registers fn for one event type and returns its unsubscribe func.
func (b *Bus) Subscribe(eventType Type, fn Subscriber) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return func() {}
	}

	b.nextID++
	id := b.nextID
	b.subscribers[eventType] = append(b.subscribers[eventType], subscriberEntry{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subscribers[eventType]
		for i, entry := range subs {
			if entry.id == id {
				b.subscribers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// SubscribeAll registers fn for every event type.
func (b *Bus) SubscribeAll(fn Subscriber) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return func() {}
	}

	b.nextID++
	id := b.nextID
	b.global = append(b.global, subscriberEntry{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, entry := range b.global {
			if entry.id == id {
				b.global = append(b.global[:i:i], b.global[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers event to subscribers in registration order, type-specific
// subscribers first. Subscribers may publish or navigate re-entrantly; the
// lock is not held while they run.
func (b *Bus) Publish(event Event) {
	if b == nil {
		return
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	subs := make([]subscriberEntry, 0, len(b.subscribers[event.Type])+len(b.global))
	subs = append(subs, b.subscribers[event.Type]...)
	subs = append(subs, b.global...)
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(event)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		b.logger.Warn("events: dropping unencodable event", "type", event.Type, "route", event.Route, "error", err)
		return
	}
	msg := message.NewMessage(uuid.NewString(), payload)
	msg.Metadata.Set("type", string(event.Type))
	if err := b.pubsub.Publish(Topic, msg); err != nil {
		b.logger.Warn("events: publish failed", "type", event.Type, "error", err)
	}
}

// Messages subscribes to the watermill topic. Consumers must Ack each message.
func (b *Bus) Messages(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, Topic)
}

// Close stops delivery and closes the underlying pub/sub.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.subscribers = make(map[Type][]subscriberEntry)
	b.global = nil
	b.mu.Unlock()

	return b.pubsub.Close()
}
