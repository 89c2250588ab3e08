// pkg/events/bus.go
package events

import (
	"sync"
	"time"
)

type Kind string

const (
	UserAdded           Kind = "user.added"
	UserUpdated         Kind = "user.updated"
	SessionChanged      Kind = "session.changed"
	DeliveryAdded       Kind = "delivery.added"
	DeliveryCompleted   Kind = "delivery.completed"
	DeliveryCancelled   Kind = "delivery.cancelled"
	AchievementUnlocked Kind = "achievement.unlocked"
)

type Event struct {
	Kind       Kind
	UserID     string
	DeliveryID string
	Label      string
	At         time.Time
}

type Handler func(Event)

// Bus fans every published event out to all current subscribers, in
// subscription order, on the publisher's goroutine.
type Bus struct {
	mu       sync.RWMutex
	next     int
	handlers map[int]Handler
	order    []int
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[int]Handler)}
}

// Subscribe registers h and returns a func that removes it.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.handlers[id] = h
	b.order = append(b.order, id)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.handlers, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	hs := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		hs = append(hs, b.handlers[id])
	}
	b.mu.RUnlock()

	for _, h := range hs {
		h(e)
	}
}

func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}
