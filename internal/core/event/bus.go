// Package event provides a typed publish/subscribe bus with synchronous
// fan-out. The ECS world announces entity and component lifecycle changes on
// it; anything else in the engine may subscribe or publish its own types.
package event

import (
	"reflect"
	"sync"
)

// Bus delivers events of any Go type to handlers subscribed for that type.
// Publish runs handlers synchronously, in subscription order, on the
// caller's goroutine. A subscription may carry an expiry: after its delivery
// budget is spent it is dropped.
type Bus struct {
	mu       sync.Mutex // protects handler registration
	handlers map[reflect.Type][]subscription
}

type subscription struct {
	fn        any
	remaining int // < 0 means the subscription never expires
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[reflect.Type][]subscription),
	}
}

// Subscribe registers a permanent handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	subscribe(b, fn, -1)
}

// SubscribeN registers a handler that expires after n deliveries. n <= 0
// registers nothing.
func SubscribeN[T any](b *Bus, n int, fn func(T)) {
	if n <= 0 {
		return
	}
	subscribe(b, fn, n)
}

func subscribe[T any](b *Bus, fn func(T), remaining int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], subscription{fn: fn, remaining: remaining})
}

// Publish delivers an event to every live subscription for its type. The
// assertion is safe because Subscribe and Publish key handlers by the same
// type.
func Publish[T any](b *Bus, ev T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	subs := b.handlers[t]
	if len(subs) == 0 {
		return
	}

	expired := false
	for i := range subs {
		subs[i].fn.(func(T))(ev)
		if subs[i].remaining > 0 {
			subs[i].remaining--
			if subs[i].remaining == 0 {
				expired = true
			}
		}
	}

	if expired {
		b.mu.Lock()
		live := b.handlers[t][:0]
		for _, s := range b.handlers[t] {
			if s.remaining != 0 {
				live = append(live, s)
			}
		}
		b.handlers[t] = live
		b.mu.Unlock()
	}
}
