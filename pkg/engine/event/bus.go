// Package event provides a small typed publish/subscribe bus for in-process,
// single-threaded game loops.
//
// Handlers run synchronously in registration order. A handler may unsubscribe
// itself (or any other handler) while an event is being delivered; handlers
// removed mid-delivery are skipped for the rest of that delivery.
package event

import (
	"reflect"
)

// Handler receives published values of type T.
type Handler[T any] interface {
	Handle(T)
}

// HandlerFunc adapts a plain function to a Handler.
type HandlerFunc[T any] func(T)

// Handle calls f(v).
func (f HandlerFunc[T]) Handle(v T) {
	f(v)
}

// Subscription is the handle returned by Subscribe. The owner of the handler
// is responsible for calling Unsubscribe when the handler goes away.
type Subscription struct {
	unsubscribe func()
	active      bool
}

// Unsubscribe removes the handler from its bus. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil || !s.active {
		return
	}
	s.active = false
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// Active reports whether the subscription still receives events.
func (s *Subscription) Active() bool {
	return s != nil && s.active
}

type entry[T any] struct {
	handler Handler[T]
	sub     *Subscription
}

// Bus fans values of type T out to subscribed handlers.
// The zero value is ready to use. Bus is not safe for concurrent use.
type Bus[T any] struct {
	entries []*entry[T]
}

// NewBus creates an empty bus.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers h and returns its subscription handle.
// The second return value is false when h (compared by identity) is already
// subscribed; the existing handle is returned and nothing is registered.
// Handlers whose dynamic type is not comparable (e.g. HandlerFunc) are never
// treated as duplicates.
func (b *Bus[T]) Subscribe(h Handler[T]) (*Subscription, bool) {
	if h == nil {
		return &Subscription{}, false
	}
	if existing := b.find(h); existing != nil {
		return existing.sub, false
	}

	e := &entry[T]{handler: h}
	e.sub = &Subscription{active: true}
	e.sub.unsubscribe = func() { b.remove(e) }
	b.entries = append(b.entries, e)
	return e.sub, true
}

// Unsubscribe removes h if it is subscribed. Unknown handlers are ignored.
func (b *Bus[T]) Unsubscribe(h Handler[T]) {
	if existing := b.find(h); existing != nil {
		existing.sub.Unsubscribe()
	}
}

// Publish delivers v to every handler subscribed when Publish was called.
func (b *Bus[T]) Publish(v T) {
	if len(b.entries) == 0 {
		return
	}

	// Deliver from a snapshot so handlers can subscribe/unsubscribe freely.
	snapshot := make([]*entry[T], len(b.entries))
	copy(snapshot, b.entries)

	for _, e := range snapshot {
		if !e.sub.active {
			continue
		}
		e.handler.Handle(v)
	}
}

// Len returns the number of active subscriptions.
func (b *Bus[T]) Len() int {
	return len(b.entries)
}

// Clear drops every subscription.
func (b *Bus[T]) Clear() {
	for _, e := range b.entries {
		e.sub.active = false
	}
	b.entries = nil
}

func (b *Bus[T]) find(h Handler[T]) *entry[T] {
	if h == nil || !reflect.TypeOf(h).Comparable() {
		return nil
	}
	for _, e := range b.entries {
		if !reflect.TypeOf(e.handler).Comparable() {
			continue
		}
		if e.handler == h {
			return e
		}
	}
	return nil
}

func (b *Bus[T]) remove(target *entry[T]) {
	for i, e := range b.entries {
		if e == target {
			b.entries = append(b.entries[:i:i], b.entries[i+1:]...)
			return
		}
	}
}
