package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name string
	log  *[]string
}

func (r *recorder) Handle(v string) {
	*r.log = append(*r.log, r.name+":"+v)
}

func TestBus_PublishInRegistrationOrder(t *testing.T) {
	var log []string
	b := NewBus[string]()
	b.Subscribe(&recorder{name: "a", log: &log})
	b.Subscribe(&recorder{name: "b", log: &log})
	b.Subscribe(HandlerFunc[string](func(v string) { log = append(log, "c:"+v) }))

	b.Publish("x")

	assert.Equal(t, []string{"a:x", "b:x", "c:x"}, log)
}

func TestBus_DuplicateSubscriptionReturnsExistingHandle(t *testing.T) {
	var log []string
	b := NewBus[string]()
	r := &recorder{name: "a", log: &log}

	first, ok := b.Subscribe(r)
	require.True(t, ok)
	second, ok := b.Subscribe(r)
	assert.False(t, ok)
	assert.Same(t, first, second)
	assert.Equal(t, 1, b.Len())

	b.Publish("x")
	assert.Equal(t, []string{"a:x"}, log)
}

func TestBus_FuncHandlersAreNeverDuplicates(t *testing.T) {
	b := NewBus[int]()
	count := 0
	fn := HandlerFunc[int](func(int) { count++ })

	_, ok1 := b.Subscribe(fn)
	_, ok2 := b.Subscribe(fn)

	assert.True(t, ok1)
	assert.True(t, ok2)
	b.Publish(1)
	assert.Equal(t, 2, count)
}

func TestBus_UnsubscribeDuringOwnCallback(t *testing.T) {
	b := NewBus[int]()
	var got []int
	var sub *Subscription
	sub, _ = b.Subscribe(HandlerFunc[int](func(v int) {
		got = append(got, v)
		sub.Unsubscribe()
	}))

	assert.NotPanics(t, func() { b.Publish(1) })
	b.Publish(2)

	assert.Equal(t, []int{1}, got)
	assert.Equal(t, 0, b.Len())
}

func TestBus_UnsubscribeLaterHandlerSkipsItInSameBatch(t *testing.T) {
	b := NewBus[int]()
	var laterCalls int
	var later *Subscription

	b.Subscribe(HandlerFunc[int](func(int) { later.Unsubscribe() }))
	later, _ = b.Subscribe(HandlerFunc[int](func(int) { laterCalls++ }))

	b.Publish(1)

	assert.Zero(t, laterCalls)
}

func TestBus_DoubleUnsubscribeIsNoop(t *testing.T) {
	b := NewBus[int]()
	sub, _ := b.Subscribe(HandlerFunc[int](func(int) {}))
	other, _ := b.Subscribe(HandlerFunc[int](func(int) {}))

	sub.Unsubscribe()
	sub.Unsubscribe()

	assert.False(t, sub.Active())
	assert.True(t, other.Active())
	assert.Equal(t, 1, b.Len())
}

func TestBus_UnsubscribeByHandler(t *testing.T) {
	var log []string
	b := NewBus[string]()
	r := &recorder{name: "a", log: &log}
	sub, _ := b.Subscribe(r)

	b.Unsubscribe(r)
	b.Unsubscribe(r)
	b.Publish("x")

	assert.Empty(t, log)
	assert.False(t, sub.Active())
}

func TestBus_SubscribeDuringPublishWaitsForNextEvent(t *testing.T) {
	b := NewBus[int]()
	var late []int
	b.Subscribe(HandlerFunc[int](func(int) {
		b.Subscribe(HandlerFunc[int](func(v int) { late = append(late, v) }))
	}))

	b.Publish(1)
	assert.Empty(t, late)
}

func TestBus_NilHandler(t *testing.T) {
	b := NewBus[int]()
	sub, ok := b.Subscribe(nil)
	assert.False(t, ok)
	assert.False(t, sub.Active())
	assert.NotPanics(t, func() { b.Publish(1) })
}

func TestBus_Clear(t *testing.T) {
	b := NewBus[int]()
	sub, _ := b.Subscribe(HandlerFunc[int](func(int) {}))
	b.Clear()
	assert.False(t, sub.Active())
	assert.Zero(t, b.Len())
	sub.Unsubscribe()
}
