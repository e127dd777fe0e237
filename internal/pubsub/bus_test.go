package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch <-chan any) any {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed before delivery")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delivery")
		return nil
	}
}

func TestPublishReachesEverySubscriber(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := New()
	a := bus.Subscribe(ctx, "orders")
	b := bus.Subscribe(ctx, "orders")

	bus.Publish("orders", 42)

	assert.Equal(t, 42, recv(t, a))
	assert.Equal(t, 42, recv(t, b))
}

func TestNoReplayForLateSubscriber(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := New()
	bus.Publish("orders", "before")

	ch := bus.Subscribe(ctx, "orders")
	bus.Publish("orders", "after")

	assert.Equal(t, "after", recv(t, ch))
}

func TestTopicsAreIsolated(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := New()
	orders := bus.Subscribe(ctx, "orders")
	bus.Subscribe(ctx, "payments")

	bus.Publish("payments", "p1")
	bus.Publish("orders", "o1")

	assert.Equal(t, "o1", recv(t, orders))
}

func TestSlowConsumerDoesNotBlockPublish(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := New()
	slow := bus.Subscribe(ctx, "orders")
	fast := bus.Subscribe(ctx, "orders")

	// Nobody reads from slow; publishing must still complete promptly.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			bus.Publish("orders", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow consumer")
	}

	for i := 0; i < 1000; i++ {
		assert.Equal(t, i, recv(t, fast))
	}
	assert.Equal(t, 0, recv(t, slow)) // queued, delivered in order once read
}

func TestCancelClosesChannel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	bus := New()
	ch := bus.Subscribe(ctx, "orders")

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancellation")
	}
}
