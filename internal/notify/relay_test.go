package notify

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-delivery/internal/common/logger"
	"food-delivery/internal/domain"
	"food-delivery/internal/pubsub"
)

type recordedPublish struct {
	exchange string
	key      string
	body     []byte
}

type mockBroker struct {
	mu        sync.Mutex
	published []recordedPublish
}

func (m *mockBroker) PublishPersistent(_ context.Context, exchange, key string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, recordedPublish{exchange: exchange, key: key, body: body})
	return nil
}

func (m *mockBroker) snapshot() []recordedPublish {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedPublish(nil), m.published...)
}

func TestRelayForwardsBusEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := pubsub.New()
	broker := &mockBroker{}
	relay := NewRelay(bus, broker, logger.New("test"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = relay.Run(ctx)
	}()

	// Let the relay register its subscribers before publishing.
	time.Sleep(50 * time.Millisecond)

	bus.Publish(domain.TopicPendingOrder, domain.PendingOrderEvent{
		Order: domain.Order{ID: 1}, OwnerID: 2,
	})
	bus.Publish(domain.TopicCookedOrder, domain.Order{ID: 1, Status: domain.StatusCooked})
	bus.Publish(domain.TopicOrderUpdated, domain.Order{ID: 1, Status: domain.StatusCooked})

	require.Eventually(t, func() bool {
		return len(broker.snapshot()) == 3
	}, 2*time.Second, 10*time.Millisecond)

	keys := map[string]bool{}
	for _, p := range broker.snapshot() {
		assert.Equal(t, OrdersExchange, p.exchange)
		keys[p.key] = true
	}
	assert.Equal(t, map[string]bool{
		KeyOrderPending: true,
		KeyOrderCooked:  true,
		KeyOrderUpdated: true,
	}, keys)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("relay did not stop on cancellation")
	}
}

func TestRelayPayloadRoundTrips(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := pubsub.New()
	broker := &mockBroker{}
	relay := NewRelay(bus, broker, logger.New("test"))
	go func() { _ = relay.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)

	bus.Publish(domain.TopicPendingOrder, domain.PendingOrderEvent{
		Order: domain.Order{ID: 42, Total: 15.5}, OwnerID: 7,
	})

	require.Eventually(t, func() bool {
		return len(broker.snapshot()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	var ev domain.PendingOrderEvent
	require.NoError(t, json.Unmarshal(broker.snapshot()[0].body, &ev))
	assert.Equal(t, int64(42), ev.Order.ID)
	assert.Equal(t, int64(7), ev.OwnerID)
}
