package eventbus

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CamilleScholtz/swmpc-sub002/internal/domain"
)

func TestNewSyncEventBus(t *testing.T) {
	bus := NewSyncEventBus()
	require.NotNil(t, bus)
	assert.False(t, bus.HasSubscribers(domain.EventSubsystemChanged))
}

func TestSyncEventBus_PublishSubscribe(t *testing.T) {
	bus := NewSyncEventBus()
	defer func() { _ = bus.Close() }()

	var received domain.Event
	var calls int

	subID := bus.Subscribe(domain.EventSubsystemChanged, func(event domain.Event) {
		received = event
		calls++
	})
	require.NotEmpty(t, subID)

	bus.Publish(domain.NewSubsystemChangedEvent(domain.SubsystemPlayer))

	require.Equal(t, 1, calls)
	require.NotNil(t, received)
	assert.Equal(t, domain.EventSubsystemChanged, received.Type())
	assert.Equal(t, domain.SubsystemPlayer, received.(domain.SubsystemChangedEvent).Subsystem)
	assert.False(t, received.Timestamp().IsZero())
}

func TestSyncEventBus_TypeFiltering(t *testing.T) {
	bus := NewSyncEventBus()
	defer func() { _ = bus.Close() }()

	var changedCalls, connectedCalls int
	bus.Subscribe(domain.EventSubsystemChanged, func(domain.Event) { changedCalls++ })
	bus.Subscribe(domain.EventWatcherConnected, func(domain.Event) { connectedCalls++ })

	bus.Publish(domain.NewSubsystemChangedEvent(domain.SubsystemMixer))

	assert.Equal(t, 1, changedCalls)
	assert.Equal(t, 0, connectedCalls)
}

func TestSyncEventBus_SubscribeAll(t *testing.T) {
	bus := NewSyncEventBus()
	defer func() { _ = bus.Close() }()

	var all int
	bus.SubscribeAll(func(domain.Event) { all++ })

	bus.Publish(domain.NewSubsystemChangedEvent(domain.SubsystemPlayer))
	bus.Publish(domain.NewWatcherConnectedEvent("test:6600"))

	assert.Equal(t, 2, all)
}

func TestSyncEventBus_Unsubscribe(t *testing.T) {
	bus := NewSyncEventBus()
	defer func() { _ = bus.Close() }()

	var calls int
	subID := bus.Subscribe(domain.EventSubsystemChanged, func(domain.Event) { calls++ })

	bus.Publish(domain.NewSubsystemChangedEvent(domain.SubsystemPlayer))
	bus.Unsubscribe(subID)
	bus.Publish(domain.NewSubsystemChangedEvent(domain.SubsystemPlayer))

	assert.Equal(t, 1, calls)
}

func TestSyncEventBus_UnsubscribeUnknownID(t *testing.T) {
	bus := NewSyncEventBus()
	defer func() { _ = bus.Close() }()

	bus.Unsubscribe("sub-999")
}

func TestSyncEventBus_PanicRecovery(t *testing.T) {
	bus := NewSyncEventBus()
	defer func() { _ = bus.Close() }()

	var after int
	bus.Subscribe(domain.EventSubsystemChanged, func(domain.Event) {
		panic("handler bug")
	})
	bus.Subscribe(domain.EventSubsystemChanged, func(domain.Event) { after++ })

	bus.Publish(domain.NewSubsystemChangedEvent(domain.SubsystemPlayer))

	// The panic must not prevent later handlers from running.
	assert.Equal(t, 1, after)
}

func TestSyncEventBus_NilHandlerPanics(t *testing.T) {
	bus := NewSyncEventBus()
	defer func() { _ = bus.Close() }()

	assert.Panics(t, func() { bus.Subscribe(domain.EventSubsystemChanged, nil) })
	assert.Panics(t, func() { bus.SubscribeAll(nil) })
}

func TestSyncEventBus_HasSubscribers(t *testing.T) {
	bus := NewSyncEventBus()
	defer func() { _ = bus.Close() }()

	assert.False(t, bus.HasSubscribers(domain.EventSubsystemChanged))

	bus.Subscribe(domain.EventSubsystemChanged, func(domain.Event) {})
	assert.True(t, bus.HasSubscribers(domain.EventSubsystemChanged))
	assert.False(t, bus.HasSubscribers(domain.EventWatcherConnected))

	bus.SubscribeAll(func(domain.Event) {})
	assert.True(t, bus.HasSubscribers(domain.EventWatcherConnected))
}

func TestSyncEventBus_Close(t *testing.T) {
	bus := NewSyncEventBus()

	var calls int
	bus.Subscribe(domain.EventSubsystemChanged, func(domain.Event) { calls++ })

	require.NoError(t, bus.Close())
	assert.Error(t, bus.Close())

	// Publishing after close is a silent no-op.
	bus.Publish(domain.NewSubsystemChangedEvent(domain.SubsystemPlayer))
	assert.Equal(t, 0, calls)

	assert.Panics(t, func() {
		bus.Subscribe(domain.EventSubsystemChanged, func(domain.Event) {})
	})
}

func TestSyncEventBus_ConcurrentPublish(t *testing.T) {
	bus := NewSyncEventBus()
	defer func() { _ = bus.Close() }()

	var count int64
	bus.Subscribe(domain.EventSubsystemChanged, func(domain.Event) {
		atomic.AddInt64(&count, 1)
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bus.Publish(domain.NewSubsystemChangedEvent(domain.SubsystemPlayer))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1000), atomic.LoadInt64(&count))
}
