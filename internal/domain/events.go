// Package domain defines events for the event-driven architecture.
// Events decouple the idle watcher from the components that react to server
// state changes.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// EventSubsystemChanged is published for every decoded idle notification
	EventSubsystemChanged EventType = "server.subsystem_changed"

	// Watcher lifecycle events
	EventWatcherConnected    EventType = "watcher.connected"
	EventWatcherDisconnected EventType = "watcher.disconnected"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// SubsystemChangedEvent is published when the server reports a subsystem
// change through the idle connection.
type SubsystemChangedEvent struct {
	baseEvent
	Subsystem Subsystem
}

// Type returns the event type.
func (e SubsystemChangedEvent) Type() EventType {
	return EventSubsystemChanged
}

// NewSubsystemChangedEvent creates a new SubsystemChangedEvent.
func NewSubsystemChangedEvent(subsystem Subsystem) SubsystemChangedEvent {
	return SubsystemChangedEvent{
		baseEvent: newBaseEvent(),
		Subsystem: subsystem,
	}
}

// WatcherConnectedEvent is published when the idle watcher establishes a
// connection to the server.
type WatcherConnectedEvent struct {
	baseEvent
	Addr string
}

// Type returns the event type.
func (e WatcherConnectedEvent) Type() EventType {
	return EventWatcherConnected
}

// NewWatcherConnectedEvent creates a new WatcherConnectedEvent.
func NewWatcherConnectedEvent(addr string) WatcherConnectedEvent {
	return WatcherConnectedEvent{
		baseEvent: newBaseEvent(),
		Addr:      addr,
	}
}

// WatcherDisconnectedEvent is published when the idle watcher loses its
// connection. The watcher retries with backoff after publishing this event.
type WatcherDisconnectedEvent struct {
	baseEvent
	Err error
}

// Type returns the event type.
func (e WatcherDisconnectedEvent) Type() EventType {
	return EventWatcherDisconnected
}

// NewWatcherDisconnectedEvent creates a new WatcherDisconnectedEvent.
func NewWatcherDisconnectedEvent(err error) WatcherDisconnectedEvent {
	return WatcherDisconnectedEvent{
		baseEvent: newBaseEvent(),
		Err:       err,
	}
}
