package events

import (
	"fmt"
	"sync"
)

// EventBus is what UI services publish state changes to
type EventBus interface {
	Publish(event interface{})
	Subscribe(eventType string, handler func(interface{}))
}

// Bus delivers UI events synchronously, in publish order, on the caller's goroutine.
// UI services only publish from the Bubble Tea update loop.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]func(interface{})
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]func(interface{})),
	}
}

// Subscribe registers a listener for an event type name as returned by TypeName
func (b *Bus) Subscribe(eventType string, handler func(interface{})) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], handler)
}

// Publish sends an event to all listeners
func (b *Bus) Publish(event interface{}) {
	b.mu.RLock()
	handlers := append([]func(interface{}){}, b.listeners[TypeName(event)]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// TypeName is the subscription key of an event
func TypeName(event interface{}) string {
	return fmt.Sprintf("%T", event)
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (n *NullBus) Publish(event interface{})                             {}
func (n *NullBus) Subscribe(eventType string, handler func(interface{})) {}

// Recorder keeps every published event, for tests
type Recorder struct {
	mu     sync.Mutex
	Events []interface{}
}

func (r *Recorder) Publish(event interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, event)
}

func (r *Recorder) Subscribe(eventType string, handler func(interface{})) {}

// Last returns the most recent event, or nil
func (r *Recorder) Last() interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Events) == 0 {
		return nil
	}
	return r.Events[len(r.Events)-1]
}
