package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitEvent(t *testing.T, ch <-chan DomainEvent) DomainEvent {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventResultsLoaded, func(e DomainEvent) { got <- e })

	b.Publish(ResultsLoadedEvent{Seq: 3, Term: "dogs", Page: 2, Total: 25})

	e := waitEvent(t, got)
	loaded, ok := e.(ResultsLoadedEvent)
	require.True(t, ok)
	assert.Equal(t, "dogs", loaded.Term)
	assert.Equal(t, 2, loaded.Page)
}

func TestSubscribersOnlySeeTheirType(t *testing.T) {
	b := New()
	defer b.Close()

	errs := make(chan DomainEvent, 2)
	loaded := make(chan DomainEvent, 2)
	b.Subscribe(EventError, func(e DomainEvent) { errs <- e })
	b.Subscribe(EventSuggestionsLoaded, func(e DomainEvent) { loaded <- e })

	b.Publish(SuggestionsLoadedEvent{Seq: 1, Term: "cat", Count: 1})

	waitEvent(t, loaded)
	select {
	case e := <-errs:
		t.Fatalf("unexpected event %v", e.Type())
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	defer b.Close()

	first := make(chan DomainEvent, 2)
	second := make(chan DomainEvent, 2)
	unsubscribe := b.Subscribe(EventStaleResponse, func(e DomainEvent) { first <- e })
	b.Subscribe(EventStaleResponse, func(e DomainEvent) { second <- e })

	unsubscribe()
	b.Publish(StaleResponseEvent{Seq: 1, Latest: 2})

	waitEvent(t, second)
	assert.Len(t, first, 0)
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventError, func(e DomainEvent) { panic("boom") })
	b.Subscribe(EventError, func(e DomainEvent) { got <- e })

	b.Publish(ErrorEvent{Message: "network down"})

	e := waitEvent(t, got)
	assert.Equal(t, EventError, e.Type())
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New()
	got := make(chan DomainEvent, 1)
	b.Subscribe(EventConfigSaved, func(e DomainEvent) { got <- e })

	b.Close()
	b.Close()
	b.Publish(ConfigSavedEvent{Path: "/tmp/x"})

	select {
	case <-got:
		t.Fatal("event delivered after close")
	case <-time.After(50 * time.Millisecond):
	}
}
