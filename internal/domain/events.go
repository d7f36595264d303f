package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSuggestionsRequested EventType = "SuggestionsRequested"
	EventSuggestionsLoaded    EventType = "SuggestionsLoaded"
	EventResultsRequested     EventType = "ResultsRequested"
	EventResultsLoaded        EventType = "ResultsLoaded"
	EventStaleResponse        EventType = "StaleResponse"
	EventError                EventType = "Error"
	EventConfigLoaded         EventType = "ConfigLoaded"
	EventConfigSaved          EventType = "ConfigSaved"
)

// Lane identifies one of the two independent request streams
type Lane string

const (
	LaneSuggestions Lane = "suggestions"
	LaneResults     Lane = "results"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SuggestionsRequestedEvent is emitted when a suggestion request is issued
type SuggestionsRequestedEvent struct {
	Seq  uint64
	Term string
}

func (e SuggestionsRequestedEvent) Type() EventType { return EventSuggestionsRequested }

// SuggestionsLoadedEvent is emitted when the latest suggestion response is applied
type SuggestionsLoadedEvent struct {
	Seq   uint64
	Term  string
	Count int
}

func (e SuggestionsLoadedEvent) Type() EventType { return EventSuggestionsLoaded }

// ResultsRequestedEvent is emitted when a search request is issued
type ResultsRequestedEvent struct {
	Seq  uint64
	Term string
	Page int
}

func (e ResultsRequestedEvent) Type() EventType { return EventResultsRequested }

// ResultsLoadedEvent is emitted when the latest search response is applied
type ResultsLoadedEvent struct {
	Seq   uint64
	Term  string
	Page  int
	Total int
}

func (e ResultsLoadedEvent) Type() EventType { return EventResultsLoaded }

// StaleResponseEvent is emitted when a superseded response is discarded
type StaleResponseEvent struct {
	Lane   Lane
	Seq    uint64
	Latest uint64
}

func (e StaleResponseEvent) Type() EventType { return EventStaleResponse }

// ErrorEvent is emitted when a request fails
type ErrorEvent struct {
	Lane    Lane
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted after configuration is read
type ConfigLoadedEvent struct {
	Path string
	Repo string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted after configuration is written
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
