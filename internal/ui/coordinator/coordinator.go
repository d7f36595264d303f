package coordinator

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"searchbox/internal/config"
	"searchbox/internal/eventbus"
	"searchbox/internal/ui/services/debounce"
	"searchbox/internal/ui/services/events"
	"searchbox/internal/ui/services/highlight"
	"searchbox/internal/ui/services/pagination"
	"searchbox/internal/ui/services/requests"
	"searchbox/internal/ui/services/suggestions"
)

// Coordinator manages all UI services of one search box and their interactions
type Coordinator struct {
	// Services
	Suggestions *suggestions.Service
	Debounce    *debounce.Debouncer
	Requests    *requests.Controller
	Pagination  *pagination.Service
	Highlight   *highlight.Renderer

	// Dependencies
	bus *events.Bus
}

// NewCoordinator creates the services for cfg. domainBus may be nil.
func NewCoordinator(ctx context.Context, cfg *config.Config, fetcher requests.Fetcher, domainBus eventbus.EventBus) *Coordinator {
	bus := events.NewBus()
	c := &Coordinator{
		Suggestions: suggestions.NewService(bus),
		Pagination:  pagination.NewService(),
		Highlight:   highlight.NewRenderer(cfg.UISettings.EscapeMarkup),
		bus:         bus,
	}
	c.Requests = requests.NewController(ctx, fetcher, c.Suggestions, domainBus)

	// Wire up service dependencies
	c.wireServices(cfg)

	return c
}

// wireServices connects services with their dependencies
func (c *Coordinator) wireServices(cfg *config.Config) {
	// A blank input supersedes any suggestion request still in flight
	c.Debounce = debounce.New(cfg.DebounceInterval(), func() {
		c.Requests.FetchSuggestions("")
	})
}

// OnPanelVisibility calls fn whenever the suggestion panel is shown or hidden
func (c *Coordinator) OnPanelVisibility(fn func(visible bool)) {
	c.bus.Subscribe(events.TypeName(suggestions.PanelVisibilityChangedEvent{}), func(e interface{}) {
		if ev, ok := e.(suggestions.PanelVisibilityChangedEvent); ok {
			fn(ev.Visible)
		}
	})
}

// ScheduleSuggestions debounces a suggestion request for term.
// A blank term clears the list at once.
func (c *Coordinator) ScheduleSuggestions(term string) tea.Cmd {
	return c.Debounce.Schedule(term, c.Requests.FetchSuggestions)
}

// Commit drops pending suggestion work and searches term at page
func (c *Coordinator) Commit(term string, page int) tea.Cmd {
	// A late suggestion response must not reopen the panel over the results
	c.Debounce.Cancel()
	c.Requests.CancelSuggestions()
	return c.Requests.FetchResults(term, page)
}

// Close cancels pending work. Responses still in flight are discarded.
func (c *Coordinator) Close() {
	c.Debounce.Cancel()
	c.Requests.Close()
}
