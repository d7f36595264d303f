// Package requests issues suggestion and search calls for one search box and
// decides which responses are allowed to change what is on screen.
//
// The two lanes (suggestions and results) each carry a monotonic request id.
// A response is applied only if its id is still the latest one issued on its
// lane; anything older is discarded when it arrives. Superseded requests are
// not aborted at the transport level.
package requests

import (
	"context"
	"errors"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"searchbox/internal/domain"
	"searchbox/internal/eventbus"
	"searchbox/internal/ui/services/suggestions"
)

// ErrStaleResponse is returned by the Apply methods when a response was superseded
var ErrStaleResponse = errors.New("stale response discarded")

// Fetcher performs the two remote calls
type Fetcher interface {
	Suggest(ctx context.Context, term string) ([]domain.Suggestion, error)
	Search(ctx context.Context, term string, page int) (*domain.ResultPage, error)
}

// SuggestionsMsg carries a completed suggestion request back to the update loop
type SuggestionsMsg struct {
	ID          uint64
	Term        string
	Suggestions []domain.Suggestion
	Err         error
}

// ResultsMsg carries a completed search request back to the update loop
type ResultsMsg struct {
	ID     uint64
	Term   string
	Page   int
	Result *domain.ResultPage
	Err    error
}

// Controller is the single source of truth for the displayed query.
// All methods must be called from the Bubble Tea update loop.
type Controller struct {
	fetcher Fetcher
	store   *suggestions.Service
	bus     eventbus.EventBus

	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	latestSuggestionID uint64
	latestSearchID     uint64
	suggestionsPending bool
	resultsPending     bool

	query      domain.QueryContext
	results    *domain.ResultPage
	resultsErr error
}

// NewController creates a controller writing suggestions into store.
// bus may be nil.
func NewController(ctx context.Context, fetcher Fetcher, store *suggestions.Service, bus eventbus.EventBus) *Controller {
	ctx, cancel := context.WithCancel(ctx)
	return &Controller{
		fetcher: fetcher,
		store:   store,
		bus:     bus,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// FetchSuggestions issues a suggestion request for term. A blank term clears
// the suggestion list instead and supersedes anything still in flight.
func (c *Controller) FetchSuggestions(term string) tea.Cmd {
	if c.closed {
		return nil
	}

	c.latestSuggestionID++
	id := c.latestSuggestionID

	if strings.TrimSpace(term) == "" {
		c.suggestionsPending = false
		c.store.Clear()
		return nil
	}

	c.suggestionsPending = true
	c.publish(domain.SuggestionsRequestedEvent{Seq: id, Term: term})
	log.Printf("requests: suggest #%d q=%q", id, term)

	ctx, fetcher := c.ctx, c.fetcher
	return func() tea.Msg {
		items, err := fetcher.Suggest(ctx, term)
		return SuggestionsMsg{ID: id, Term: term, Suggestions: items, Err: err}
	}
}

// CancelSuggestions supersedes any suggestion request in flight without
// touching the list. A commit uses it so a late response cannot reopen the panel.
func (c *Controller) CancelSuggestions() {
	if c.suggestionsPending {
		c.latestSuggestionID++
		c.suggestionsPending = false
	}
}

// FetchResults issues a search request for term at page
func (c *Controller) FetchResults(term string, page int) tea.Cmd {
	if c.closed {
		return nil
	}
	if page < 1 {
		page = 1
	}

	c.latestSearchID++
	id := c.latestSearchID
	c.resultsPending = true
	c.publish(domain.ResultsRequestedEvent{Seq: id, Term: term, Page: page})
	log.Printf("requests: search #%d term=%q page=%d", id, term, page)

	ctx, fetcher := c.ctx, c.fetcher
	return func() tea.Msg {
		result, err := fetcher.Search(ctx, term, page)
		return ResultsMsg{ID: id, Term: term, Page: page, Result: result, Err: err}
	}
}

// ApplySuggestions folds a suggestion response into the store.
// A failed request hides the panel and returns the request's error.
func (c *Controller) ApplySuggestions(msg SuggestionsMsg) error {
	if c.closed || msg.ID != c.latestSuggestionID {
		c.discard(domain.LaneSuggestions, msg.ID, c.latestSuggestionID)
		return ErrStaleResponse
	}

	c.suggestionsPending = false

	if msg.Err != nil {
		log.Printf("requests: suggest #%d failed: %v", msg.ID, msg.Err)
		c.store.Clear()
		c.publish(domain.ErrorEvent{Lane: domain.LaneSuggestions, Message: "suggestions unavailable", Err: msg.Err})
		return msg.Err
	}

	c.store.SetSuggestions(msg.Suggestions)
	c.publish(domain.SuggestionsLoadedEvent{Seq: msg.ID, Term: msg.Term, Count: len(msg.Suggestions)})
	return nil
}

// ApplyResults folds a search response into the displayed query.
// A failed request leaves the query untouched and records the error for display.
func (c *Controller) ApplyResults(msg ResultsMsg) error {
	if c.closed || msg.ID != c.latestSearchID {
		c.discard(domain.LaneResults, msg.ID, c.latestSearchID)
		return ErrStaleResponse
	}

	c.resultsPending = false

	if msg.Err != nil {
		log.Printf("requests: search #%d failed: %v", msg.ID, msg.Err)
		c.resultsErr = msg.Err
		c.publish(domain.ErrorEvent{Lane: domain.LaneResults, Message: "search failed", Err: msg.Err})
		return msg.Err
	}

	result := msg.Result
	if result == nil {
		result = &domain.ResultPage{Page: msg.Page}
	}
	c.query = domain.QueryContext{Term: msg.Term, ActivePage: msg.Page}
	c.results = result
	c.resultsErr = nil
	c.publish(domain.ResultsLoadedEvent{Seq: msg.ID, Term: msg.Term, Page: msg.Page, Total: result.Total})
	return nil
}

// ChangePage re-runs the displayed query at page
func (c *Controller) ChangePage(page int) tea.Cmd {
	if c.query.IsZero() {
		return nil
	}
	return c.FetchResults(c.query.Term, page)
}

// Loading reports whether either lane is waiting on its latest request
func (c *Controller) Loading() bool {
	return c.suggestionsPending || c.resultsPending
}

func (c *Controller) SuggestionsLoading() bool { return c.suggestionsPending }
func (c *Controller) ResultsLoading() bool     { return c.resultsPending }

// Query returns the currently displayed search
func (c *Controller) Query() domain.QueryContext {
	return c.query
}

// Results returns the displayed result page, nil before the first successful search
func (c *Controller) Results() *domain.ResultPage {
	return c.results
}

// ResultsErr returns the error of the latest search, if it failed
func (c *Controller) ResultsErr() error {
	return c.resultsErr
}

// Close marks every in-flight request stale and cancels its context
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.latestSuggestionID++
	c.latestSearchID++
	c.suggestionsPending = false
	c.resultsPending = false
	c.cancel()
}

func (c *Controller) discard(lane domain.Lane, id, latest uint64) {
	log.Printf("requests: discarding stale %s response #%d (latest #%d)", lane, id, latest)
	c.publish(domain.StaleResponseEvent{Lane: lane, Seq: id, Latest: latest})
}

func (c *Controller) publish(event domain.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}
