package viewmodels

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchbox/internal/config"
	"searchbox/internal/domain"
	"searchbox/internal/searchapi"
	"searchbox/internal/ui/services/highlight"
	"searchbox/internal/ui/services/pagination"
	"searchbox/internal/ui/services/requests"
	"searchbox/internal/ui/services/suggestions"
	"searchbox/internal/ui/state"
	"searchbox/internal/ui/views"
)

type stubFetcher struct {
	page *domain.ResultPage
	err  error
}

func (f stubFetcher) Suggest(ctx context.Context, term string) ([]domain.Suggestion, error) {
	return nil, nil
}

func (f stubFetcher) Search(ctx context.Context, term string, page int) (*domain.ResultPage, error) {
	return f.page, f.err
}

func newViewModel(f stubFetcher) (*ViewModel, *suggestions.Service, *requests.Controller) {
	store := suggestions.NewService(nil)
	controller := requests.NewController(context.Background(), f, store, nil)
	vm := NewViewModel(state.NewAppState(), config.DefaultConfig(), store, controller,
		highlight.NewRenderer(true), pagination.NewService())
	return vm, store, controller
}

func search(t *testing.T, controller *requests.Controller, term string) {
	t.Helper()
	cmd := controller.FetchResults(term, 1)
	require.NotNil(t, cmd)
	_ = controller.ApplyResults(cmd().(requests.ResultsMsg))
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"deadline", &searchapi.NetworkError{Op: "search", Err: context.DeadlineExceeded}, "request timed out"},
		{"net timeout", &searchapi.NetworkError{Op: "search", Err: timeoutErr{}}, "request timed out"},
		{"status", &searchapi.NetworkError{Op: "search", StatusCode: 401}, "service returned status 401"},
		{"unreachable", &searchapi.NetworkError{Op: "search", Err: errors.New("connection refused")}, "service unreachable"},
		{"malformed", &searchapi.MalformedResponseError{Op: "search", Err: errors.New("bad json")}, "unexpected response from service"},
		{"wrapped", fmt.Errorf("search: %w", &searchapi.NetworkError{Op: "search", StatusCode: 503}), "service returned status 503"},
		{"other", errors.New("boom"), "boom"},
		{"other with escapes", errors.New("boom\x1b[2J"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeError(tt.err))
		})
	}
}

func TestPrintable(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Category", "Category"},
		{"unicode kept", "Café 😀", "Café 😀"},
		{"csi stripped", "Cat\x1b[2Jegory", "Category"},
		{"osc stripped", "Cat\x1b]0;pwned\x07", "Cat"},
		{"bare controls dropped", "a\x07b\x00c\x7f", "abc"},
		{"c1 control dropped", "a\u009bb", "ab"},
		{"whitespace flattened", "a\tb\nc", "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, printable(tt.in))
		})
	}
}

func hasControl(s string) bool {
	return strings.ContainsAny(s, "\x1b\x07\x00")
}

func TestSuggestionPanelStripsTerminalSequences(t *testing.T) {
	vm, store, _ := newViewModel(stubFetcher{})
	store.SetSuggestions([]domain.Suggestion{{
		Title:      "Cat\x1b[2J\x1b]0;pwned\x07egory",
		Highlights: []domain.HighlightRange{{Start: 0, End: 2}},
	}})

	panel := vm.SuggestionPanel()

	require.Len(t, panel.Items, 1)
	var text strings.Builder
	for _, span := range panel.Items[0].Spans {
		assert.False(t, hasControl(span.Text), "span %q", span.Text)
		text.WriteString(span.Text)
	}
	assert.Equal(t, "Category", text.String())
	assert.Equal(t, views.Span{Text: "Cat", Marked: true}, panel.Items[0].Spans[0])
}

func TestResultsPanelStripsTerminalSequences(t *testing.T) {
	vm, _, controller := newViewModel(stubFetcher{page: &domain.ResultPage{
		Total: 1,
		Page:  1,
		Limit: 10,
		Results: []domain.SearchResult{{
			Title:    "Dogs\x1b]0;pwned\x07",
			Path:     "/dogs\x1b[31m",
			Subtitle: "All\x1b[2J about\ndogs",
		}},
	}})
	search(t, controller, "dog\x1b[2J")

	panel := vm.ResultsPanel()

	require.Len(t, panel.Items, 1)
	assert.Equal(t, "dog", panel.Term)
	assert.Equal(t, views.ResultItem{Title: "Dogs", Link: "/dogs", Subtitle: "All about dogs"}, panel.Items[0])
	assert.False(t, hasControl(views.RenderResultsPlain(panel)))
}

func TestResultsPanelStates(t *testing.T) {
	t.Run("nothing searched", func(t *testing.T) {
		vm, _, _ := newViewModel(stubFetcher{})
		assert.False(t, vm.ResultsPanel().Shown)
		assert.Empty(t, vm.Controls())
	})

	t.Run("empty page", func(t *testing.T) {
		vm, _, controller := newViewModel(stubFetcher{page: &domain.ResultPage{Page: 1}})
		search(t, controller, "dogs")

		panel := vm.ResultsPanel()
		assert.True(t, panel.Shown)
		assert.Equal(t, NoResultsMessage, panel.Message)
		assert.Empty(t, vm.PageControls())
	})

	t.Run("error hides pagination", func(t *testing.T) {
		vm, _, controller := newViewModel(stubFetcher{err: &searchapi.NetworkError{Op: "search", StatusCode: 500}})
		search(t, controller, "dogs")

		panel := vm.ResultsPanel()
		assert.True(t, panel.IsError)
		assert.Equal(t, "Search failed: service returned status 500", panel.Message)
		assert.Empty(t, vm.Controls())
		assert.Empty(t, vm.BuildViewState().Pagination)
	})

	t.Run("first of three pages", func(t *testing.T) {
		page := &domain.ResultPage{Total: 25, Page: 1, Limit: 10}
		for i := 0; i < 10; i++ {
			page.Results = append(page.Results, domain.SearchResult{Title: "Dog"})
		}
		vm, _, controller := newViewModel(stubFetcher{page: page})
		search(t, controller, "dogs")

		panel := vm.ResultsPanel()
		assert.Equal(t, 3, panel.PageCount)
		controls := vm.PageControls()
		require.Len(t, controls, 1)
		assert.Equal(t, "next", controls[0].Kind)
		assert.Equal(t, 2, controls[0].TargetPage)
	})
}
