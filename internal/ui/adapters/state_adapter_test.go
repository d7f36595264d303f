package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchbox/internal/domain"
	"searchbox/internal/ui/services/requests"
	"searchbox/internal/ui/services/suggestions"
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

func newAdapter(f stubFetcher) (*InputContextAdapter, *suggestions.Service, *requests.Controller) {
	store := suggestions.NewService(nil)
	controller := requests.NewController(context.Background(), f, store, nil)
	return NewInputContextAdapter(store, controller), store, controller
}

func TestSelectedTitle(t *testing.T) {
	a, store, _ := newAdapter(stubFetcher{})

	_, ok := a.SelectedTitle()
	assert.False(t, ok, "nothing selected yet")

	store.SetSuggestions([]domain.Suggestion{
		{Title: "Category"},
		{Name: "dogs-and-cats"},
		{Title: "   "},
	})
	assert.True(t, a.PanelVisible())

	store.MoveSelection(suggestions.DirectionNext)
	title, ok := a.SelectedTitle()
	assert.True(t, ok)
	assert.Equal(t, "Category", title)

	store.MoveSelection(suggestions.DirectionNext)
	title, ok = a.SelectedTitle()
	assert.True(t, ok)
	assert.Equal(t, "dogs-and-cats", title, "name stands in for a missing title")

	store.MoveSelection(suggestions.DirectionNext)
	_, ok = a.SelectedTitle()
	assert.False(t, ok, "a blank suggestion has nothing to search for")
}

func TestPanelVisibleFollowsStore(t *testing.T) {
	a, store, _ := newAdapter(stubFetcher{})
	store.SetSuggestions([]domain.Suggestion{{Title: "Cabin"}})
	assert.True(t, a.PanelVisible())

	store.Hide()
	assert.False(t, a.PanelVisible())
}

func TestHasResults(t *testing.T) {
	t.Run("page displayed", func(t *testing.T) {
		a, _, controller := newAdapter(stubFetcher{page: &domain.ResultPage{Total: 1, Page: 1}})
		assert.False(t, a.HasResults())

		cmd := controller.FetchResults("dog", 1)
		require.NotNil(t, cmd)
		require.NoError(t, controller.ApplyResults(cmd().(requests.ResultsMsg)))
		assert.True(t, a.HasResults())
	})

	t.Run("failed search", func(t *testing.T) {
		a, _, controller := newAdapter(stubFetcher{err: errors.New("boom")})
		cmd := controller.FetchResults("dog", 1)
		require.NotNil(t, cmd)
		require.Error(t, controller.ApplyResults(cmd().(requests.ResultsMsg)))
		assert.False(t, a.HasResults())
	})
}

func TestCommitTerm(t *testing.T) {
	assert.Equal(t, "Cabin", CommitTerm(domain.Suggestion{Title: "Cabin", Name: "cabin"}))
	assert.Equal(t, "cabin", CommitTerm(domain.Suggestion{Title: " ", Name: "cabin"}))
}
