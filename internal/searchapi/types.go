package searchapi

import "searchbox/internal/domain"

// Wire format of GET {apiBase}/suggest
type suggestResponse struct {
	Suggestions *[]wireSuggestion `json:"suggestions"`
}

type wireSuggestion struct {
	Title      string         `json:"title"`
	Name       string         `json:"name"`
	Highlights wireHighlights `json:"_highlights"`
}

type wireHighlights struct {
	Title []domain.HighlightRange `json:"title"`
}

// Wire format of GET {apiBase}/search
type searchResponse struct {
	Results *[]wireResult `json:"results"`
	Total   *int          `json:"total"`
}

type wireResult struct {
	Title    string `json:"title"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Subtitle string `json:"article_subtitle"`
}

func convertSuggestion(ws wireSuggestion) domain.Suggestion {
	return domain.Suggestion{
		Title:      ws.Title,
		Name:       ws.Name,
		Highlights: ws.Highlights.Title,
	}
}

func convertResult(wr wireResult) domain.SearchResult {
	return domain.SearchResult{
		Title:    wr.Title,
		Name:     wr.Name,
		Path:     wr.Path,
		Subtitle: wr.Subtitle,
	}
}
