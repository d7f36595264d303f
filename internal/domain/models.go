package domain

// HighlightRange marks an inclusive span of a title, counted in characters
type HighlightRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Suggestion is a partial-match candidate shown before a full search runs
type Suggestion struct {
	Title      string
	Name       string // secondary display field used when Title is empty
	Highlights []HighlightRange
}

// DisplayTitle resolves the title precedence: title, then name, then "Untitled"
func (s Suggestion) DisplayTitle() string {
	return DisplayTitle(s.Title, s.Name)
}

// SearchResult is a single entry of a result page
type SearchResult struct {
	Title    string
	Name     string
	Path     string
	Subtitle string
}

// DisplayTitle resolves the result title the same way suggestions do
func (r SearchResult) DisplayTitle() string {
	return DisplayTitle(r.Title, r.Name)
}

// Link returns the result path, or "#" when the service sent none
func (r SearchResult) Link() string {
	if r.Path == "" {
		return "#"
	}
	return r.Path
}

// ResultPage is one page of search results
type ResultPage struct {
	Results []SearchResult
	Total   int
	Page    int // 1-based
	Limit   int
}

// QueryContext is the search currently on screen
type QueryContext struct {
	Term       string
	ActivePage int
}

// IsZero reports whether no search has been displayed yet
func (q QueryContext) IsZero() bool {
	return q.Term == "" && q.ActivePage == 0
}

// UntitledLabel is shown when neither a title nor a name is available
const UntitledLabel = "Untitled"

// DisplayTitle picks the first non-empty of title and name
func DisplayTitle(title, name string) string {
	switch {
	case title != "":
		return title
	case name != "":
		return name
	default:
		return UntitledLabel
	}
}
