// Package devserver serves a small JSON corpus over the suggest/search
// contract so the search box can run and be tested without the real service.
package devserver

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	defaultSuggestLimit = 5
	defaultPageLimit    = 10
)

// Options tunes the fixture service
type Options struct {
	APIKey       string        // required x-api-key value, empty disables the check
	SuggestLimit int           // maximum suggestions per response
	Latency      time.Duration // artificial delay before every response
	Logger       bool          // log each request with chi's request logger
}

// Server answers /suggest and /search from an in-memory corpus
type Server struct {
	docs []Document
	opts Options
}

// New creates a fixture server over docs
func New(docs []Document, opts Options) *Server {
	if opts.SuggestLimit <= 0 {
		opts.SuggestLimit = defaultSuggestLimit
	}
	return &Server{docs: docs, opts: opts}
}

// Handler builds the router
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	if s.opts.Logger {
		r.Use(middleware.Logger)
	}
	r.Use(s.requireAPIKey)
	if s.opts.Latency > 0 {
		r.Use(s.delay)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/suggest", s.suggestHandler)
	r.Get("/search", s.searchHandler)
	return r
}

func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.APIKey != "" && r.URL.Path != "/healthz" && r.Header.Get("x-api-key") != s.opts.APIKey {
			writeError(w, http.StatusUnauthorized, "invalid api key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(s.opts.Latency):
		case <-r.Context().Done():
			return
		}
		next.ServeHTTP(w, r)
	})
}

type highlightJSON struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type suggestionJSON struct {
	Title      string                     `json:"title"`
	Highlights map[string][]highlightJSON `json:"_highlights"`
}

func (s *Server) suggestHandler(w http.ResponseWriter, r *http.Request) {
	if !requireParams(w, r, "repo", "path") {
		return
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	suggestions := []suggestionJSON{}
	if q != "" {
		for _, doc := range s.docs {
			ranges := unitRanges(doc.Title, matchRanges(doc.Title, q))
			if len(ranges) == 0 {
				continue
			}
			hl := make([]highlightJSON, 0, len(ranges))
			for _, rg := range ranges {
				hl = append(hl, highlightJSON{Start: rg[0], End: rg[1]})
			}
			suggestions = append(suggestions, suggestionJSON{
				Title:      doc.Title,
				Highlights: map[string][]highlightJSON{"title": hl},
			})
			if len(suggestions) == s.opts.SuggestLimit {
				break
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	if !requireParams(w, r, "repo", "path") {
		return
	}
	query := r.URL.Query()
	term := strings.TrimSpace(query.Get("search_term"))
	limit := positiveInt(query.Get("limit"), defaultPageLimit)
	page := positiveInt(query.Get("page"), 1)

	matches := []Document{}
	if term != "" {
		for _, doc := range s.docs {
			if len(matchRanges(doc.Title, term)) > 0 || len(matchRanges(doc.Subtitle, term)) > 0 {
				matches = append(matches, doc)
			}
		}
	}

	// page is bounded by the match count before it is multiplied
	start := len(matches)
	if page-1 <= len(matches)/limit {
		start = min((page-1)*limit, len(matches))
	}
	end := len(matches)
	if limit < end-start {
		end = start + limit
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results": matches[start:end],
		"total":   len(matches),
	})
}

func requireParams(w http.ResponseWriter, r *http.Request, names ...string) bool {
	for _, name := range names {
		if r.URL.Query().Get(name) == "" {
			writeError(w, http.StatusBadRequest, "missing "+name)
			return false
		}
	}
	return true
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("devserver: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
