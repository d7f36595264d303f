package searchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"

	"searchbox/internal/config"
	"searchbox/internal/domain"
)

const (
	// APIKeyHeader carries the static credential on every call
	APIKeyHeader    = "x-api-key"
	RequestIDHeader = "X-Request-Id"

	maxBodyBytes = 4 << 20
)

// Options configures a Client
type Options struct {
	BaseURL    string
	APIKey     string
	Repo       string
	Path       string
	Sheet      string // optional, omitted from requests when empty
	Limit      int
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the remote suggest/search service
type Client struct {
	base       string
	apiKey     string
	repo       string
	path       string
	sheet      string
	limit      int
	timeout    time.Duration
	httpClient *http.Client
}

// New creates a client. A nil HTTPClient gets one with a compressed-response transport.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: gzhttp.Transport(http.DefaultTransport),
		}
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = config.DefaultLimit
	}
	return &Client{
		base:       strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		repo:       opts.Repo,
		path:       opts.Path,
		sheet:      opts.Sheet,
		limit:      limit,
		timeout:    opts.Timeout,
		httpClient: httpClient,
	}
}

// NewFromConfig creates a client for the configured repository
func NewFromConfig(cfg *config.Config) *Client {
	return New(Options{
		BaseURL: cfg.APIBase,
		APIKey:  cfg.APIKey,
		Repo:    cfg.Repo,
		Path:    cfg.Path,
		Sheet:   cfg.Sheet,
		Limit:   cfg.Limit,
		Timeout: cfg.RequestTimeout(),
	})
}

// Limit is the page size sent with every search
func (c *Client) Limit() int {
	return c.limit
}

// SuggestURL builds the suggestion endpoint URL for term
func (c *Client) SuggestURL(term string) string {
	q := c.baseQuery()
	q.Set("q", term)
	return c.base + "/suggest?" + q.Encode()
}

// SearchURL builds the search endpoint URL for term at page
func (c *Client) SearchURL(term string, page int) string {
	q := c.baseQuery()
	q.Set("search_term", term)
	q.Set("limit", strconv.Itoa(c.limit))
	q.Set("page", strconv.Itoa(page))
	return c.base + "/search?" + q.Encode()
}

func (c *Client) baseQuery() url.Values {
	q := url.Values{}
	q.Set("repo", c.repo)
	q.Set("path", c.path)
	if c.sheet != "" {
		q.Set("sheet", c.sheet)
	}
	return q
}

// Suggest fetches autocomplete suggestions for term
func (c *Client) Suggest(ctx context.Context, term string) ([]domain.Suggestion, error) {
	const op = "suggest"

	var body suggestResponse
	if err := c.get(ctx, op, c.SuggestURL(term), &body); err != nil {
		return nil, err
	}
	if body.Suggestions == nil {
		return nil, &MalformedResponseError{Op: op, Err: fmt.Errorf("%w: suggestions", errMissingField)}
	}

	suggestions := make([]domain.Suggestion, 0, len(*body.Suggestions))
	for _, ws := range *body.Suggestions {
		suggestions = append(suggestions, convertSuggestion(ws))
	}
	return suggestions, nil
}

// Search fetches one page of results for term
func (c *Client) Search(ctx context.Context, term string, page int) (*domain.ResultPage, error) {
	const op = "search"

	if page < 1 {
		page = 1
	}

	var body searchResponse
	if err := c.get(ctx, op, c.SearchURL(term, page), &body); err != nil {
		return nil, err
	}
	if body.Results == nil {
		return nil, &MalformedResponseError{Op: op, Err: fmt.Errorf("%w: results", errMissingField)}
	}

	results := make([]domain.SearchResult, 0, len(*body.Results))
	for _, wr := range *body.Results {
		results = append(results, convertResult(wr))
	}

	total := len(results)
	if body.Total != nil {
		total = *body.Total
	}

	return &domain.ResultPage{
		Results: results,
		Total:   total,
		Page:    page,
		Limit:   c.limit,
	}, nil
}

func (c *Client) get(ctx context.Context, op, rawURL string, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &NetworkError{Op: op, URL: rawURL, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	log.Printf("searchapi: %s %s -> %d in %s (request %s)", op, rawURL, resp.StatusCode, time.Since(started).Round(time.Millisecond), req.Header.Get(RequestIDHeader))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &NetworkError{Op: op, URL: rawURL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &NetworkError{Op: op, URL: rawURL, Err: fmt.Errorf("reading body: %w", err)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &MalformedResponseError{Op: op, Err: err}
	}
	return nil
}
