package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/tmc/langchaingo/tools/duckduckgo"
)

const (
	defaultSearchBaseURL = "https://serpapi.com/search"
	maxSearchResults     = 5
)

// SearchLookup queries SerpAPI when a key is configured and falls
// back to DuckDuckGo otherwise, so search enrichment works out of the
// box without credentials.
type SearchLookup struct {
	APIKey  string
	BaseURL string
	Client  *http.Client

	fallback *duckduckgo.Tool
	sanitize *bluemonday.Policy
}

func NewSearchLookup(apiKey string) (*SearchLookup, error) {
	ddg, err := duckduckgo.New(maxSearchResults, duckduckgo.DefaultUserAgent)
	if err != nil {
		return nil, err
	}
	return &SearchLookup{
		APIKey:   apiKey,
		BaseURL:  defaultSearchBaseURL,
		Client:   &http.Client{Timeout: 30 * time.Second},
		fallback: ddg,
		sanitize: bluemonday.StrictPolicy(),
	}, nil
}

func (s *SearchLookup) Name() string {
	return "search"
}

// Lookup returns up to five "Title:/Snippet:" blocks separated by
// blank lines, "No results found" when the provider has nothing, or a
// "Search failed: ..." string on any provider error.
func (s *SearchLookup) Lookup(ctx context.Context, query string) string {
	if s.APIKey == "" {
		return s.duckduckgoSearch(ctx, query)
	}
	return s.serpapiSearch(ctx, query)
}

func (s *SearchLookup) serpapiSearch(ctx context.Context, query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("engine", "google")
	params.Set("api_key", s.APIKey)
	params.Set("num", fmt.Sprintf("%d", maxSearchResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Sprintf("Search failed: %v", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Sprintf("Search failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Search failed: unexpected status %d", resp.StatusCode)
	}

	var data struct {
		OrganicResults []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"organic_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return fmt.Sprintf("Search failed: %v", err)
	}

	var blocks []string
	for i, r := range data.OrganicResults {
		if i == maxSearchResults {
			break
		}
		// Snippets occasionally carry markup; strip it before display.
		title := s.sanitize.Sanitize(r.Title)
		snippet := s.sanitize.Sanitize(r.Snippet)
		blocks = append(blocks, fmt.Sprintf("Title: %s\nSnippet: %s\n", title, snippet))
	}
	if len(blocks) == 0 {
		return "No results found"
	}
	return strings.Join(blocks, "\n")
}

func (s *SearchLookup) duckduckgoSearch(ctx context.Context, query string) string {
	if s.fallback == nil {
		return "Search failed: search provider not configured"
	}
	res, err := s.fallback.Call(ctx, query)
	if err != nil {
		return fmt.Sprintf("Search failed: %v", err)
	}
	if strings.TrimSpace(res) == "" {
		return "No results found"
	}
	return res
}
