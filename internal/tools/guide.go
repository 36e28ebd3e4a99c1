package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
)

const (
	defaultGuideBaseURL = "https://en.wikivoyage.org/wiki/"
	maxGuideLength      = 1200
)

// GuideLookup fetches the destination's travel guide page and
// extracts the readable intro as plain text. It is the one enrichment
// that pulls full HTML rather than a JSON API.
type GuideLookup struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client

	sanitize *bluemonday.Policy
}

func NewGuideLookup() *GuideLookup {
	return &GuideLookup{
		BaseURL:   defaultGuideBaseURL,
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		Client:    &http.Client{Timeout: 30 * time.Second},
		sanitize:  bluemonday.StrictPolicy(),
	}
}

func (g *GuideLookup) Name() string {
	return "guide"
}

func (g *GuideLookup) Lookup(ctx context.Context, goal string) string {
	city := ExtractCity(goal)
	if city == "destination" {
		return "No destination guide available"
	}

	pageURL := g.BaseURL + url.PathEscape(strings.ReplaceAll(city, " ", "_"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return fmt.Sprintf("Destination guide not available for %s", city)
	}
	req.Header.Set("User-Agent", g.UserAgent)

	resp, err := g.Client.Do(req)
	if err != nil {
		return fmt.Sprintf("Destination guide not available for %s", city)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Destination guide not available for %s", city)
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return fmt.Sprintf("Destination guide not available for %s", city)
	}

	article, err := readability.FromReader(resp.Body, parsed)
	if err != nil {
		return fmt.Sprintf("Destination guide not available for %s", city)
	}

	text := strings.TrimSpace(g.sanitize.Sanitize(article.TextContent))
	if text == "" {
		return fmt.Sprintf("Destination guide not available for %s", city)
	}
	if len(text) > maxGuideLength {
		text = text[:maxGuideLength] + "..."
	}
	return text
}
