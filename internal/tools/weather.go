package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const defaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// cityPattern grabs the words following the first "in" or "to" in the
// goal text. The capture is deliberately greedy over letters and
// spaces, so "weekend in New York" yields "New York".
var cityPattern = regexp.MustCompile(`\b(?:in|to)\s+([A-Za-z\s]+)`)

// ExtractCity derives a city name from free-text goal input. When no
// preposition match is found it falls back to the literal token
// "destination" so the provider call still has a query.
func ExtractCity(goal string) string {
	m := cityPattern.FindStringSubmatch(goal)
	if m == nil {
		return "destination"
	}
	city := strings.TrimSpace(m[1])
	if city == "" {
		return "destination"
	}
	return city
}

// WeatherLookup fetches current conditions for the city mentioned in
// the goal, via the OpenWeather current-weather endpoint.
type WeatherLookup struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewWeatherLookup(apiKey string) *WeatherLookup {
	return &WeatherLookup{
		APIKey:  apiKey,
		BaseURL: defaultWeatherBaseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (w *WeatherLookup) Name() string {
	return "weather"
}

// Lookup returns "<temp>°C, <Description>, Humidity: <h>%" in metric
// units, or a fixed failure string. It never returns an error.
func (w *WeatherLookup) Lookup(ctx context.Context, goal string) string {
	city := ExtractCity(goal)

	if w.APIKey == "" {
		return "Weather API key not configured"
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", w.APIKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Sprintf("Weather lookup failed: %v", err)
	}

	resp, err := w.Client.Do(req)
	if err != nil {
		return fmt.Sprintf("Weather lookup failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Weather data not available for %s", city)
	}

	var data struct {
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return fmt.Sprintf("Weather lookup failed: %v", err)
	}

	desc := ""
	if len(data.Weather) > 0 {
		desc = cases.Title(language.English).String(data.Weather[0].Description)
	}

	return fmt.Sprintf("%.1f°C, %s, Humidity: %d%%", data.Main.Temp, desc, data.Main.Humidity)
}
