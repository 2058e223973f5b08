package universe

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"os"
	"strings"
)

// ErrInvalidResult is returned for a result without an absolute web URL
var ErrInvalidResult = errors.New("invalid search result")

// Result is one ranked search hit
type Result struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Description string  `json:"description"`
	Relevance   float64 `json:"relevance"`
}

// DecodeResults reads a JSON array of results. Every URL must be an
// absolute http or https URL; relevance is clamped to [0, 1].
func DecodeResults(r io.Reader) ([]Result, error) {
	var results []Result
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}

	for i := range results {
		u, err := ValidateURL(results[i].URL)
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
		results[i].URL = u
		results[i].Relevance = clamp01(results[i].Relevance)
	}
	return results, nil
}

// LoadResults reads results from a JSON file
func LoadResults(path string) ([]Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results: %w", err)
	}
	defer f.Close()

	return DecodeResults(f)
}

// ValidateURL trims raw and checks that it is an absolute http or https URL
// with a host. Anything else, such as file: URLs, custom schemes or strings
// starting with a dash, is rejected with ErrInvalidResult.
func ValidateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty url", ErrInvalidResult)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidResult, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", fmt.Errorf("%w: url %q is not http or https", ErrInvalidResult, raw)
	}
	if u.Host == "" || u.Hostname() == "" {
		return "", fmt.Errorf("%w: url %q has no host", ErrInvalidResult, raw)
	}
	return raw, nil
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
