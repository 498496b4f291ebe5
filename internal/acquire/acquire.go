// Package acquire obtains job-description text from a URL or local file.
package acquire

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"resume-agent/internal/shared/retry"
	"resume-agent/internal/shared/telemetry"
)

// MinTextLength is the smallest extraction considered usable. Anything
// shorter usually means an anti-scraping block or an empty page.
const MinTextLength = 50

// Error reports a failed acquisition with the offending source.
type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("acquisition failed for %s: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Fetcher acquires job description text.
type Fetcher struct {
	HTTPClient *http.Client
	UserAgent  string
	Retry      retry.Config
}

// NewFetcher builds a Fetcher with the given request timeout.
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{Timeout: timeout},
		UserAgent:  userAgent,
		Retry:      retry.DefaultConfig(),
	}
}

// JobDescription resolves source as a URL or file path and returns its text.
func (f *Fetcher) JobDescription(ctx context.Context, source string) (string, error) {
	if IsURL(source) {
		return f.fromURL(ctx, source)
	}
	return fromFile(source)
}

func fromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{Source: path, Err: err}
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", &Error{Source: path, Err: fmt.Errorf("file is empty")}
	}
	return text, nil
}

func (f *Fetcher) fromURL(ctx context.Context, rawURL string) (string, error) {
	target := rawURL
	// Google Docs links are fetched through the plain-text export endpoint.
	if exportURL, ok := googleDocExportURL(rawURL); ok {
		telemetry.Debug("using google doc export url", map[string]any{"url": exportURL})
		target = exportURL
	}

	var text string
	err := retry.Do(ctx, f.Retry, func(ctx context.Context) error {
		extracted, err := f.fetchOnce(ctx, target)
		if err != nil {
			return err
		}
		text = extracted
		return nil
	})
	if err != nil {
		return "", &Error{Source: rawURL, Err: err}
	}

	if len(text) < MinTextLength {
		return "", &Error{
			Source: rawURL,
			Err:    fmt.Errorf("extracted only %d characters; the page may require javascript or block scraping", len(text)),
		}
	}
	return text, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Referer", "https://www.google.com/")

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", err
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	switch {
	case strings.Contains(contentType, "application/json"):
		return textFromJSON(body), nil
	case strings.Contains(contentType, "text/plain"):
		return strings.TrimSpace(string(body)), nil
	default:
		return ExtractText(strings.NewReader(string(body)))
	}
}

func textFromJSON(body []byte) string {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}
	pretty, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return strings.TrimSpace(string(body))
	}
	return string(pretty)
}

// IsURL reports whether source looks like an http(s) URL.
func IsURL(source string) bool {
	parsed, err := url.Parse(source)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

var googleDocIDPattern = regexp.MustCompile(`docs\.google\.com/document/d/([a-zA-Z0-9_-]+)`)

func googleDocExportURL(rawURL string) (string, bool) {
	m := googleDocIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("https://docs.google.com/document/d/%s/export?format=txt", m[1]), true
}
