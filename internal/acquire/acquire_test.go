package acquire

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"resume-agent/internal/shared/retry"
)

func testFetcher(t *testing.T) *Fetcher {
	t.Helper()
	f := NewFetcher(5*time.Second, "test-agent")
	f.Retry = retry.Config{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
	return f
}

func TestIsURL(t *testing.T) {
	cases := []struct {
		source string
		want   bool
	}{
		{"https://example.com/jobs/123", true},
		{"http://example.com", true},
		{"jd.txt", false},
		{"/tmp/jd.txt", false},
		{"ftp://example.com/file", false},
		{"https://", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsURL(tc.source); got != tc.want {
			t.Errorf("IsURL(%q) = %v, want %v", tc.source, got, tc.want)
		}
	}
}

func TestJobDescriptionFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jd.txt")
	content := "Senior Business Analyst. Must have SQL, Tableau, and stakeholder management experience."
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		t.Fatalf("write jd: %v", err)
	}

	got, err := testFetcher(t).JobDescription(context.Background(), path)
	if err != nil {
		t.Fatalf("expected file read to succeed, got %v", err)
	}
	if got != content {
		t.Fatalf("got %q, want %q", got, content)
	}
}

func TestJobDescriptionMissingFile(t *testing.T) {
	_, err := testFetcher(t).JobDescription(context.Background(), "missing.txt")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	var acqErr *Error
	if !errors.As(err, &acqErr) {
		t.Fatalf("expected *acquire.Error, got %T: %v", err, err)
	}
	if acqErr.Source != "missing.txt" {
		t.Fatalf("error names source %q, want missing.txt", acqErr.Source)
	}
}

func TestJobDescriptionEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("  \n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := testFetcher(t).JobDescription(context.Background(), path)
	var acqErr *Error
	if !errors.As(err, &acqErr) {
		t.Fatalf("expected *acquire.Error for empty file, got %v", err)
	}
}

func TestJobDescriptionFromHTML(t *testing.T) {
	page := `<html><head><title>Job</title><script>track();</script></head>
	<body>
	<nav>Home | Jobs</nav>
	<h1>Senior Business Analyst</h1>
	<p>We are looking for an analyst with strong SQL and Tableau skills to
	partner with finance stakeholders on reporting.</p>
	<footer>copyright</footer>
	</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "test-agent" {
			t.Errorf("user agent = %q, want test-agent", got)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	got, err := testFetcher(t).JobDescription(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	for _, want := range []string{"Senior Business Analyst", "SQL", "Tableau"} {
		if !strings.Contains(got, want) {
			t.Errorf("extracted text missing %q:\n%s", want, got)
		}
	}
	for _, skip := range []string{"track();", "Home | Jobs", "copyright"} {
		if strings.Contains(got, skip) {
			t.Errorf("extracted text should not contain %q", skip)
		}
	}
}

func TestJobDescriptionFromPlainText(t *testing.T) {
	body := "Plain text job posting with enough characters to pass the minimum length check."
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	got, err := testFetcher(t).JobDescription(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got != body {
		t.Fatalf("got %q, want %q", got, body)
	}
}

func TestJobDescriptionTooShort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("Access denied"))
	}))
	defer srv.Close()

	_, err := testFetcher(t).JobDescription(context.Background(), srv.URL)
	var acqErr *Error
	if !errors.As(err, &acqErr) {
		t.Fatalf("expected *acquire.Error for a short extraction, got %v", err)
	}
	if !strings.Contains(err.Error(), "characters") {
		t.Fatalf("error should mention the extracted length: %v", err)
	}
}

func TestJobDescriptionRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("A posting long enough to satisfy the minimum extraction length requirement."))
	}))
	defer srv.Close()

	_, err := testFetcher(t).JobDescription(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestJobDescriptionDoesNotRetryForbidden(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testFetcher(t).JobDescription(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected an error for a 403 response")
	}
	if calls != 1 {
		t.Fatalf("403 should not be retried, got %d calls", calls)
	}
}

func TestGoogleDocExportURL(t *testing.T) {
	got, ok := googleDocExportURL("https://docs.google.com/document/d/abc123_XY-z/edit?usp=sharing")
	if !ok {
		t.Fatal("expected a google doc link to be recognized")
	}
	want := "https://docs.google.com/document/d/abc123_XY-z/export?format=txt"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	if _, ok := googleDocExportURL("https://example.com/jobs/123"); ok {
		t.Fatal("non-google urls must not be rewritten")
	}
}
