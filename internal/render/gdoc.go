package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"resume-agent/internal/model"
)

const docsAPIBase = "https://docs.googleapis.com/v1/documents"

// GoogleDocs pushes tailored resumes to the Google Docs API using a cached
// OAuth token.
type GoogleDocs struct {
	oauthConfig *oauth2.Config
	tokenPath   string
	apiBase     string
	httpClient  *http.Client
}

// NewGoogleDocs builds a Docs client. The token file must hold a previously
// granted oauth2.Token in JSON form.
func NewGoogleDocs(clientID, clientSecret, tokenPath string) (*GoogleDocs, error) {
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(clientSecret) == "" {
		return nil, &Error{Target: "gdoc", Err: errors.New("google client credentials are not configured")}
	}
	return &GoogleDocs{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       []string{"https://www.googleapis.com/auth/documents"},
			Endpoint:     google.Endpoint,
		},
		tokenPath: tokenPath,
		apiBase:   docsAPIBase,
	}, nil
}

// Push creates a document with the given title and inserts the rendered
// resume text. Returns the document URL.
func (g *GoogleDocs) Push(ctx context.Context, title string, t model.TailoredResume) (string, error) {
	client, err := g.client(ctx)
	if err != nil {
		return "", err
	}

	docID, err := g.createDocument(ctx, client, title)
	if err != nil {
		return "", err
	}

	if err := g.insertText(ctx, client, docID, PlainText(t)); err != nil {
		return "", err
	}
	return "https://docs.google.com/document/d/" + docID + "/edit", nil
}

func (g *GoogleDocs) client(ctx context.Context) (*http.Client, error) {
	if g.httpClient != nil {
		return g.httpClient, nil
	}
	data, err := os.ReadFile(g.tokenPath)
	if err != nil {
		return nil, &Error{Target: "gdoc", Err: fmt.Errorf("read token file: %w", err)}
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, &Error{Target: "gdoc", Err: fmt.Errorf("parse token file: %w", err)}
	}
	return g.oauthConfig.Client(ctx, &token), nil
}

func (g *GoogleDocs) createDocument(ctx context.Context, client *http.Client, title string) (string, error) {
	payload, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return "", &Error{Target: "gdoc", Err: err}
	}
	body, err := g.post(ctx, client, g.apiBase, payload)
	if err != nil {
		return "", err
	}
	var created struct {
		DocumentID string `json:"documentId"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return "", &Error{Target: "gdoc", Err: fmt.Errorf("parse create response: %w", err)}
	}
	if created.DocumentID == "" {
		return "", &Error{Target: "gdoc", Err: errors.New("create response missing documentId")}
	}
	return created.DocumentID, nil
}

func (g *GoogleDocs) insertText(ctx context.Context, client *http.Client, docID, text string) error {
	payload, err := json.Marshal(map[string]any{
		"requests": []map[string]any{
			{
				"insertText": map[string]any{
					"location": map[string]any{"index": 1},
					"text":     text,
				},
			},
		},
	})
	if err != nil {
		return &Error{Target: "gdoc", Err: err}
	}
	_, err = g.post(ctx, client, g.apiBase+"/"+docID+":batchUpdate", payload)
	return err
}

func (g *GoogleDocs) post(ctx context.Context, client *http.Client, url string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Target: "gdoc", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{Target: "gdoc", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Target: "gdoc", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Target: "gdoc", Err: fmt.Errorf("docs api status %d: %s", resp.StatusCode, truncateBody(body))}
	}
	return body, nil
}

func truncateBody(body []byte) string {
	const limit = 200
	s := string(body)
	if len(s) > limit {
		return s[:limit] + "…"
	}
	return s
}

// PlainText renders the resume as plain text for hosted-document insertion.
func PlainText(t model.TailoredResume) string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteString("\n")
	}

	line(t.Headline)
	line("")
	if len(t.Summary) > 0 {
		line("SUMMARY")
		for _, s := range t.Summary {
			line("- " + s)
		}
		line("")
	}
	if len(t.Skills) > 0 {
		line("SKILLS")
		line(strings.Join(t.Skills, " · "))
		line("")
	}
	if len(t.Roles) > 0 {
		line("EXPERIENCE")
		for _, role := range t.Roles {
			header := role.Company
			if role.Title != "" {
				header += " — " + role.Title
			}
			if role.Dates != "" {
				header += " (" + role.Dates + ")"
			}
			line(header)
			for _, bullet := range role.Bullets {
				text := "- " + bullet.Text
				if bullet.NeedsRevision {
					text += " [NEEDS REVIEW]"
				}
				line(text)
			}
			line("")
		}
	}
	if len(t.GapsToConfirm) > 0 {
		line("GAPS TO CONFIRM")
		for _, gap := range t.GapsToConfirm {
			line("- " + gap)
		}
	}
	return b.String()
}
