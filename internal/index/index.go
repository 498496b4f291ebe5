// Package index loads the resume index and selects the best-matching
// record for a job description using keyword overlap scoring.
package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"resume-agent/internal/shared/telemetry"
)

// ErrNoResumeAvailable indicates the index has no usable records.
var ErrNoResumeAvailable = errors.New("no resume available in index")

// lowMatchThreshold marks a best score below which the job description is
// considered significantly different from every indexed resume.
const lowMatchThreshold = 6.0

// Record is one resume index entry. Read-only reference data.
type Record struct {
	ID       string   `json:"id"`
	Path     string   `json:"path"`
	Label    string   `json:"label"`
	Keywords []string `json:"keywords"`
}

// Load reads the resume index from a JSON file.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resume index: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse resume index %s: %w", path, err)
	}
	for i, rec := range records {
		if strings.TrimSpace(rec.ID) == "" {
			return nil, fmt.Errorf("resume index %s: records[%d] is missing an id", path, i)
		}
		if strings.TrimSpace(rec.Path) == "" {
			return nil, fmt.Errorf("resume index %s: records[%d] is missing a path", path, i)
		}
	}
	return records, nil
}

// Selection is the outcome of scoring the index against a job description.
type Selection struct {
	Record   Record
	Scores   map[string]float64
	LowMatch bool
}

// Select scores every record against the job description and returns the
// highest scorer, breaking ties in favor of the earliest record.
// Deterministic for identical inputs.
func Select(jdText string, records []Record) (Selection, error) {
	if len(records) == 0 {
		return Selection{}, ErrNoResumeAvailable
	}
	if strings.TrimSpace(jdText) == "" {
		return Selection{}, errors.New("job description text is empty")
	}

	scores := make(map[string]float64, len(records))
	best := records[0]
	bestScore := -1.0
	for _, rec := range records {
		score := keywordScore(jdText, rec.Keywords)
		scores[rec.ID] = score
		telemetry.Debug("scored resume candidate", map[string]any{
			"id":    rec.ID,
			"label": rec.Label,
			"score": score,
		})
		if score > bestScore {
			best = rec
			bestScore = score
		}
	}

	lowMatch := bestScore < lowMatchThreshold
	if lowMatch {
		telemetry.Warn("low keyword match; job description differs from every indexed resume", map[string]any{
			"best_id":    best.ID,
			"best_score": bestScore,
			"threshold":  lowMatchThreshold,
		})
	}

	return Selection{Record: best, Scores: scores, LowMatch: lowMatch}, nil
}

// keywordScore counts keyword overlap between the job description and a
// record's keywords: 2 points for a case-insensitive substring hit, 1 point
// when only individual tokens of a multi-word keyword appear.
func keywordScore(jdText string, keywords []string) float64 {
	jd := strings.ToLower(jdText)
	jdTokens := make(map[string]struct{})
	for _, tok := range strings.Fields(jd) {
		jdTokens[strings.Trim(tok, ".,;:()")] = struct{}{}
	}

	score := 0.0
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		lower := strings.ToLower(kw)
		if strings.Contains(jd, lower) {
			score += 2.0
			continue
		}
		for _, tok := range strings.Fields(lower) {
			if _, ok := jdTokens[tok]; ok {
				score += 1.0
				break
			}
		}
	}
	return score
}
