package index

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeIndex(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume_index.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	return path
}

func TestLoadValidIndex(t *testing.T) {
	path := writeIndex(t, `[
		{"id": "ba_finance", "path": "resumes/ba_finance.pdf", "label": "BA Finance", "keywords": ["sql", "tableau"]},
		{"id": "pm_saas", "path": "resumes/pm_saas.pdf", "label": "PM SaaS", "keywords": ["roadmap"]}
	]`)

	records, err := Load(path)
	if err != nil {
		t.Fatalf("expected index to load, got error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "ba_finance" || records[1].ID != "pm_saas" {
		t.Fatalf("unexpected record order: %+v", records)
	}
}

func TestLoadRejectsMissingID(t *testing.T) {
	path := writeIndex(t, `[{"path": "resumes/a.pdf", "keywords": ["sql"]}]`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a record without an id")
	}
}

func TestLoadRejectsMissingPath(t *testing.T) {
	path := writeIndex(t, `[{"id": "a", "keywords": ["sql"]}]`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a record without a path")
	}
}

func TestSelectPicksHighestScore(t *testing.T) {
	records := []Record{
		{ID: "ba", Path: "a.pdf", Keywords: []string{"SQL", "Tableau", "stakeholder"}},
		{ID: "pm", Path: "b.pdf", Keywords: []string{"roadmap", "OKR"}},
	}
	jd := "Business analyst role. Must know SQL and Tableau, partner with every stakeholder."

	sel, err := Select(jd, records)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if sel.Record.ID != "ba" {
		t.Fatalf("expected ba to win, got %s (scores %v)", sel.Record.ID, sel.Scores)
	}
	if sel.Scores["ba"] <= sel.Scores["pm"] {
		t.Fatalf("expected ba to outscore pm, got %v", sel.Scores)
	}
}

func TestSelectPrefersBroaderKeywordOverlap(t *testing.T) {
	records := []Record{
		{ID: "backend", Path: "a.pdf", Keywords: []string{"Python", "Django", "AWS", "PostgreSQL"}},
		{ID: "ml", Path: "b.pdf", Keywords: []string{"Python", "Machine Learning", "TensorFlow"}},
	}
	jd := "Seeking a Python engineer with AWS and Django experience"

	sel, err := Select(jd, records)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if sel.Record.ID != "backend" {
		t.Fatalf("expected backend resume, got %s (scores %v)", sel.Record.ID, sel.Scores)
	}
	if sel.Scores["backend"] != 6.0 || sel.Scores["ml"] != 2.0 {
		t.Fatalf("scores = %v", sel.Scores)
	}
}

func TestSelectExactMatchBeatsPartial(t *testing.T) {
	records := []Record{
		{ID: "partial", Path: "a.pdf", Keywords: []string{"data engineering"}},
		{ID: "exact", Path: "b.pdf", Keywords: []string{"data"}},
	}
	// "data" appears verbatim; "data engineering" only overlaps on a token.
	jd := "We need someone who loves data and analytics work every single day here."

	sel, err := Select(jd, records)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if sel.Record.ID != "exact" {
		t.Fatalf("expected exact keyword match to win, got %s (scores %v)", sel.Record.ID, sel.Scores)
	}
}

func TestSelectTieBreaksEarliest(t *testing.T) {
	records := []Record{
		{ID: "first", Path: "a.pdf", Keywords: []string{"python"}},
		{ID: "second", Path: "b.pdf", Keywords: []string{"python"}},
	}
	jd := "Looking for a python developer to join our platform team immediately."

	sel, err := Select(jd, records)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if sel.Record.ID != "first" {
		t.Fatalf("expected earliest record to win the tie, got %s", sel.Record.ID)
	}
}

func TestSelectDeterministic(t *testing.T) {
	records := []Record{
		{ID: "a", Path: "a.pdf", Keywords: []string{"sql", "excel"}},
		{ID: "b", Path: "b.pdf", Keywords: []string{"sql", "python"}},
	}
	jd := "Analyst with sql, excel and python experience wanted for reporting team."

	first, err := Select(jd, records)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Select(jd, records)
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		if again.Record.ID != first.Record.ID {
			t.Fatalf("selection changed between runs: %s vs %s", first.Record.ID, again.Record.ID)
		}
	}
}

func TestSelectEmptyIndex(t *testing.T) {
	_, err := Select("some job description", nil)
	if !errors.Is(err, ErrNoResumeAvailable) {
		t.Fatalf("expected ErrNoResumeAvailable, got %v", err)
	}
}

func TestSelectLowMatchFlag(t *testing.T) {
	records := []Record{
		{ID: "ba", Path: "a.pdf", Keywords: []string{"sql"}},
	}
	jd := "Veterinary surgeon needed for a rural clinic, no software involved at all."

	sel, err := Select(jd, records)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if !sel.LowMatch {
		t.Fatalf("expected low-match flag for an unrelated posting, scores %v", sel.Scores)
	}
	if sel.Record.ID != "ba" {
		t.Fatalf("low match still returns the best record, got %s", sel.Record.ID)
	}
}

func TestKeywordScoreWeights(t *testing.T) {
	jd := "senior business analyst with sql experience and tableau dashboards"

	cases := []struct {
		name     string
		keywords []string
		want     float64
	}{
		{"exact match", []string{"sql"}, 2.0},
		{"token overlap", []string{"business intelligence"}, 1.0},
		{"no match", []string{"kubernetes"}, 0},
		{"mixed", []string{"sql", "tableau", "kubernetes"}, 4.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := keywordScore(jd, tc.keywords); got != tc.want {
				t.Fatalf("keywordScore(%v) = %v, want %v", tc.keywords, got, tc.want)
			}
		})
	}
}
