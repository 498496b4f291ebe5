package render

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"resume-agent/internal/model"
)

func sampleTailored() model.TailoredResume {
	return model.TailoredResume{
		Headline: "Senior Business Analyst",
		Summary:  []string{"8 years of analytics experience"},
		Skills:   []string{"SQL", "Tableau"},
		Roles: []model.TailoredRole{
			{
				Company: "Acme & Co",
				Title:   "Analyst",
				Dates:   "2021-2024",
				Bullets: []model.TailoredBullet{
					{Text: "Built dashboards for 40 stakeholders", SourceBulletIDs: []string{"acme_co_1"}},
					{Text: "Expanded <scope>", SourceBulletIDs: []string{"acme_co_2"}, NeedsRevision: true, RevisionNote: "verify"},
				},
			},
		},
		ChangeLog:     []string{"rewrote headline"},
		GapsToConfirm: []string{"no direct finance experience"},
	}
}

func TestJSONDeterministic(t *testing.T) {
	first, err := JSON(sampleTailored())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := JSON(sampleTailored())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("identical input must render byte-identical JSON")
	}
	if !bytes.HasSuffix(first, []byte("\n")) {
		t.Fatal("artifact should end with a newline")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	want := sampleTailored()
	data, err := JSON(want)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip changed the value:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestWriteJSONCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "tailored_resume.json")
	if err := WriteJSON(sampleTailored(), path); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if _, err := ParseJSON(data); err != nil {
		t.Fatalf("written artifact unparseable: %v", err)
	}
}

func TestDOCXIsValidArchive(t *testing.T) {
	data, err := DOCX(sampleTailored())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}

	parts := map[string]bool{}
	var document string
	for _, f := range reader.File {
		parts[f.Name] = true
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				t.Fatalf("open document part: %v", err)
			}
			content, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				t.Fatalf("read document part: %v", err)
			}
			document = string(content)
		}
	}
	for _, want := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		if !parts[want] {
			t.Errorf("archive missing part %q", want)
		}
	}

	for _, want := range []string{
		"Senior Business Analyst",
		"Acme &amp; Co — Analyst (2021-2024)",
		"Expanded &lt;scope&gt; [NEEDS REVIEW]",
		"no direct finance experience",
	} {
		if !strings.Contains(document, want) {
			t.Errorf("document.xml missing %q", want)
		}
	}
}

func TestDOCXRequiresHeadline(t *testing.T) {
	if _, err := DOCX(model.TailoredResume{}); err == nil {
		t.Fatal("expected an error for an empty resume")
	}
}

func TestPlainTextMarksRevisions(t *testing.T) {
	text := PlainText(sampleTailored())
	for _, want := range []string{
		"Senior Business Analyst",
		"SKILLS",
		"SQL · Tableau",
		"Acme & Co — Analyst (2021-2024)",
		"- Expanded <scope> [NEEDS REVIEW]",
		"GAPS TO CONFIRM",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("plain text missing %q:\n%s", want, text)
		}
	}
}
