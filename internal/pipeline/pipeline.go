// Package pipeline runs the full tailoring flow: fetch the job posting,
// pick a base resume, extract structured data, tailor, and validate.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"resume-agent/internal/acquire"
	"resume-agent/internal/extract"
	"resume-agent/internal/filetext"
	"resume-agent/internal/index"
	"resume-agent/internal/model"
	"resume-agent/internal/shared/telemetry"
	"resume-agent/internal/tailor"
	"resume-agent/internal/validate"
)

// Pipeline wires the stages together. Each field is replaceable in tests.
type Pipeline struct {
	Fetcher   *acquire.Fetcher
	Extractor *extract.Extractor
	Tailorer  *tailor.Tailorer
	IndexPath string

	// resumeTextFn reads the selected resume file; defaults to
	// filetext.FromFile.
	resumeTextFn func(path string) (string, error)
}

// New builds a Pipeline with the default file-text reader.
func New(fetcher *acquire.Fetcher, extractor *extract.Extractor, tailorer *tailor.Tailorer, indexPath string) *Pipeline {
	return &Pipeline{
		Fetcher:      fetcher,
		Extractor:    extractor,
		Tailorer:     tailorer,
		IndexPath:    indexPath,
		resumeTextFn: filetext.FromFile,
	}
}

// Result carries the tailored resume and run metadata for callers.
type Result struct {
	RunID         string
	Tailored      model.TailoredResume
	SelectedID    string
	SelectedPath  string
	SelectedLabel string
	LowMatch      bool
	Scores        map[string]float64
}

// Run executes every stage in order. Errors carry the originating stage's
// typed error so callers can classify them with errors.As.
func (p *Pipeline) Run(ctx context.Context, jdSource string) (Result, error) {
	result := Result{RunID: uuid.NewString()}
	telemetry.Info("pipeline starting", map[string]any{
		"run_id": result.RunID,
		"source": jdSource,
	})

	jdText, err := p.Fetcher.JobDescription(ctx, jdSource)
	if err != nil {
		return result, fmt.Errorf("acquire job description: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	records, err := index.Load(p.IndexPath)
	if err != nil {
		return result, fmt.Errorf("load resume index: %w", err)
	}
	selection, err := index.Select(jdText, records)
	if err != nil {
		return result, fmt.Errorf("select resume: %w", err)
	}
	result.SelectedID = selection.Record.ID
	result.SelectedPath = selection.Record.Path
	result.SelectedLabel = selection.Record.Label
	result.LowMatch = selection.LowMatch
	result.Scores = selection.Scores

	resumeText, err := p.resumeTextFn(selection.Record.Path)
	if err != nil {
		return result, fmt.Errorf("read resume %s: %w", selection.Record.Path, err)
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	jd, err := p.Extractor.JobDescription(ctx, jdText)
	if err != nil {
		return result, fmt.Errorf("extract job description: %w", err)
	}
	resume, err := p.Extractor.Resume(ctx, resumeText)
	if err != nil {
		return result, fmt.Errorf("extract resume: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	tailored, err := p.Tailorer.Run(ctx, jd, resume, selection.LowMatch)
	if err != nil {
		return result, fmt.Errorf("tailor resume: %w", err)
	}

	if err := validate.TailoredResume(tailored, resume); err != nil {
		return result, fmt.Errorf("validate tailored resume: %w", err)
	}

	result.Tailored = tailored
	telemetry.Info("pipeline finished", map[string]any{
		"run_id":         result.RunID,
		"selected":       selection.Record.ID,
		"low_match":      selection.LowMatch,
		"revision_count": tailored.RevisionCount(),
	})
	return result, nil
}
