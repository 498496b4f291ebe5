// Package extract turns raw job-description and resume text into structured
// records by prompting the external text model.
package extract

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"resume-agent/internal/llm"
	"resume-agent/internal/model"
	"resume-agent/internal/shared/retry"
	"resume-agent/internal/shared/telemetry"
)

// minInputLength guards against burning model calls on empty input.
const minInputLength = 50

// Error reports a failed structured extraction.
type Error struct {
	Kind string // "job description" or "resume"
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Extractor runs extraction calls against the configured model.
type Extractor struct {
	LLM   llm.Client
	Retry retry.Config
}

// NewExtractor builds an Extractor with the default retry policy.
func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{LLM: client, Retry: retry.DefaultConfig()}
}

// JobDescription extracts the structured form of a job posting. Input that
// is too short to be a real posting is rejected before any model call.
func (e *Extractor) JobDescription(ctx context.Context, jdText string) (model.JobDescription, error) {
	if len(strings.TrimSpace(jdText)) < minInputLength {
		return model.JobDescription{}, &Error{
			Kind: "job description",
			Err:  fmt.Errorf("input too short (%d characters)", len(strings.TrimSpace(jdText))),
		}
	}

	var jd model.JobDescription
	if err := e.completeJSON(ctx, promptExtractJD(jdText), &jd); err != nil {
		return model.JobDescription{}, &Error{Kind: "job description", Err: err}
	}
	telemetry.Info("extracted job description", map[string]any{
		"company":          jd.Company,
		"role_title":       jd.RoleTitle,
		"responsibilities": len(jd.Responsibilities),
		"requirements":     len(jd.Requirements),
	})
	return jd, nil
}

// Resume extracts the structured form of a resume and guarantees every
// bullet carries a stable identifier.
func (e *Extractor) Resume(ctx context.Context, resumeText string) (model.Resume, error) {
	if len(strings.TrimSpace(resumeText)) < minInputLength {
		return model.Resume{}, &Error{
			Kind: "resume",
			Err:  fmt.Errorf("input too short (%d characters)", len(strings.TrimSpace(resumeText))),
		}
	}

	var resume model.Resume
	if err := e.completeJSON(ctx, promptExtractResume(resumeText), &resume); err != nil {
		return model.Resume{}, &Error{Kind: "resume", Err: err}
	}
	resume.EnsureBulletIDs()
	telemetry.Info("extracted resume", map[string]any{
		"name":  resume.Name,
		"roles": len(resume.Roles),
	})
	return resume, nil
}

type validator interface {
	Validate() error
}

// completeJSON calls the model and decodes the response into out. The
// network call retries transient failures via the shared wrapper; parse and
// schema failures get a fresh completion, up to the same attempt budget.
func (e *Extractor) completeJSON(ctx context.Context, prompt string, out validator) error {
	attempts := e.Retry.MaxAttempts
	if attempts <= 0 {
		attempts = retry.DefaultConfig().MaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		var raw string
		err := retry.Do(ctx, e.Retry, func(ctx context.Context) error {
			resp, err := e.LLM.Complete(ctx, prompt)
			if err != nil {
				return err
			}
			raw = resp
			return nil
		})
		if err != nil {
			return err
		}

		// json.Unmarshal merges into a non-empty target; fields from a
		// rejected earlier response must not survive into this attempt.
		reflect.ValueOf(out).Elem().SetZero()
		if err := llm.DecodeJSON(raw, out); err != nil {
			lastErr = fmt.Errorf("unparseable model output: %w", err)
			telemetry.Warn("model output parse failed", map[string]any{"attempt": attempt, "error": err.Error()})
			continue
		}
		if err := out.Validate(); err != nil {
			lastErr = fmt.Errorf("schema mismatch: %w", err)
			telemetry.Warn("model output schema mismatch", map[string]any{"attempt": attempt, "error": err.Error()})
			continue
		}
		return nil
	}
	return lastErr
}
