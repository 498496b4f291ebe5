// Package tailor aligns resume content to job requirements: it rewrites the
// headline, summary, skills, and every role's bullets with the external
// model, tracks provenance of each rewritten bullet, and flags content the
// model introduced that has no traceable source.
package tailor

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/sync/errgroup"

	"resume-agent/internal/llm"
	"resume-agent/internal/model"
	"resume-agent/internal/shared/retry"
	"resume-agent/internal/shared/telemetry"
)

const defaultConcurrency = 3

// Error reports a tailoring failure, scoped to the unit that failed.
type Error struct {
	Unit string // "header", "skills", "role <company>", "review"
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("tailoring failed for %s: %v", e.Unit, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Tailorer runs the matching and tailoring stage.
type Tailorer struct {
	LLM         llm.Client
	Retry       retry.Config
	Concurrency int
}

// NewTailorer builds a Tailorer with default retry and concurrency settings.
func NewTailorer(client llm.Client) *Tailorer {
	return &Tailorer{
		LLM:         client,
		Retry:       retry.DefaultConfig(),
		Concurrency: defaultConcurrency,
	}
}

// Run tailors the resume against the extracted job description. Role
// tailoring calls are independent and dispatched concurrently with a
// bounded limit; results land in pre-allocated slots so the final role
// order always matches the source resume regardless of completion order.
func (t *Tailorer) Run(ctx context.Context, jd model.JobDescription, resume model.Resume, lowMatch bool) (model.TailoredResume, error) {
	header, err := t.tailorHeader(ctx, jd, resume)
	if err != nil {
		return model.TailoredResume{}, &Error{Unit: "header", Err: err}
	}

	skills, err := t.tailorSkills(ctx, jd)
	if err != nil {
		return model.TailoredResume{}, &Error{Unit: "skills", Err: err}
	}

	windows := responsibilityWindows(len(resume.Roles), jd.Responsibilities)

	roles := make([]model.TailoredRole, len(resume.Roles))
	g, gctx := errgroup.WithContext(ctx)
	limit := t.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	g.SetLimit(limit)

	for i := range resume.Roles {
		i := i
		role := resume.Roles[i]
		g.Go(func() error {
			tailored := t.tailorRoleWithFallback(gctx, jd, role, i, len(resume.Roles), windows[i], lowMatch)
			roles[i] = tailored
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return model.TailoredResume{}, err
	}

	review := t.finalReview(ctx, jd, header, skills, roles)

	result := model.TailoredResume{
		Headline:         header.Headline,
		Summary:          header.Summary,
		Skills:           skills.Skills,
		Roles:            roles,
		ChangeLog:        review.ChangeLog,
		QuestionsForUser: review.QuestionsForUser,
		GapsToConfirm:    review.GapsToConfirm,
	}
	if err := result.Validate(); err != nil {
		return model.TailoredResume{}, &Error{Unit: "assembly", Err: err}
	}
	return result, nil
}

// tailorRoleWithFallback tailors one role. If the model output stays
// unusable after retries, the source bullets are carried over verbatim and
// flagged for revision instead of aborting the whole run.
func (t *Tailorer) tailorRoleWithFallback(ctx context.Context, jd model.JobDescription, role model.ResumeRole, roleIndex, totalRoles int, responsibilities []string, lowMatch bool) model.TailoredRole {
	out, err := t.tailorRole(ctx, jd, role, roleIndex, totalRoles, responsibilities, lowMatch)
	if err != nil {
		telemetry.Warn("role tailoring failed; keeping source bullets", map[string]any{
			"company": role.Company,
			"error":   err.Error(),
		})
		return fallbackRole(role)
	}

	// The model must never rewrite the employer.
	if out.Company != role.Company {
		telemetry.Warn("model changed company name; reverting", map[string]any{
			"got":  out.Company,
			"want": role.Company,
		})
		out.Company = role.Company
	}
	if strings.TrimSpace(out.Dates) == "" {
		out.Dates = role.Dates
	}

	tailored := model.TailoredRole{
		Company: out.Company,
		Title:   out.Title,
		Dates:   out.Dates,
		Bullets: out.Bullets,
	}
	flagDivergentBullets(&tailored, role)
	return tailored
}

func (t *Tailorer) tailorRole(ctx context.Context, jd model.JobDescription, role model.ResumeRole, roleIndex, totalRoles int, responsibilities []string, lowMatch bool) (roleOutput, error) {
	prompt := promptTailorRole(jd, role, roleIndex, totalRoles, responsibilities, lowMatch)
	var out roleOutput
	if err := t.completeJSON(ctx, prompt, &out); err != nil {
		return roleOutput{}, err
	}
	return out, nil
}

func (t *Tailorer) tailorHeader(ctx context.Context, jd model.JobDescription, resume model.Resume) (headerOutput, error) {
	var out headerOutput
	if err := t.completeJSON(ctx, promptTailorHeader(jd, resume), &out); err != nil {
		return headerOutput{}, err
	}
	return out, nil
}

func (t *Tailorer) tailorSkills(ctx context.Context, jd model.JobDescription) (skillsOutput, error) {
	var out skillsOutput
	if err := t.completeJSON(ctx, promptTailorSkills(jd), &out); err != nil {
		return skillsOutput{}, err
	}
	return out, nil
}

// finalReview asks the model for a change log, open questions, and gaps.
// Review is advisory; a failure degrades to empty lists rather than
// discarding the tailored content.
func (t *Tailorer) finalReview(ctx context.Context, jd model.JobDescription, header headerOutput, skills skillsOutput, roles []model.TailoredRole) reviewOutput {
	var out reviewOutput
	if err := t.completeJSON(ctx, promptFinalReview(jd, header, skills, roles), &out); err != nil {
		telemetry.Warn("final review failed; continuing without review notes", map[string]any{"error": err.Error()})
		return reviewOutput{}
	}
	return out
}

// fallbackRole carries source bullets through unchanged, each flagged for
// revision with a note that automatic tailoring failed.
func fallbackRole(role model.ResumeRole) model.TailoredRole {
	bullets := make([]model.TailoredBullet, 0, len(role.Bullets))
	for _, src := range role.Bullets {
		bullets = append(bullets, model.TailoredBullet{
			Text:            src.Text,
			SourceBulletIDs: []string{src.ID},
			NeedsRevision:   true,
			RevisionNote:    "automatic tailoring failed; original bullet kept",
		})
	}
	return model.TailoredRole{
		Company: role.Company,
		Title:   role.Title,
		Dates:   role.Dates,
		Bullets: bullets,
	}
}

// responsibilityWindows precomputes which job responsibilities each role
// should cover: the most recent role takes the top five, the second takes
// the next four, remaining roles take three each. Precomputing the windows
// keeps role calls independent so they can run concurrently.
func responsibilityWindows(roleCount int, responsibilities []string) [][]string {
	windows := make([][]string, roleCount)
	cursor := 0
	take := func(n int) []string {
		if cursor >= len(responsibilities) {
			return nil
		}
		end := cursor + n
		if end > len(responsibilities) {
			end = len(responsibilities)
		}
		window := responsibilities[cursor:end]
		cursor = end
		return window
	}
	for i := 0; i < roleCount; i++ {
		switch i {
		case 0:
			windows[i] = take(5)
		case 1:
			windows[i] = take(4)
		default:
			windows[i] = take(3)
		}
	}
	return windows
}

// completeJSON mirrors the extraction stage's call-parse-validate loop.
func (t *Tailorer) completeJSON(ctx context.Context, prompt string, out validator) error {
	attempts := t.Retry.MaxAttempts
	if attempts <= 0 {
		attempts = retry.DefaultConfig().MaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		var raw string
		err := retry.Do(ctx, t.Retry, func(ctx context.Context) error {
			resp, err := t.LLM.Complete(ctx, prompt)
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
			continue
		}
		if err := out.Validate(); err != nil {
			lastErr = fmt.Errorf("schema mismatch: %w", err)
			continue
		}
		return nil
	}
	return lastErr
}

type validator interface {
	Validate() error
}
