// Package validate asserts the tailoring stage's provenance invariant:
// every fact in the output is traceable to source material or the bullet
// carrying it is flagged for revision.
package validate

import (
	"fmt"
	"strings"

	"resume-agent/internal/model"
	"resume-agent/internal/textscan"
)

// FabricationError reports an unflagged bullet with untraceable content.
// Data integrity wins over output completeness: this aborts the run.
type FabricationError struct {
	Role   string
	Bullet string
	Terms  []string
	Reason string
}

func (e *FabricationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("fabrication check failed in role %q: %s", e.Role, e.Reason)
	}
	return fmt.Sprintf("fabrication check failed in role %q: bullet %q introduces %s with no traceable origin and no revision flag",
		e.Role, truncate(e.Bullet, 60), strings.Join(e.Terms, ", "))
}

// TailoredResume checks the tailored output against the original resume.
//
// Two invariants are enforced:
//  1. Every declared source bullet id references a bullet that exists in
//     the selected resume.
//  2. Every bullet whose numeric tokens or proper terms are absent from
//     all source material carries the needs-revision flag.
func TailoredResume(tailored model.TailoredResume, source model.Resume) error {
	validIDs := source.BulletIDSet()
	validCompanies := make(map[string]struct{}, len(source.Roles))
	for _, role := range source.Roles {
		validCompanies[role.Company] = struct{}{}
	}
	sourceText := source.FullText()

	for _, role := range tailored.Roles {
		if _, ok := validCompanies[role.Company]; !ok {
			return &FabricationError{
				Role:   role.Company,
				Reason: fmt.Sprintf("company %q does not exist in the source resume", role.Company),
			}
		}

		for _, bullet := range role.Bullets {
			for _, id := range bullet.SourceBulletIDs {
				if _, ok := validIDs[id]; !ok {
					return &FabricationError{
						Role:   role.Company,
						Bullet: bullet.Text,
						Reason: fmt.Sprintf("source bullet id %q does not exist in the source resume", id),
					}
				}
			}

			if bullet.NeedsRevision {
				continue
			}
			missing := textscan.MissingTerms(bullet.Text, []string{sourceText})
			if len(missing) > 0 {
				return &FabricationError{
					Role:   role.Company,
					Bullet: bullet.Text,
					Terms:  missing,
				}
			}
		}
	}
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
