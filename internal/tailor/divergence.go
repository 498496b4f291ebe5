package tailor

import (
	"fmt"
	"strings"

	"resume-agent/internal/model"
	"resume-agent/internal/textscan"
)

// flagDivergentBullets marks bullets whose numeric tokens or proper-noun
// terms cannot be traced to the source role. A bullet compared against its
// declared source bullets when it names them, and against the whole role
// otherwise.
func flagDivergentBullets(tailored *model.TailoredRole, source model.ResumeRole) {
	byID := make(map[string]string, len(source.Bullets))
	allTexts := make([]string, 0, len(source.Bullets)+3)
	allTexts = append(allTexts, source.Company, source.Title, source.Dates)
	for _, b := range source.Bullets {
		byID[b.ID] = b.Text
		allTexts = append(allTexts, b.Text)
	}

	for i := range tailored.Bullets {
		bullet := &tailored.Bullets[i]

		sources := allTexts
		if len(bullet.SourceBulletIDs) > 0 {
			declared := make([]string, 0, len(bullet.SourceBulletIDs)+3)
			declared = append(declared, source.Company, source.Title, source.Dates)
			known := true
			for _, id := range bullet.SourceBulletIDs {
				text, ok := byID[id]
				if !ok {
					known = false
					break
				}
				declared = append(declared, text)
			}
			// Unknown IDs fall through to the whole role; validation
			// catches bad provenance later.
			if known {
				sources = declared
			}
		}

		missing := textscan.MissingTerms(bullet.Text, sources)
		if len(missing) == 0 || bullet.NeedsRevision {
			continue
		}
		bullet.NeedsRevision = true
		bullet.RevisionNote = divergenceNote(missing)
	}
}

func divergenceNote(missing []string) string {
	const maxListed = 4
	listed := missing
	if len(listed) > maxListed {
		listed = listed[:maxListed]
	}
	return fmt.Sprintf("introduces %s not found in source bullets; verify before use", strings.Join(listed, ", "))
}
