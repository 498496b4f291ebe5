package model

import (
	"errors"
	"fmt"
	"strings"
)

// TailoredBullet is a rewritten bullet with provenance back to the source
// bullets it was derived from. Instances are never mutated after the
// tailoring stage; re-tailoring produces a replacement.
type TailoredBullet struct {
	Text            string   `json:"text"`
	SourceBulletIDs []string `json:"source_bullet_ids"`
	NeedsRevision   bool     `json:"needs_revision"`
	RevisionNote    string   `json:"revision_note,omitempty"`
}

// TailoredRole is a work history entry in the tailored output. Company,
// title and dates are carried verbatim from the source role.
type TailoredRole struct {
	Company string           `json:"company"`
	Title   string           `json:"title"`
	Dates   string           `json:"dates"`
	Bullets []TailoredBullet `json:"bullets"`
}

// TailoredResume is the aggregate pipeline result and the shape of the
// primary JSON artifact.
type TailoredResume struct {
	Headline         string         `json:"headline"`
	Summary          []string       `json:"summary"`
	Skills           []string       `json:"skills"`
	Roles            []TailoredRole `json:"roles"`
	ChangeLog        []string       `json:"change_log"`
	QuestionsForUser []string       `json:"questions_for_user"`
	GapsToConfirm    []string       `json:"gaps_to_confirm"`
}

// Validate enforces required fields on an assembled tailored resume.
func (t TailoredResume) Validate() error {
	if strings.TrimSpace(t.Headline) == "" {
		return errors.New("headline is required")
	}
	if len(t.Roles) == 0 {
		return errors.New("at least one role is required")
	}
	for i, role := range t.Roles {
		if strings.TrimSpace(role.Company) == "" {
			return fmt.Errorf("roles[%d].company is required", i)
		}
		for j, b := range role.Bullets {
			if strings.TrimSpace(b.Text) == "" {
				return fmt.Errorf("roles[%d].bullets[%d].text is empty", i, j)
			}
		}
	}
	return nil
}

// RevisionCount reports how many bullets carry the needs-revision flag.
func (t TailoredResume) RevisionCount() int {
	n := 0
	for _, role := range t.Roles {
		for _, b := range role.Bullets {
			if b.NeedsRevision {
				n++
			}
		}
	}
	return n
}
