package tailor

import (
	"errors"
	"fmt"
	"strings"

	"resume-agent/internal/model"
)

// headerOutput is the model's response to the header prompt.
type headerOutput struct {
	Headline string   `json:"headline"`
	Summary  []string `json:"summary"`
}

func (h headerOutput) Validate() error {
	if strings.TrimSpace(h.Headline) == "" {
		return errors.New("headline is required")
	}
	if len(h.Summary) == 0 {
		return errors.New("summary is required")
	}
	return nil
}

// skillsOutput is the model's response to the skills prompt.
type skillsOutput struct {
	Skills          []string `json:"skills"`
	ATSKeywordsUsed []string `json:"ats_keywords_used"`
	CoverageNotes   string   `json:"coverage_notes"`
}

func (s skillsOutput) Validate() error {
	if len(s.Skills) == 0 {
		return errors.New("skills list is empty")
	}
	return nil
}

// roleOutput is the model's response to a role prompt.
type roleOutput struct {
	Company                 string                 `json:"company"`
	Title                   string                 `json:"title"`
	Dates                   string                 `json:"dates"`
	Bullets                 []model.TailoredBullet `json:"bullets"`
	ResponsibilitiesCovered []string               `json:"responsibilities_covered"`
}

func (r roleOutput) Validate() error {
	if len(r.Bullets) == 0 {
		return errors.New("role has no bullets")
	}
	for i, b := range r.Bullets {
		if strings.TrimSpace(b.Text) == "" {
			return fmt.Errorf("bullets[%d].text is empty", i)
		}
	}
	return nil
}

// reviewOutput is the model's response to the final review prompt.
type reviewOutput struct {
	ChangeLog        []string `json:"change_log"`
	QuestionsForUser []string `json:"questions_for_user"`
	GapsToConfirm    []string `json:"gaps_to_confirm"`
}

func (reviewOutput) Validate() error { return nil }
