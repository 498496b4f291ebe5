package model

import (
	"errors"
	"fmt"
	"strings"
)

// Requirement importance tags used in JobRequirement.Type.
const (
	RequirementMust = "must"
	RequirementNice = "nice"
)

// JobRequirement is a single requirement phrase extracted from a job
// description, tagged by importance.
type JobRequirement struct {
	Requirement string `json:"requirement"`
	Type        string `json:"type"`
}

// JobDescription is the structured form of a job posting.
type JobDescription struct {
	Company          string           `json:"company"`
	RoleTitle        string           `json:"role_title"`
	Level            string           `json:"level,omitempty"`
	Location         string           `json:"location,omitempty"`
	Responsibilities []string         `json:"responsibilities"`
	Requirements     []JobRequirement `json:"requirements"`
	ToolsPlatforms   []string         `json:"tools_platforms"`
	MetricsKPIs      []string         `json:"metrics_kpis"`
	Keywords         []string         `json:"keywords"`
}

// Validate enforces the minimum shape a usable job description must have.
func (d JobDescription) Validate() error {
	if strings.TrimSpace(d.RoleTitle) == "" && strings.TrimSpace(d.Company) == "" {
		return errors.New("role_title or company is required")
	}
	if len(d.Responsibilities) == 0 && len(d.Requirements) == 0 {
		return errors.New("at least one responsibility or requirement is required")
	}
	for i, req := range d.Requirements {
		if strings.TrimSpace(req.Requirement) == "" {
			return fmt.Errorf("requirements[%d].requirement is empty", i)
		}
		switch req.Type {
		case RequirementMust, RequirementNice, "":
		default:
			return fmt.Errorf("requirements[%d].type must be %q or %q", i, RequirementMust, RequirementNice)
		}
	}
	return nil
}

// SourceBullet is one line of original resume content with a stable identifier.
type SourceBullet struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	HasMetric bool   `json:"has_metric,omitempty"`
}

// ResumeRole is a work history entry in the source resume.
type ResumeRole struct {
	Company  string         `json:"company"`
	Title    string         `json:"title"`
	Dates    string         `json:"dates"`
	Location string         `json:"location,omitempty"`
	Bullets  []SourceBullet `json:"bullets"`
}

// Resume is the structured form of a source resume.
type Resume struct {
	Name           string       `json:"name"`
	Email          string       `json:"email,omitempty"`
	Location       string       `json:"location,omitempty"`
	Headline       string       `json:"headline,omitempty"`
	Summary        []string     `json:"summary"`
	Skills         []string     `json:"skills"`
	Roles          []ResumeRole `json:"roles"`
	Education      []string     `json:"education"`
	Certifications []string     `json:"certifications"`
	Awards         []string     `json:"awards"`
}

// Validate enforces required fields on an extracted resume.
func (r Resume) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if len(r.Roles) == 0 {
		return errors.New("at least one role is required")
	}
	for i, role := range r.Roles {
		if strings.TrimSpace(role.Company) == "" {
			return fmt.Errorf("roles[%d].company is required", i)
		}
		if len(role.Bullets) == 0 {
			return fmt.Errorf("roles[%d] has no bullets", i)
		}
	}
	return nil
}

// EnsureBulletIDs backfills missing bullet identifiers and deduplicates
// collisions so every source bullet is addressable by a stable ID.
func (r *Resume) EnsureBulletIDs() {
	seen := make(map[string]struct{})
	for ri := range r.Roles {
		role := &r.Roles[ri]
		slug := companySlug(role.Company)
		for bi := range role.Bullets {
			id := strings.TrimSpace(role.Bullets[bi].ID)
			if id == "" {
				id = fmt.Sprintf("%s_%d", slug, bi+1)
			}
			base := id
			for n := 2; ; n++ {
				if _, dup := seen[id]; !dup {
					break
				}
				id = fmt.Sprintf("%s_%d", base, n)
			}
			seen[id] = struct{}{}
			role.Bullets[bi].ID = id
		}
	}
}

// BulletIDSet returns the set of all source bullet identifiers.
func (r Resume) BulletIDSet() map[string]struct{} {
	ids := make(map[string]struct{})
	for _, role := range r.Roles {
		for _, b := range role.Bullets {
			ids[b.ID] = struct{}{}
		}
	}
	return ids
}

// FullText joins every text-bearing field of the resume into a single blob.
// Validation uses it as the universe of traceable source material.
func (r Resume) FullText() string {
	var b strings.Builder
	write := func(s string) {
		if strings.TrimSpace(s) == "" {
			return
		}
		b.WriteString(s)
		b.WriteString("\n")
	}
	write(r.Name)
	write(r.Headline)
	for _, s := range r.Summary {
		write(s)
	}
	for _, s := range r.Skills {
		write(s)
	}
	for _, role := range r.Roles {
		write(role.Company)
		write(role.Title)
		write(role.Dates)
		for _, bullet := range role.Bullets {
			write(bullet.Text)
		}
	}
	for _, s := range r.Education {
		write(s)
	}
	for _, s := range r.Certifications {
		write(s)
	}
	for _, s := range r.Awards {
		write(s)
	}
	return b.String()
}

func companySlug(company string) string {
	slug := strings.ToLower(strings.TrimSpace(company))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, slug)
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "role"
	}
	return slug
}
