package tailor

import (
	"encoding/json"
	"fmt"
	"strings"

	"resume-agent/internal/model"
)

const jsonOnly = "Return ONLY valid JSON. No markdown, no commentary."

// Exact technical terms and tool names are kept verbatim so automated
// keyword scanners recognize them; narrative phrasing is paraphrased.
const terminologyPolicy = `TERMINOLOGY POLICY:
- Technical terms, tools, and platforms from the job description: use VERBATIM.
- Narrative phrasing and responsibilities: PARAPHRASE, never copy sentences from the job description.`

func promptTailorHeader(jd model.JobDescription, resume model.Resume) string {
	return fmt.Sprintf(`%s

Create a tailored headline and summary for this resume to match the job.

JOB:
- Company: %s
- Role: %s
- Key responsibilities: %s
- Tools/Platforms: %s
- Keywords: %s

ORIGINAL RESUME:
- Name: %s
- Current headline: %s
- Current summary: %s

INSTRUCTIONS:
1. HEADLINE: brief, impactful, aligned with the job's role title.
2. SUMMARY: 4-5 bullet strings. Open with an experience statement, then
   paraphrase the most important job responsibilities as the candidate's
   own experience, then close with tools and platforms.
%s

OUTPUT:
{"headline": "", "summary": ["", ""]}`,
		jsonOnly,
		jd.Company,
		jd.RoleTitle,
		mustJSON(jd.Responsibilities),
		mustJSON(jd.ToolsPlatforms),
		mustJSON(firstN(jd.Keywords, 15)),
		resume.Name,
		resume.Headline,
		mustJSON(resume.Summary),
		terminologyPolicy,
	)
}

func promptTailorSkills(jd model.JobDescription) string {
	return fmt.Sprintf(`%s

Produce the skills section for a resume targeting this job. Base it on the
job description only. Order skills by relevance to the posting.

JOB:
- Role: %s at %s
- Requirements: %s
- Tools/Platforms: %s
- Keywords: %s
%s

OUTPUT:
{"skills": ["", ""], "ats_keywords_used": [""], "coverage_notes": ""}`,
		jsonOnly,
		jd.RoleTitle,
		jd.Company,
		mustJSON(jd.Requirements),
		mustJSON(jd.ToolsPlatforms),
		mustJSON(jd.Keywords),
		terminologyPolicy,
	)
}

func promptTailorRole(jd model.JobDescription, role model.ResumeRole, roleIndex, totalRoles int, responsibilities []string, lowMatch bool) string {
	bulletCount, outcomes, focus := roleBudget(roleIndex)

	mode := ""
	if lowMatch {
		mode = `
LOW MATCH MODE: the job differs significantly from this resume. Keep the
work history factual, cover the listed job responsibilities, and flag every
bullet whose content is not grounded in the original bullets.`
	}

	return fmt.Sprintf(`%s

Rewrite the bullets for this role to match the job description.

=== FIXED (DO NOT CHANGE) ===
Company: %s
Title: %s
Dates: %s

=== JOB REQUIREMENTS ===
Role applying for: %s at %s (role %d of %d on the resume)
Responsibilities to cover in this role: %s
Keywords to include: %s

=== ORIGINAL BULLETS ===
%s

=== INSTRUCTIONS ===
- Write %s bullets total. %s
- About %d bullets should carry numerical outcomes; the rest stay qualitative.
- Preserve every factual token from the source bullets VERBATIM: company
  names, dates, and numeric metrics.
- You may restate phrasing, use job-description terminology, and combine
  related source bullets.
- List the ids of the source bullets each new bullet is derived from in
  source_bullet_ids.
- If a bullet contains anything not present in the source bullets, set
  needs_revision to true and explain the new element in revision_note.
%s%s

OUTPUT:
{
  "company": %q,
  "title": "",
  "dates": %q,
  "bullets": [{"text": "", "source_bullet_ids": [""], "needs_revision": false, "revision_note": ""}],
  "responsibilities_covered": [""]
}`,
		jsonOnly,
		role.Company,
		role.Title,
		role.Dates,
		jd.RoleTitle,
		jd.Company,
		roleIndex+1,
		totalRoles,
		mustJSON(responsibilities),
		mustJSON(firstN(jd.Keywords, 10)),
		sourceBulletsJSON(role.Bullets),
		bulletCount,
		focus,
		outcomes,
		terminologyPolicy,
		mode,
		role.Company,
		role.Dates,
	)
}

func promptFinalReview(jd model.JobDescription, header headerOutput, skills skillsOutput, roles []model.TailoredRole) string {
	preliminary := map[string]any{
		"headline": header.Headline,
		"summary":  header.Summary,
		"skills":   skills.Skills,
		"roles":    roles,
	}
	return fmt.Sprintf(`%s

Review this tailored resume against the job description. Report what was
changed, questions the candidate should answer, and requirement gaps that
need confirming before submission. Do not rewrite any content.

JOB:
%s

TAILORED RESUME:
%s

OUTPUT:
{"change_log": [""], "questions_for_user": [""], "gaps_to_confirm": [""]}`,
		jsonOnly,
		mustJSON(jd),
		mustJSON(preliminary),
	)
}

func roleBudget(roleIndex int) (bulletCount string, outcomes int, focus string) {
	switch roleIndex {
	case 0:
		return "6-7", 4, "This is the most recent role: cover the most important job responsibilities first."
	case 1:
		return "5-6", 3, "Cover the next most important job responsibilities not yet addressed."
	default:
		return "4-5", 3, "Cover remaining responsibilities and demonstrate depth of experience."
	}
}

func sourceBulletsJSON(bullets []model.SourceBullet) string {
	return mustJSON(bullets)
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return strings.TrimSpace(string(data))
}
