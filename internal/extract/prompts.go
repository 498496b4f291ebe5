package extract

import "fmt"

const jsonOnly = "Return ONLY valid JSON. No markdown, no commentary."

func promptExtractJD(jdText string) string {
	return fmt.Sprintf(`%s

Extract the job description into JSON. List responsibilities in ORDER OF IMPORTANCE (most important first). Tag each requirement as "must" or "nice".

JD TEXT:
%s

OUTPUT:
{
  "company": "",
  "role_title": "",
  "level": "",
  "location": "",
  "responsibilities": ["#1 most important", "#2 second most important"],
  "requirements": [{"requirement": "", "type": "must"}],
  "tools_platforms": [],
  "metrics_kpis": [],
  "keywords": ["important terms for ATS scanners"]
}`, jsonOnly, jdText)
}

func promptExtractResume(resumeText string) string {
	return fmt.Sprintf(`%s

Extract the resume into JSON. Preserve ALL metrics exactly. Keep company names exactly as written. Give every bullet a stable id derived from its company, e.g. "acme_1".

RESUME TEXT:
%s

OUTPUT:
{
  "name": "",
  "email": "",
  "location": "",
  "headline": "",
  "summary": [],
  "skills": [],
  "roles": [
    {
      "company": "",
      "title": "",
      "dates": "",
      "bullets": [{"id": "acme_1", "text": "", "has_metric": true}]
    }
  ],
  "education": ["Degree, Institution, Year"],
  "certifications": [],
  "awards": []
}

IMPORTANT: education entries must be strings, not objects.`, jsonOnly, resumeText)
}
