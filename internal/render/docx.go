package render

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"

	"resume-agent/internal/model"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// DOCX renders the resume as a minimal single-part WordprocessingML
// document.
func DOCX(t model.TailoredResume) ([]byte, error) {
	if strings.TrimSpace(t.Headline) == "" {
		return nil, &Error{Target: "docx", Err: errors.New("headline is required")}
	}

	var output bytes.Buffer
	writer := zip.NewWriter(&output)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", documentXML(t)},
	}
	for _, part := range parts {
		f, err := writer.Create(part.name)
		if err != nil {
			return nil, &Error{Target: "docx", Err: err}
		}
		if _, err := f.Write([]byte(part.content)); err != nil {
			return nil, &Error{Target: "docx", Err: err}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, &Error{Target: "docx", Err: err}
	}
	return output.Bytes(), nil
}

func documentXML(t model.TailoredResume) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	writeHeading(&b, t.Headline)

	if len(t.Summary) > 0 {
		writeHeading(&b, "Summary")
		for _, line := range t.Summary {
			writeBullet(&b, line)
		}
	}

	if len(t.Skills) > 0 {
		writeHeading(&b, "Skills")
		writeParagraph(&b, strings.Join(t.Skills, " · "), false)
	}

	if len(t.Roles) > 0 {
		writeHeading(&b, "Experience")
		for _, role := range t.Roles {
			title := role.Company
			if role.Title != "" {
				title += " — " + role.Title
			}
			if role.Dates != "" {
				title += " (" + role.Dates + ")"
			}
			writeParagraph(&b, title, true)
			for _, bullet := range role.Bullets {
				text := bullet.Text
				if bullet.NeedsRevision {
					text += " [NEEDS REVIEW]"
				}
				writeBullet(&b, text)
			}
		}
	}

	if len(t.GapsToConfirm) > 0 {
		writeHeading(&b, "Gaps To Confirm")
		for _, gap := range t.GapsToConfirm {
			writeBullet(&b, gap)
		}
	}

	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func writeHeading(b *strings.Builder, text string) {
	b.WriteString(`<w:p><w:r><w:rPr><w:b/><w:sz w:val="28"/></w:rPr><w:t xml:space="preserve">`)
	b.WriteString(xmlEscape(text))
	b.WriteString(`</w:t></w:r></w:p>`)
}

func writeParagraph(b *strings.Builder, text string, bold bool) {
	b.WriteString(`<w:p><w:r>`)
	if bold {
		b.WriteString(`<w:rPr><w:b/></w:rPr>`)
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	b.WriteString(xmlEscape(text))
	b.WriteString(`</w:t></w:r></w:p>`)
}

func writeBullet(b *strings.Builder, text string) {
	writeParagraph(b, "• "+text, false)
}

func xmlEscape(text string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(text)
}
