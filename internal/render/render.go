// Package render serializes a tailored resume: a canonical JSON artifact
// (always), a DOCX document, and a hosted Google Doc (both optional).
// Rendering never re-derives content; every target consumes the same
// validated TailoredResume.
package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"resume-agent/internal/model"
)

// Error reports a failed rendering target. JSON output already written is
// never invalidated by a rendering failure.
type Error struct {
	Target string // "json", "docx", "gdoc"
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("rendering failed for %s: %v", e.Target, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// JSON serializes the tailored resume with stable field order and
// two-space indentation. Byte-identical for identical input.
func JSON(t model.TailoredResume) ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, &Error{Target: "json", Err: err}
	}
	return append(data, '\n'), nil
}

// WriteJSON writes the canonical JSON artifact, creating parent
// directories as needed.
func WriteJSON(t model.TailoredResume, path string) error {
	data, err := JSON(t)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &Error{Target: "json", Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &Error{Target: "json", Err: err}
	}
	return nil
}

// ParseJSON decodes a previously written artifact.
func ParseJSON(data []byte) (model.TailoredResume, error) {
	var t model.TailoredResume
	if err := json.Unmarshal(data, &t); err != nil {
		return model.TailoredResume{}, &Error{Target: "json", Err: err}
	}
	return t, nil
}

// WriteDOCX renders the resume to a DOCX file at path.
func WriteDOCX(t model.TailoredResume, path string) error {
	data, err := DOCX(t)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &Error{Target: "docx", Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &Error{Target: "docx", Err: err}
	}
	return nil
}
