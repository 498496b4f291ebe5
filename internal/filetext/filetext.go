// Package filetext extracts plain text from local resume files.
// Libraries used: github.com/ledongthuc/pdf (PDF) and
// github.com/nguyenthenguyen/docx (DOCX).
package filetext

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FromFile reads a file and extracts its text based on the file extension.
// Plain-text formats are returned as-is.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err := fromPDF(data)
		if err != nil {
			return "", fmt.Errorf("extract pdf %s: %w", path, err)
		}
		return text, nil
	case ".docx":
		text, err := fromDOCX(data)
		if err != nil {
			return "", fmt.Errorf("extract docx %s: %w", path, err)
		}
		return text, nil
	case ".txt", ".md", "":
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

func fromPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := newPDFReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
