package filetext

import (
	"bytes"
	"errors"
	"io"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

func newPDFReader(r io.ReaderAt, size int64) (*pdf.Reader, error) {
	return pdf.NewReader(r, size)
}

func fromDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	reader := bytes.NewReader(data)
	doc, err := docx.ReadDocxFromMemory(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()
	return stripDocxXML(doc.Editable().GetContent()), nil
}
