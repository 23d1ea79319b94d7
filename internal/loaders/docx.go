package loaders

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/policyq/policyq-cli/internal/core/domain"
)

// DOCX extracts text from Word documents, the format most insurers
// issue policy schedules in.
type DOCX struct{}

// NewDOCX creates a DOCX loader.
func NewDOCX() *DOCX {
	return &DOCX{}
}

// Extensions returns the file extensions this loader handles.
func (l *DOCX) Extensions() []string {
	return []string{".docx"}
}

// Extract opens the file as a ZIP archive and pulls the paragraph text
// out of word/document.xml.
func (l *DOCX) Extract(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", domain.ErrInvalidInput)
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", domain.ErrInvalidInput)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read document.xml: %w", domain.ErrInvalidInput)
		}

		return parseDocumentXML(content), nil
	}

	return "", nil
}

// documentXML mirrors the subset of word/document.xml we read.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML joins paragraph runs with newlines between
// paragraphs. Unparseable XML yields empty text, not an error.
func parseDocumentXML(content []byte) string {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return ""
	}

	var result strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			result.WriteString("\n")
		}
		for _, r := range para.Runs {
			for _, t := range r.Text {
				result.WriteString(t.Content)
			}
		}
	}

	return strings.TrimSpace(result.String())
}
