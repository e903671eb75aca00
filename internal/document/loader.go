package document

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	docx "github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat is returned when a file extension has no registered
// parser. The web tier rejects such uploads before a task is ever created,
// so hitting this in the worker means the gate was bypassed.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Format identifies a supported document type. Formats form a closed set:
// adding one means adding a constant, an extension mapping and a parser,
// and the compiler flags any switch that misses the new case.
type Format int

const (
	FormatPDF Format = iota
	FormatDOCX
	FormatTXT
)

// String returns the canonical extension of the format.
func (f Format) String() string {
	switch f {
	case FormatPDF:
		return ".pdf"
	case FormatDOCX:
		return ".docx"
	case FormatTXT:
		return ".txt"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// formatFromFilename resolves the tagged format from a file name.
func formatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt":
		return FormatTXT, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// AllowedFile reports whether the file name carries a supported extension.
// The web tier uses it to reject bad uploads before any persistence.
func AllowedFile(name string) bool {
	_, err := formatFromFilename(name)
	return err == nil
}

// parseFn extracts plain text from raw document bytes.
type parseFn func(data []byte) (string, error)

// Loader extracts plain text from stored documents, dispatching on the
// declared file extension.
type Loader struct {
	parsers map[Format]parseFn
}

// NewLoader creates a Loader with parsers for every supported format.
func NewLoader() *Loader {
	return &Loader{
		parsers: map[Format]parseFn{
			FormatPDF:  parsePDF,
			FormatDOCX: parseDOCX,
			FormatTXT:  parseTXT,
		},
	}
}

// Extract returns the document's text content as one string, page and
// section texts joined by single spaces. An empty document yields an empty
// string, not an error; downstream stages handle empty input themselves.
func (l *Loader) Extract(filename string, data []byte) (string, error) {
	format, err := formatFromFilename(filename)
	if err != nil {
		return "", err
	}

	parse, ok := l.parsers[format]
	if !ok {
		return "", fmt.Errorf("%w: no parser for %s", ErrUnsupportedFormat, format)
	}

	text, err := parse(data)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s document: %w", format, err)
	}

	return text, nil
}

// parsePDF extracts text from every page of a PDF.
func parsePDF(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var parts []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " "), nil
}

// parseDOCX extracts the paragraph text of a DOCX body.
func parseDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var parts []string
	for _, item := range doc.Document.Body.Items {
		switch p := item.(type) {
		case *docx.Paragraph:
			if text := strings.TrimSpace(p.String()); text != "" {
				parts = append(parts, text)
			}
		}
	}

	return strings.Join(parts, " "), nil
}

// parseTXT normalizes plain text: whitespace-joined, UTF-8 passed through.
func parseTXT(data []byte) (string, error) {
	return strings.Join(strings.Fields(string(data)), " "), nil
}
