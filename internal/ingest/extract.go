package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractionError reports that document bytes could not be parsed as a PDF.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract pdf text: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ExtractText pulls plain text from each page of a PDF and joins pages with a
// blank line. Pages whose content streams cannot be decoded contribute an
// empty string rather than failing the whole document.
//
// The parser panics on some malformed inputs; that is converted into an
// ExtractionError so callers see a plain error either way.
func ExtractText(data []byte) (text string, numPages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, numPages = "", 0
			err = &ExtractionError{Err: fmt.Errorf("parser panic: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, &ExtractionError{Err: err}
	}

	numPages = reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, content)
	}

	return strings.Join(pages, "\n\n"), numPages, nil
}
