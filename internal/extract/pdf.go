package extract

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

type pdfSource struct {
	file   *os.File
	reader *pdf.Reader
	pages  int
}

// OpenPDF opens a document with the pure Go PDF reader. The reader panics on
// malformed objects, so the page tree is resolved here and every panic is
// returned as an error.
func OpenPDF(path string) (PageSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}

	src := &pdfSource{file: file}
	err = guard(func() error {
		info, err := file.Stat()
		if err != nil {
			return err
		}

		reader, err := pdf.NewReader(file, info.Size())
		if err != nil {
			return err
		}

		src.reader = reader
		src.pages = reader.NumPage()
		return nil
	})
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("pdf: %w", err)
	}

	return src, nil
}

func (s *pdfSource) NumPage() int {
	return s.pages
}

func (s *pdfSource) Text(page int) (string, error) {
	var text string
	err := guard(func() error {
		p := s.reader.Page(page + 1)
		if p.V.IsNull() {
			return nil
		}

		var err error
		text, err = p.GetPlainText(nil)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("pdf page %d: %w", page+1, err)
	}
	return text, nil
}

func (s *pdfSource) Close() error {
	return s.file.Close()
}

// guard runs fn and converts a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed document: %v", r)
		}
	}()
	return fn()
}
