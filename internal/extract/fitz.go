package extract

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// OpenFitz opens a document with MuPDF. Page text uses MuPDF's default
// extraction flags: ligatures are expanded and spaces may be inserted between
// glyphs.
func OpenFitz(path string) (PageSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("fitz: %w", err)
	}
	return doc, nil
}
