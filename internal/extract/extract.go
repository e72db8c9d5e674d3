package extract

import (
	"fmt"
	"strings"

	"github.com/spigell/resume-screener/internal/utils"
)

const (
	// DefaultMaxChars bounds the extracted text handed to the classifier.
	DefaultMaxChars = 15000

	pageSeparator = "\n"
)

// CoverLetterIndicators mark a first page as a cover letter rather than résumé content.
var CoverLetterIndicators = []string{
	"cover letter",
	"dear hiring",
	"application for",
	"position applying",
	"to whom it may concern",
}

// PageSource exposes the rendered text of a document page by page.
// Pages are zero-indexed.
type PageSource interface {
	NumPage() int
	Text(page int) (string, error)
	Close() error
}

// Opener opens a document for page-wise text access.
type Opener func(path string) (PageSource, error)

type Config struct {
	MaxChars int
}

// Result is the bounded plain text of one document.
type Result struct {
	Text        string
	Pages       int
	StartPage   int
	CoverLetter bool
	Links       Links
}

type Extractor struct {
	open     Opener
	maxChars int
}

func New(open Opener, cfg Config) *Extractor {
	maxChars := cfg.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	return &Extractor{open: open, maxChars: maxChars}
}

// Extract renders the document at path. When the first page reads like a cover
// letter, extraction starts at the second page. The joined text is truncated
// to the configured maximum, counted from the start.
func (e *Extractor) Extract(path string) (*Result, error) {
	if e == nil || e.open == nil {
		return nil, fmt.Errorf("extractor is not initialized")
	}

	doc, err := e.open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	result := &Result{Pages: pages}
	if pages == 0 {
		return result, nil
	}

	first, err := doc.Text(0)
	if err != nil {
		return nil, fmt.Errorf("render page 1: %w", err)
	}

	if IsCoverLetter(first) {
		result.CoverLetter = true
		result.StartPage = 1
	}

	texts := make([]string, 0, pages-result.StartPage)
	for n := result.StartPage; n < pages; n++ {
		text := first
		if n > 0 {
			text, err = doc.Text(n)
			if err != nil {
				return nil, fmt.Errorf("render page %d: %w", n+1, err)
			}
		}
		texts = append(texts, text)
	}

	full := strings.Join(texts, pageSeparator)
	result.Links = FindLinks(full)
	result.Text = utils.TruncateRunes(full, e.maxChars)

	return result, nil
}

// IsCoverLetter reports whether the page text contains any cover letter indicator.
func IsCoverLetter(pageText string) bool {
	lower := strings.ToLower(pageText)
	for _, indicator := range CoverLetterIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
