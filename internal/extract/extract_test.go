package extract

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

type fakeDoc struct {
	pages   []string
	failAt  int
	closed  bool
	renders []int
}

func (f *fakeDoc) NumPage() int { return len(f.pages) }

func (f *fakeDoc) Text(page int) (string, error) {
	f.renders = append(f.renders, page)
	if f.failAt >= 0 && page == f.failAt {
		return "", errors.New("broken page")
	}
	return f.pages[page], nil
}

func (f *fakeDoc) Close() error {
	f.closed = true
	return nil
}

func newFakeDoc(pages ...string) *fakeDoc {
	return &fakeDoc{pages: pages, failAt: -1}
}

func openerFor(doc *fakeDoc) Opener {
	return func(string) (PageSource, error) { return doc, nil }
}

func TestExtractSkipsCoverLetter(t *testing.T) {
	for _, indicator := range CoverLetterIndicators {
		t.Run(indicator, func(t *testing.T) {
			doc := newFakeDoc(
				"Jane Doe\n"+strings.ToUpper(indicator)+" the role",
				"Experience: React Native",
				"Education: BSc",
			)

			res, err := New(openerFor(doc), Config{}).Extract("jane.pdf")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !res.CoverLetter || res.StartPage != 1 {
				t.Fatalf("expected cover letter detection, got %+v", res)
			}

			if strings.Contains(strings.ToLower(res.Text), indicator) {
				t.Fatalf("first page leaked into text: %q", res.Text)
			}

			if res.Text != "Experience: React Native\nEducation: BSc" {
				t.Fatalf("unexpected text: %q", res.Text)
			}

			if !doc.closed {
				t.Fatalf("expected document to be closed")
			}
		})
	}
}

func TestExtractKeepsFirstPageWithoutIndicator(t *testing.T) {
	doc := newFakeDoc("Jane Doe\nSummary", "Experience")

	res, err := New(openerFor(doc), Config{}).Extract("jane.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.CoverLetter || res.StartPage != 0 {
		t.Fatalf("did not expect cover letter detection: %+v", res)
	}

	if res.Text != "Jane Doe\nSummary\nExperience" {
		t.Fatalf("unexpected text: %q", res.Text)
	}

	if len(doc.renders) != 2 {
		t.Fatalf("expected each page rendered once, got %v", doc.renders)
	}
}

func TestExtractDecidesFromFirstPageOnly(t *testing.T) {
	doc := newFakeDoc("Résumé", "Dear hiring manager, see my cover letter")

	res, err := New(openerFor(doc), Config{}).Extract("x.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.StartPage != 0 || !strings.HasPrefix(res.Text, "Résumé\n") {
		t.Fatalf("later pages must not affect the start page: %+v", res)
	}
}

func TestExtractSinglePageCoverLetterIsEmpty(t *testing.T) {
	doc := newFakeDoc("To whom it may concern, ...")

	res, err := New(openerFor(doc), Config{}).Extract("x.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "" {
		t.Fatalf("expected empty text, got %q", res.Text)
	}
}

func TestExtractNoPages(t *testing.T) {
	res, err := New(openerFor(newFakeDoc()), Config{}).Extract("x.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "" || res.Pages != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestExtractTruncatesFromStart(t *testing.T) {
	page := strings.Repeat("signal processing ✅ ", 2000)

	for _, limit := range []int{1, 10, 500, DefaultMaxChars} {
		doc := newFakeDoc(page, page)
		res, err := New(openerFor(doc), Config{MaxChars: limit}).Extract("x.pdf")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if n := utf8.RuneCountInString(res.Text); n > limit {
			t.Fatalf("limit %d exceeded: %d", limit, n)
		}
		if !strings.HasPrefix(page, res.Text) && !strings.HasPrefix(page+"\n"+page, res.Text) {
			t.Fatalf("text must be a prefix of the document")
		}
	}
}

func TestExtractDefaultLimit(t *testing.T) {
	doc := newFakeDoc(strings.Repeat("a", DefaultMaxChars+100))

	res, err := New(openerFor(doc), Config{MaxChars: 0}).Extract("x.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Text) != DefaultMaxChars {
		t.Fatalf("expected default limit %d, got %d", DefaultMaxChars, len(res.Text))
	}
}

func TestExtractOpenFailure(t *testing.T) {
	open := func(string) (PageSource, error) { return nil, errors.New("not a pdf") }

	_, err := New(open, Config{}).Extract("broken.pdf")
	if err == nil || !strings.Contains(err.Error(), "open document") {
		t.Fatalf("expected open error, got %v", err)
	}
}

func TestExtractRenderFailure(t *testing.T) {
	doc := newFakeDoc("Résumé", "page two")
	doc.failAt = 1

	_, err := New(openerFor(doc), Config{}).Extract("x.pdf")
	if err == nil || !strings.Contains(err.Error(), "render page 2") {
		t.Fatalf("expected render error, got %v", err)
	}
	if !doc.closed {
		t.Fatalf("expected document to be closed on failure")
	}
}

func TestExtractFindsLinksBeforeTruncation(t *testing.T) {
	doc := newFakeDoc(strings.Repeat("x", 50), "see https://www.linkedin.com/in/jane-doe and github.com/janedoe/dsp-toolkit")

	res, err := New(openerFor(doc), Config{MaxChars: 20}).Extract("x.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Links.LinkedIn != "https://linkedin.com/in/jane-doe" {
		t.Fatalf("unexpected linkedin: %q", res.Links.LinkedIn)
	}
	if res.Links.GitHub != "https://github.com/janedoe" {
		t.Fatalf("unexpected github: %q", res.Links.GitHub)
	}
}

func TestOpenerFor(t *testing.T) {
	for _, name := range []string{"", "fitz", "PDF"} {
		if _, err := OpenerFor(name); err != nil {
			t.Fatalf("backend %q: unexpected error: %v", name, err)
		}
	}
	if _, err := OpenerFor("docx"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
