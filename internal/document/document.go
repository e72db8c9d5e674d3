package document

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions are the document types screened when none are configured.
var DefaultExtensions = []string{"pdf"}

type Documents struct {
	Items []*Document
}

// Document is a single résumé file. Name is the file name without extension
// and identifies the candidate for the duration of a run.
type Document struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// New builds a Document from a file path.
func New(path string) *Document {
	base := filepath.Base(path)
	return &Document{
		Path: path,
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
	}
}

// FileName returns the base name of the document including extension.
func (d *Document) FileName() string {
	return filepath.Base(d.Path)
}

// List returns the documents found directly in dir, in directory listing order.
// Regular files and symlinks to them whose extension matches one of extensions
// are kept; the comparison ignores case and a leading dot.
func List(dir string, extensions []string) (*Documents, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("documents directory is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read documents directory: %w", err)
	}

	allowed := normalizeExtensions(extensions)

	docs := &Documents{}
	for _, entry := range entries {
		if _, ok := allowed[NormalizeExt(filepath.Ext(entry.Name()))]; !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if !isDocument(path, entry.Type()) {
			continue
		}

		docs.Items = append(docs.Items, New(path))
	}

	return docs, nil
}

// isDocument keeps regular files and symlinks that do not resolve to a
// directory. A dangling link is kept so that opening it fails with a reason.
func isDocument(path string, mode fs.FileMode) bool {
	switch {
	case mode.IsRegular():
		return true
	case mode&fs.ModeSymlink != 0:
		info, err := os.Stat(path)
		if err != nil {
			return true
		}
		return info.Mode().IsRegular()
	default:
		return false
	}
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

func normalizeExtensions(extensions []string) map[string]struct{} {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		if ext = NormalizeExt(ext); ext != "" {
			set[ext] = struct{}{}
		}
	}
	return set
}

func (d *Documents) Len() int {
	return len(d.Items)
}

func (d *Documents) Names() []string {
	names := make([]string, 0, len(d.Items))
	for _, doc := range d.Items {
		names = append(names, doc.Name)
	}
	return names
}

func (d *Documents) Paths() []string {
	paths := make([]string, 0, len(d.Items))
	for _, doc := range d.Items {
		paths = append(paths, doc.Path)
	}
	return paths
}
