package extract

import (
	"fmt"
	"strings"
)

const (
	BackendFitz = "fitz"
	BackendPDF  = "pdf"
)

// OpenerFor returns the page source opener for the named backend.
// An empty name selects MuPDF.
func OpenerFor(backend string) (Opener, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFitz:
		return OpenFitz, nil
	case BackendPDF:
		return OpenPDF, nil
	default:
		return nil, fmt.Errorf("unsupported extract backend: %s", backend)
	}
}
