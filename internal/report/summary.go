package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

const summaryWidth = 40

// PrintSummary writes the final console block.
func PrintSummary(w io.Writer, r *RunReport, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", center(" Final Report ", summaryWidth, '='))
	fmt.Fprintf(&b, "Total candidates processed: %d\n", r.Total())
	for _, c := range Categories {
		fmt.Fprintf(&b, "%s: %d\n", c.Label(), r.Count(c))
	}
	fmt.Fprintf(&b, "Skipped documents: %d\n", r.Skipped)
	fmt.Fprintf(&b, "Failed documents: %d\n", r.Failed)
	fmt.Fprintf(&b, "\nReport generated: %s\n", path)

	_, err := io.WriteString(w, b.String())
	return err
}

// center pads s on both sides with fill up to width, putting the extra
// character on the right.
func center(s string, width int, fill rune) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	pad := width - n
	left := pad / 2
	return strings.Repeat(string(fill), left) + s + strings.Repeat(string(fill), pad-left)
}

// DumpToTmpFile writes the report as indented JSON to a temporary file.
func (r *RunReport) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
