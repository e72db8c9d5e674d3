package report

import (
	"fmt"
	"sort"
	"sync"
)

const (
	// SortListing keeps the directory listing order.
	SortListing = "listing"
	SortName    = "name"
	// SortRank orders by qualifications count, most qualified first.
	SortRank = "rank"
)

// Aggregator collects outcomes of a run. It is safe for concurrent use.
type Aggregator struct {
	mu      sync.Mutex
	records []CandidateRecord
	skipped int
	failed  int
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add appends the record of a Recorded outcome and counts the others.
func (a *Aggregator) Add(o Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch o.Kind {
	case OutcomeRecorded:
		if o.Record != nil {
			a.records = append(a.records, *o.Record)
		}
	case OutcomeSkipped:
		a.skipped++
	case OutcomeFailed:
		a.failed++
	}
}

// Report returns a snapshot of everything added so far.
func (a *Aggregator) Report() *RunReport {
	a.mu.Lock()
	defer a.mu.Unlock()

	records := make([]CandidateRecord, len(a.records))
	copy(records, a.records)

	return &RunReport{Records: records, Skipped: a.skipped, Failed: a.failed}
}

// RunReport holds the records of a finished run in insertion order.
type RunReport struct {
	Records []CandidateRecord `json:"records"`
	Skipped int               `json:"skipped"`
	Failed  int               `json:"failed"`
}

// Total is the number of recorded candidates.
func (r *RunReport) Total() int {
	return len(r.Records)
}

// Count returns the number of records in category c.
func (r *RunReport) Count(c Category) int {
	n := 0
	for _, rec := range r.Records {
		if rec.In(c) {
			n++
		}
	}
	return n
}

// Members returns the names of records in category c.
func (r *RunReport) Members(c Category) []string {
	var names []string
	for _, rec := range r.Records {
		if rec.In(c) {
			names = append(names, rec.Name)
		}
	}
	return names
}

// SortByName orders records by candidate name, then by source path.
func (r *RunReport) SortByName() {
	sort.SliceStable(r.Records, func(i, j int) bool {
		if r.Records[i].Name != r.Records[j].Name {
			return r.Records[i].Name < r.Records[j].Name
		}
		return r.Records[i].SourcePath < r.Records[j].SourcePath
	})
}

// Rank orders records by qualifications count descending, then by name and
// source path.
func (r *RunReport) Rank() {
	sort.SliceStable(r.Records, func(i, j int) bool {
		ci, cj := r.Records[i].QualificationsCount(), r.Records[j].QualificationsCount()
		if ci != cj {
			return ci > cj
		}
		if r.Records[i].Name != r.Records[j].Name {
			return r.Records[i].Name < r.Records[j].Name
		}
		return r.Records[i].SourcePath < r.Records[j].SourcePath
	})
}

// RestoreOrder orders records by the position of their source path in paths.
// Records whose path is not listed go last.
func (r *RunReport) RestoreOrder(paths []string) {
	position := make(map[string]int, len(paths))
	for i, path := range paths {
		if _, ok := position[path]; !ok {
			position[path] = i
		}
	}

	index := func(path string) int {
		if i, ok := position[path]; ok {
			return i
		}
		return len(paths)
	}

	sort.SliceStable(r.Records, func(i, j int) bool {
		return index(r.Records[i].SourcePath) < index(r.Records[j].SourcePath)
	})
}

// ValidateSort rejects unknown sort modes. An empty mode means listing order.
func ValidateSort(mode string) error {
	switch mode {
	case "", SortListing, SortName, SortRank:
		return nil
	default:
		return fmt.Errorf("unknown report sort %q (supported: %s, %s, %s)", mode, SortListing, SortName, SortRank)
	}
}

// Order applies a sort mode. Records are expected in listing order.
func (r *RunReport) Order(mode string) error {
	if err := ValidateSort(mode); err != nil {
		return err
	}

	switch mode {
	case SortName:
		r.SortByName()
	case SortRank:
		r.Rank()
	}
	return nil
}
