package report

import (
	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/extract"
)

// CandidateRecord is the validated result for one screened document.
type CandidateRecord struct {
	Name       string        `json:"name"`
	SourcePath string        `json:"source_path"`
	Judgment   ai.Judgment   `json:"judgment"`
	Links      extract.Links `json:"links"`
}

// QualificationsCount is the number of satisfied criteria.
func (r CandidateRecord) QualificationsCount() int {
	return r.Judgment.Count()
}

// Category groups candidates for the final summary. A candidate may belong to
// several categories.
type Category string

const (
	CategoryReactNative      Category = "react_native"
	CategorySignalProcessing Category = "eeg_ekg_dsp"
	CategoryBiomedical       Category = "biomedical"
	CategoryTwoOfThree       Category = "two_of_three"
	CategoryAllThree         Category = "all_three"
)

// Categories lists all categories in summary order.
var Categories = []Category{
	CategoryReactNative,
	CategorySignalProcessing,
	CategoryBiomedical,
	CategoryTwoOfThree,
	CategoryAllThree,
}

// Label is the summary line label of the category.
func (c Category) Label() string {
	switch c {
	case CategoryReactNative:
		return "React Native developers"
	case CategorySignalProcessing:
		return "EEG/EKG/DSP experts"
	case CategoryBiomedical:
		return "Biomedical engineers"
	case CategoryTwoOfThree:
		return "Candidates with 2+ qualifications"
	case CategoryAllThree:
		return "Top candidates (all 3 qualifications)"
	default:
		return string(c)
	}
}

// In reports whether the record belongs to category c.
func (r CandidateRecord) In(c Category) bool {
	switch c {
	case CategoryReactNative:
		return r.Judgment.ReactNative
	case CategorySignalProcessing:
		return r.Judgment.SignalProcessing
	case CategoryBiomedical:
		return r.Judgment.Biomedical
	case CategoryTwoOfThree:
		return r.QualificationsCount() >= 2
	case CategoryAllThree:
		return r.QualificationsCount() == len(ai.Criteria)
	default:
		return false
	}
}
