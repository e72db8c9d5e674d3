package ai

// Criterion identifies one of the screened qualifications. Its value is the
// key the model is asked to return.
type Criterion string

const (
	CriterionReactNative      Criterion = "react_native"
	CriterionSignalProcessing Criterion = "eeg_ekg_dsp"
	CriterionBiomedical       Criterion = "biomedical"
)

// Criteria lists all criteria in report column order.
var Criteria = []Criterion{
	CriterionReactNative,
	CriterionSignalProcessing,
	CriterionBiomedical,
}

// DefaultSummary is used when the model omits the summary.
const DefaultSummary = "No summary generated"

// Title is the human readable column name of the criterion.
func (c Criterion) Title() string {
	switch c {
	case CriterionReactNative:
		return "React Native"
	case CriterionSignalProcessing:
		return "EEG/EKG/DSP"
	case CriterionBiomedical:
		return "Biomedical"
	default:
		return string(c)
	}
}

// Judgment is the structured verdict for one document.
type Judgment struct {
	ReactNative      bool   `json:"react_native"`
	SignalProcessing bool   `json:"eeg_ekg_dsp"`
	Biomedical       bool   `json:"biomedical"`
	Summary          string `json:"summary"`
}

// Has reports the verdict for criterion c.
func (j Judgment) Has(c Criterion) bool {
	switch c {
	case CriterionReactNative:
		return j.ReactNative
	case CriterionSignalProcessing:
		return j.SignalProcessing
	case CriterionBiomedical:
		return j.Biomedical
	default:
		return false
	}
}

// Demote clears the verdict for criterion c.
func (j *Judgment) Demote(c Criterion) {
	switch c {
	case CriterionReactNative:
		j.ReactNative = false
	case CriterionSignalProcessing:
		j.SignalProcessing = false
	case CriterionBiomedical:
		j.Biomedical = false
	}
}

// Count is the number of satisfied criteria, 0 to 3.
func (j Judgment) Count() int {
	n := 0
	for _, c := range Criteria {
		if j.Has(c) {
			n++
		}
	}
	return n
}
