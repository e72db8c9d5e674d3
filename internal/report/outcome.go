package report

import "github.com/spigell/resume-screener/internal/document"

// OutcomeKind tells how processing of one document ended.
type OutcomeKind int

const (
	OutcomeRecorded OutcomeKind = iota
	OutcomeSkipped
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeRecorded:
		return "recorded"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of processing one document. Only Recorded outcomes
// carry a record.
type Outcome struct {
	Document *document.Document
	Kind     OutcomeKind
	Record   *CandidateRecord
	Reason   string
	Err      error
}

func Recorded(doc *document.Document, rec *CandidateRecord) Outcome {
	return Outcome{Document: doc, Kind: OutcomeRecorded, Record: rec}
}

func Skipped(doc *document.Document, reason string) Outcome {
	return Outcome{Document: doc, Kind: OutcomeSkipped, Reason: reason}
}

func Failed(doc *document.Document, err error) Outcome {
	return Outcome{Document: doc, Kind: OutcomeFailed, Err: err}
}
