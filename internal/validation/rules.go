package validation

import "github.com/spigell/resume-screener/internal/ai"

type anyTermRule struct {
	name      string
	criterion ai.Criterion
	terms     []string
}

// newAnyTermRule holds when any of terms occurs in the text.
func newAnyTermRule(name string, criterion ai.Criterion, terms []string) Rule {
	return &anyTermRule{name: name, criterion: criterion, terms: terms}
}

func (r *anyTermRule) Name() string { return r.name }

func (r *anyTermRule) Criterion() ai.Criterion { return r.criterion }

func (r *anyTermRule) Holds(lower string) bool {
	return containsAny(lower, r.terms)
}

func (r *anyTermRule) Status() Status {
	return Status{
		Name:      r.name,
		Criterion: r.criterion,
		Terms:     map[string]int{"any": len(r.terms)},
	}
}

type pairedTermsRule struct {
	name       string
	criterion  ai.Criterion
	domain     []string
	processing []string
}

// newPairedTermsRule holds when at least one domain term and one processing
// term occur in the text.
func newPairedTermsRule(name string, criterion ai.Criterion, domain, processing []string) Rule {
	return &pairedTermsRule{name: name, criterion: criterion, domain: domain, processing: processing}
}

func (r *pairedTermsRule) Name() string { return r.name }

func (r *pairedTermsRule) Criterion() ai.Criterion { return r.criterion }

func (r *pairedTermsRule) Holds(lower string) bool {
	return containsAny(lower, r.domain) && containsAny(lower, r.processing)
}

func (r *pairedTermsRule) Status() Status {
	return Status{
		Name:      r.name,
		Criterion: r.criterion,
		Terms:     map[string]int{"domain": len(r.domain), "processing": len(r.processing)},
	}
}
