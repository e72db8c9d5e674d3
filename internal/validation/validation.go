package validation

import (
	"strings"

	"github.com/spigell/resume-screener/internal/ai"
)

// Rule checks textual evidence for a single criterion.
type Rule interface {
	Name() string
	Criterion() ai.Criterion
	// Holds reports whether the lowercased text supports the criterion.
	Holds(lower string) bool
	Status() Status
}

// Status describes a rule for startup logging.
type Status struct {
	Name      string
	Criterion ai.Criterion
	Terms     map[string]int
}

// Demotion records a true verdict that the text did not support.
type Demotion struct {
	Criterion ai.Criterion
	Rule      string
}

// Terms holds extra vocabulary merged into the default term sets.
type Terms struct {
	ReactNative []string `mapstructure:"react-native"`
	Medical     []string `mapstructure:"medical"`
	Processing  []string `mapstructure:"processing"`
	Biomedical  []string `mapstructure:"biomedical"`
}

var (
	DefaultReactNativeTerms = []string{"react native", "react-native", "reactnative"}
	DefaultMedicalTerms     = []string{"eeg", "ekg", "electrocardiogram", "electroencephalogram", "biomedical signals"}
	DefaultProcessingTerms  = []string{"signal processing", "dsp", "filter design", "feature extraction"}
	DefaultBiomedicalTerms  = []string{"biomedical engineering", "medical device", "fda regulations", "clinical trial", "physiological monitoring"}
)

// Validator demotes model verdicts that lack keyword evidence.
type Validator struct {
	rules []Rule
}

// New builds a validator with the default rules, extended by extra terms.
func New(extra Terms) *Validator {
	return &Validator{rules: []Rule{
		newAnyTermRule("react_native_mention", ai.CriterionReactNative,
			mergeTerms(DefaultReactNativeTerms, extra.ReactNative)),
		newPairedTermsRule("medical_signal_processing", ai.CriterionSignalProcessing,
			mergeTerms(DefaultMedicalTerms, extra.Medical),
			mergeTerms(DefaultProcessingTerms, extra.Processing)),
		newAnyTermRule("biomedical_evidence", ai.CriterionBiomedical,
			mergeTerms(DefaultBiomedicalTerms, extra.Biomedical)),
	}}
}

// Validate returns j with every unsupported true verdict set to false, and the
// demotions made. False verdicts and the summary are left untouched.
func (v *Validator) Validate(text string, j ai.Judgment) (ai.Judgment, []Demotion) {
	lower := strings.ToLower(text)

	var demotions []Demotion
	for _, rule := range v.rules {
		c := rule.Criterion()
		if !j.Has(c) {
			continue
		}
		if rule.Holds(lower) {
			continue
		}
		j.Demote(c)
		demotions = append(demotions, Demotion{Criterion: c, Rule: rule.Name()})
	}

	return j, demotions
}

// Describe returns status entries for the configured rules.
func (v *Validator) Describe() []Status {
	statuses := make([]Status, 0, len(v.rules))
	for _, rule := range v.rules {
		statuses = append(statuses, rule.Status())
	}
	return statuses
}

func mergeTerms(defaults, extra []string) []string {
	seen := make(map[string]struct{}, len(defaults)+len(extra))
	merged := make([]string, 0, len(defaults)+len(extra))
	for _, term := range append(append([]string{}, defaults...), extra...) {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		merged = append(merged, term)
	}
	return merged
}

func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
