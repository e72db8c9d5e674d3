package validation

import (
	"testing"

	"github.com/spigell/resume-screener/internal/ai"
)

func TestValidateReactWithoutNative(t *testing.T) {
	v := New(Terms{})

	text := "Frontend engineer. Five years of React, Redux and TypeScript."
	in := ai.Judgment{ReactNative: true, Summary: "Strong React developer"}

	got, demotions := v.Validate(text, in)
	if got.ReactNative {
		t.Fatalf("expected react_native to be demoted")
	}
	if got.Summary != in.Summary {
		t.Fatalf("summary must pass through, got %q", got.Summary)
	}
	if len(demotions) != 1 || demotions[0].Criterion != ai.CriterionReactNative || demotions[0].Rule != "react_native_mention" {
		t.Fatalf("unexpected demotions: %+v", demotions)
	}
}

func TestValidateEEGFeatureExtraction(t *testing.T) {
	v := New(Terms{})

	text := "Research assistant: built EEG feature extraction pipelines in Python."
	in := ai.Judgment{SignalProcessing: true, Summary: "EEG research"}

	got, demotions := v.Validate(text, in)
	if !got.SignalProcessing {
		t.Fatalf("expected eeg_ekg_dsp to stay true")
	}
	if len(demotions) != 0 {
		t.Fatalf("expected no demotions, got %+v", demotions)
	}
}

func TestValidateRules(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		in   ai.Judgment
		want ai.Judgment
	}{
		{
			name: "hyphenated react native kept",
			text: "Shipped two React-Native apps",
			in:   ai.Judgment{ReactNative: true},
			want: ai.Judgment{ReactNative: true},
		},
		{
			name: "case insensitive",
			text: "REACT NATIVE, EKG, DSP, MEDICAL DEVICE",
			in:   ai.Judgment{ReactNative: true, SignalProcessing: true, Biomedical: true},
			want: ai.Judgment{ReactNative: true, SignalProcessing: true, Biomedical: true},
		},
		{
			name: "processing without medical term demoted",
			text: "Audio DSP and filter design for guitar pedals",
			in:   ai.Judgment{SignalProcessing: true},
			want: ai.Judgment{},
		},
		{
			name: "medical without processing term demoted",
			text: "Nurse with EKG monitoring experience",
			in:   ai.Judgment{SignalProcessing: true},
			want: ai.Judgment{},
		},
		{
			name: "eeg based feature extraction kept",
			text: "EEG-based feature extraction using digital signal processing filters for seizure detection",
			in:   ai.Judgment{SignalProcessing: true, Summary: "Seizure detection"},
			want: ai.Judgment{SignalProcessing: true, Summary: "Seizure detection"},
		},
		{
			name: "biomedical evidence kept",
			text: "Worked on a clinical trial for a wearable",
			in:   ai.Judgment{Biomedical: true},
			want: ai.Judgment{Biomedical: true},
		},
		{
			name: "biomedical without evidence demoted",
			text: "Backend developer at a hospital",
			in:   ai.Judgment{Biomedical: true},
			want: ai.Judgment{},
		},
		{
			name: "false verdicts never promoted",
			text: "React Native, EEG signal processing, biomedical engineering degree",
			in:   ai.Judgment{},
			want: ai.Judgment{},
		},
	}

	v := New(Terms{})
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, _ := v.Validate(tc.text, tc.in)
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestValidateIdempotentAndMonotone(t *testing.T) {
	v := New(Terms{})

	texts := []string{
		"",
		"React developer",
		"React Native and EEG signal processing",
		"Biomedical engineering graduate, dsp coursework",
		"ecg holter analysis, medical device firmware",
	}

	for _, text := range texts {
		for mask := 0; mask < 8; mask++ {
			in := ai.Judgment{
				ReactNative:      mask&1 != 0,
				SignalProcessing: mask&2 != 0,
				Biomedical:       mask&4 != 0,
				Summary:          "s",
			}

			once, _ := v.Validate(text, in)
			twice, demotions := v.Validate(text, once)
			if once != twice {
				t.Fatalf("not idempotent for %q: %+v then %+v", text, once, twice)
			}
			if len(demotions) != 0 {
				t.Fatalf("second pass demoted %+v for %q", demotions, text)
			}

			for _, c := range ai.Criteria {
				if once.Has(c) && !in.Has(c) {
					t.Fatalf("criterion %s promoted for %q", c, text)
				}
			}
			if once.Count() > in.Count() {
				t.Fatalf("count grew for %q", text)
			}
		}
	}
}

func TestValidateExtraTerms(t *testing.T) {
	v := New(Terms{
		Medical:    []string{" ECG ", "eeg"},
		Biomedical: []string{"Holter"},
	})

	text := "ECG arrhythmia detection with signal processing on Holter recordings"
	in := ai.Judgment{SignalProcessing: true, Biomedical: true}

	got, demotions := v.Validate(text, in)
	if !got.SignalProcessing || !got.Biomedical {
		t.Fatalf("expected extra terms to satisfy rules, got %+v (%+v)", got, demotions)
	}

	defaults := New(Terms{})
	got, _ = defaults.Validate(text, in)
	if got.SignalProcessing || got.Biomedical {
		t.Fatalf("expected default terms to demote, got %+v", got)
	}
}

func TestDescribe(t *testing.T) {
	statuses := New(Terms{Processing: []string{"wavelet", "DSP"}}).Describe()
	if len(statuses) != len(ai.Criteria) {
		t.Fatalf("expected %d rules, got %d", len(ai.Criteria), len(statuses))
	}

	paired := statuses[1]
	if paired.Criterion != ai.CriterionSignalProcessing {
		t.Fatalf("unexpected rule order: %+v", statuses)
	}
	if paired.Terms["processing"] != len(DefaultProcessingTerms)+1 {
		t.Fatalf("expected duplicates to be merged, got %+v", paired.Terms)
	}
}
