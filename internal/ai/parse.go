package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
)

var (
	// ErrEmptyText is returned when there is nothing to classify.
	ErrEmptyText = errors.New("document text is empty")
	// ErrNoJSON is returned when no parse attempt finds a JSON object in the reply.
	ErrNoJSON = errors.New("no json object in model reply")

	fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	objectSpan = regexp.MustCompile(`(?s)\{.*\}`)
)

// parseResult is the outcome of one attempt: fields on success, reason otherwise.
type parseResult struct {
	fields map[string]any
	reason string
}

func (r parseResult) ok() bool { return r.reason == "" }

type parseAttempt struct {
	name string
	run  func(raw string) parseResult
}

var parseAttempts = []parseAttempt{
	{name: "whole reply", run: parseWhole},
	{name: "fenced block", run: parseFenced},
	{name: "brace span", run: parseSpan},
}

func parseWhole(raw string) parseResult {
	return decodeObject(raw)
}

func parseFenced(raw string) parseResult {
	m := fencedJSON.FindStringSubmatch(raw)
	if m == nil {
		return parseResult{reason: "no ```json block"}
	}
	return decodeObject(m[1])
}

func parseSpan(raw string) parseResult {
	span := objectSpan.FindString(raw)
	if span == "" {
		return parseResult{reason: "no braces"}
	}
	return decodeObject(span)
}

func decodeObject(s string) parseResult {
	var fields map[string]any
	if err := json.Unmarshal([]byte(s), &fields); err != nil {
		return parseResult{reason: err.Error()}
	}
	if fields == nil {
		return parseResult{reason: "not a json object"}
	}
	return parseResult{fields: fields}
}

// ParseReply runs the parse attempts in order and decodes the first success
// into a Judgment.
func ParseReply(raw string) (Judgment, error) {
	var reasons []error
	for _, attempt := range parseAttempts {
		res := attempt.run(raw)
		if res.ok() {
			return decodeJudgment(res.fields)
		}
		reasons = append(reasons, fmt.Errorf("%s: %s", attempt.name, res.reason))
	}
	return Judgment{}, errors.Join(append([]error{ErrNoJSON}, reasons...)...)
}

type rawJudgment struct {
	ReactNative      bool    `json:"react_native"`
	SignalProcessing bool    `json:"eeg_ekg_dsp"`
	Biomedical       bool    `json:"biomedical"`
	Summary          *string `json:"summary"`
}

func decodeJudgment(fields map[string]any) (Judgment, error) {
	var raw rawJudgment
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		DecodeHook: lenientHook,
		Result:     &raw,
	})
	if err != nil {
		return Judgment{}, fmt.Errorf("create judgment decoder: %w", err)
	}
	if err := decoder.Decode(fields); err != nil {
		return Judgment{}, fmt.Errorf("decode judgment: %w", err)
	}

	j := Judgment{
		ReactNative:      raw.ReactNative,
		SignalProcessing: raw.SignalProcessing,
		Biomedical:       raw.Biomedical,
		Summary:          DefaultSummary,
	}
	if raw.Summary != nil {
		j.Summary = *raw.Summary
	}
	return j, nil
}

func lenientHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Bool:
		return coerceBool(data), nil
	case reflect.String:
		return coerceString(data), nil
	default:
		return data, nil
	}
}

func coerceBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		lower := strings.ToLower(strings.TrimSpace(val))
		return lower == "true" || lower == "yes"
	case float64:
		return val != 0
	case int:
		return val != 0
	default:
		return false
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
