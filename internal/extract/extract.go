// Package extract recovers structured JSON from free-text LLM answers.
//
// Models wrap JSON in prose, markdown fences, or trailing commentary, so a
// single json.Unmarshal is not enough. Extraction runs an ordered list of
// pure strategies and returns the first candidate that is valid JSON.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseFailure is returned when no strategy recovers valid JSON.
// Raw carries the original answer for diagnostics.
type ParseFailure struct {
	Raw string
}

func (e *ParseFailure) Error() string {
	return "no valid JSON found in response"
}

// Strategy proposes a JSON candidate from a raw answer. It returns false
// when it has nothing to offer; validation of the candidate is the caller's
// job, so strategies stay trivially pure and testable.
type Strategy func(raw string) (string, bool)

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// Direct proposes the whole answer as-is.
func Direct(raw string) (string, bool) {
	return strings.TrimSpace(raw), true
}

// Fenced proposes the interior of the first triple-backtick code block,
// optionally tagged json.
func Fenced(raw string) (string, bool) {
	m := fenceRe.FindStringSubmatch(raw)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// Braced proposes the substring from the first '{' to the last '}'.
func Braced(raw string) (string, bool) {
	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first == -1 || last == -1 || first >= last {
		return "", false
	}
	return raw[first : last+1], true
}

// Repaired runs the jsonrepair library over the brace-delimited slice (or the
// whole answer when no braces are found). Lenient by nature, so it is not in
// DefaultStrategies; enable it via config when a workflow's model is known to
// emit broken JSON.
func Repaired(raw string) (string, bool) {
	candidate := raw
	if braced, ok := Braced(raw); ok {
		candidate = braced
	}
	fixed, err := jsonrepair.JSONRepair(candidate)
	if err != nil {
		return "", false
	}
	return fixed, true
}

// DefaultStrategies is the strict recovery chain: direct parse, fenced code
// block, brace-delimited slice. Order matters; each is tried only if the
// previous one fails to yield valid JSON.
func DefaultStrategies() []Strategy {
	return []Strategy{Direct, Fenced, Braced}
}

// Extract recovers a JSON value from raw using DefaultStrategies.
func Extract(raw string) (json.RawMessage, error) {
	return ExtractWith(raw, DefaultStrategies())
}

// ExtractWith recovers a JSON value from raw using the given ordered
// strategies. On failure it returns a *ParseFailure carrying raw; it never
// returns an empty default.
func ExtractWith(raw string, strategies []Strategy) (json.RawMessage, error) {
	for _, strategy := range strategies {
		candidate, ok := strategy(raw)
		if !ok {
			continue
		}
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}
	return nil, &ParseFailure{Raw: raw}
}

// Into extracts JSON from raw and unmarshals it into v. An unmarshal error
// on recovered JSON is reported as a *ParseFailure as well: from the
// caller's point of view the answer did not contain a usable value.
func Into(raw string, strategies []Strategy, v interface{}) error {
	data, err := ExtractWith(raw, strategies)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ParseFailure{Raw: raw}
	}
	return nil
}

// Strategies returns the chain for the given configuration: the default
// strict chain, plus the jsonrepair strategy when repair is enabled.
func Strategies(repair bool) []Strategy {
	s := DefaultStrategies()
	if repair {
		s = append(s, Repaired)
	}
	return s
}
