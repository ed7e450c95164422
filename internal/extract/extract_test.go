package extract

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustUnmarshal(t *testing.T, data json.RawMessage) interface{} {
	t.Helper()
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("extracted payload is not valid JSON: %v", err)
	}
	return v
}

func TestExtract_DirectValidJSON(t *testing.T) {
	raw := `{"diagnosis":"price pushback","tags":["#price"],"scripts":[]}`

	data, err := Extract(raw)
	if err != nil {
		t.Fatalf("Expected no error for valid JSON, got: %v", err)
	}

	var direct interface{}
	if err := json.Unmarshal([]byte(raw), &direct); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(direct, mustUnmarshal(t, data)); diff != "" {
		t.Errorf("Extracted value differs from direct parse (-want +got):\n%s", diff)
	}
}

func TestExtract_DirectScalar(t *testing.T) {
	// Any valid JSON text must round-trip, not just objects.
	data, err := Extract("42")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if string(data) != "42" {
		t.Errorf("Expected 42, got %s", data)
	}
}

func TestExtract_FencedBlock(t *testing.T) {
	raw := "Here is your card:\n```json\n{\"a\": 1}\n```\nLet me know if you need more."

	data, err := Extract(raw)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	got := mustUnmarshal(t, data)
	want := map[string]interface{}{"a": float64(1)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Fence recovery mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_FencedBlockWithoutTag(t *testing.T) {
	raw := "```\n{\"b\": true}\n```"

	data, err := Extract(raw)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	got := mustUnmarshal(t, data)
	want := map[string]interface{}{"b": true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Untagged fence recovery mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_BraceSlice(t *testing.T) {
	raw := `Sure! Here is the result {"a":1} Thanks.`

	data, err := Extract(raw)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	got := mustUnmarshal(t, data)
	want := map[string]interface{}{"a": float64(1)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Brace recovery mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_NoJSONAtAll(t *testing.T) {
	_, err := Extract("no json here at all")
	if err == nil {
		t.Fatal("Expected a ParseFailure, got nil")
	}

	var pf *ParseFailure
	if !errors.As(err, &pf) {
		t.Fatalf("Expected *ParseFailure, got %T", err)
	}
	if pf.Raw != "no json here at all" {
		t.Errorf("Expected raw text to be attached, got %q", pf.Raw)
	}
}

func TestExtract_BrokenJSONEverywhere(t *testing.T) {
	// Fence and braces both present but none of the slices parse.
	raw := "```json\n{\"a\": 1,}\n```"
	_, err := Extract(raw)
	var pf *ParseFailure
	if !errors.As(err, &pf) {
		t.Fatalf("Expected *ParseFailure for broken JSON, got %v", err)
	}
}

func TestExtract_StrategyOrder(t *testing.T) {
	// A fenced block must win over the wider brace slice: the brace slice
	// here spans from the fence interior to the trailing commentary brace
	// and would not parse.
	raw := "```json\n{\"a\": 1}\n```\ntrailing {not json}"
	data, err := Extract(raw)
	if err != nil {
		t.Fatalf("Expected fenced block to win, got: %v", err)
	}
	got := mustUnmarshal(t, data)
	want := map[string]interface{}{"a": float64(1)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Strategy order mismatch (-want +got):\n%s", diff)
	}
}

func TestRepaired_DisabledByDefault(t *testing.T) {
	raw := `{"a": 1,}`
	if _, err := Extract(raw); err == nil {
		t.Fatal("Default chain must not repair trailing commas")
	}

	data, err := ExtractWith(raw, Strategies(true))
	if err != nil {
		t.Fatalf("Repair chain should recover trailing commas, got: %v", err)
	}
	got := mustUnmarshal(t, data)
	want := map[string]interface{}{"a": float64(1)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Repaired recovery mismatch (-want +got):\n%s", diff)
	}
}

func TestInto_TypedTarget(t *testing.T) {
	type card struct {
		Diagnosis string   `json:"diagnosis"`
		Tags      []string `json:"tags"`
	}

	var c card
	err := Into("```json\n{\"diagnosis\":\"d\",\"tags\":[\"#x\"]}\n```", DefaultStrategies(), &c)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if c.Diagnosis != "d" || len(c.Tags) != 1 {
		t.Errorf("Unexpected card: %+v", c)
	}
}

func TestInto_ShapeMismatchIsParseFailure(t *testing.T) {
	var target struct {
		Scripts []string `json:"scripts"`
	}
	err := Into(`{"scripts": "not-a-list"}`, DefaultStrategies(), &target)
	var pf *ParseFailure
	if !errors.As(err, &pf) {
		t.Fatalf("Expected *ParseFailure on shape mismatch, got %v", err)
	}
}
