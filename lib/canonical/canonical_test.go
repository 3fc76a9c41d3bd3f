// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

package canonical

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestMapKeys_KnownFields(t *testing.T) {
	input := map[string]any{
		"model":        "gpt-4o-mini",
		"systemPrompt": "Be concise.",
		"temperature":  0.7,
	}

	mapped, ok := MapKeys(input).(map[string]any)
	if !ok {
		t.Fatalf("MapKeys() returned %T, want map[string]any", MapKeys(input))
	}

	if mapped["m"] != "gpt-4o-mini" {
		t.Errorf("mapped[m] = %v, want gpt-4o-mini", mapped["m"])
	}
	if mapped["s"] != "Be concise." {
		t.Errorf("mapped[s] = %v, want Be concise.", mapped["s"])
	}
	if mapped["t"] != 0.7 {
		t.Errorf("mapped[t] = %v, want 0.7", mapped["t"])
	}
	if _, present := mapped["model"]; present {
		t.Error("mapped retains long key 'model'")
	}
}

func TestMapKeys_UnknownKeysPassThrough(t *testing.T) {
	input := map[string]any{
		"someFutureField": "value",
		"model":           "gpt-4o",
	}

	mapped := MapKeys(input).(map[string]any)
	if mapped["someFutureField"] != "value" {
		t.Errorf("unknown key did not pass through: %v", mapped)
	}
	if mapped["m"] != "gpt-4o" {
		t.Errorf("known key not shortened alongside unknown key: %v", mapped)
	}
}

func TestMapKeys_Recursion(t *testing.T) {
	input := map[string]any{
		"messages": []any{
			map[string]any{"role": "user", "content": "hi"},
			map[string]any{"role": "assistant", "content": "hello"},
		},
		"functions": []any{
			map[string]any{
				"name":        "search",
				"description": "web search",
				"enabled":     true,
				"parameters":  map[string]any{"type": "object"},
			},
		},
	}

	mapped := MapKeys(input).(map[string]any)
	messages, ok := mapped["h"].([]any)
	if !ok {
		t.Fatalf("messages not shortened to h: %v", mapped)
	}
	first := messages[0].(map[string]any)
	if first["r"] != "user" || first["c"] != "hi" {
		t.Errorf("nested message keys not shortened: %v", first)
	}

	functions := mapped["f"].([]any)
	function := functions[0].(map[string]any)
	if function["n"] != "search" || function["e"] != true {
		t.Errorf("function keys not shortened: %v", function)
	}
	// "type" is not in the dictionary and must survive inside parameters.
	parameters := function["a"].(map[string]any)
	if parameters["type"] != "object" {
		t.Errorf("unknown nested key lost: %v", parameters)
	}
}

func TestMapKeys_Primitives(t *testing.T) {
	for _, value := range []any{nil, true, false, 3.14, "text"} {
		if got := MapKeys(value); !reflect.DeepEqual(got, value) {
			t.Errorf("MapKeys(%v) = %v, want unchanged", value, got)
		}
		if got := UnmapKeys(value); !reflect.DeepEqual(got, value) {
			t.Errorf("UnmapKeys(%v) = %v, want unchanged", value, got)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	// A configuration exercising every registered field name plus
	// unknown keys, nested containers, and all primitive shapes.
	raw := `{
		"apiKey": "sk-test",
		"apiBaseURL": "https://api.example.com/v1",
		"organization": "org-1",
		"model": "gpt-4o-mini",
		"temperature": 0.2,
		"topP": 1,
		"maxTokens": 2048,
		"frequencyPenalty": 0,
		"presencePenalty": 0.5,
		"stream": true,
		"stop": ["\n\n"],
		"systemPrompt": "Be concise.",
		"messages": [
			{"role": "user", "content": "hi", "createdAt": "2026-01-01"}
		],
		"functions": [
			{"name": "search", "description": "d", "enabled": false,
			 "parameters": {"type": "object", "properties": {}}}
		],
		"templates": [{"title": "greeting", "prompt": "Say hi", "updatedAt": null}],
		"vendor": "openai",
		"customUnknownField": {"deep": [1, 2, 3]}
	}`

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	restored := UnmapKeys(MapKeys(value))
	if !reflect.DeepEqual(restored, value) {
		t.Errorf("round trip changed value:\n got: %#v\nwant: %#v", restored, value)
	}
}

func TestRoundTrip_DoesNotShareStructure(t *testing.T) {
	input := map[string]any{"model": "a", "nested": map[string]any{"role": "user"}}
	mapped := MapKeys(input).(map[string]any)

	// Mutating the mapped copy must not affect the original.
	mapped["m"] = "changed"
	mapped["nested"].(map[string]any)["r"] = "changed"

	if input["model"] != "a" {
		t.Error("MapKeys aliased the top-level map")
	}
	if input["nested"].(map[string]any)["role"] != "user" {
		t.Error("MapKeys aliased a nested map")
	}
}

func TestDictionary_Invariants(t *testing.T) {
	seen := make(map[string]string)
	for long, short := range codes {
		if len(long) <= 1 {
			t.Errorf("long name %q is too short to be distinguishable from a code", long)
		}
		if len(short) != 1 {
			t.Errorf("code %q for %q is not a single character", short, long)
		}
		if other, duplicate := seen[short]; duplicate {
			t.Errorf("code %q maps to both %q and %q", short, other, long)
		}
		seen[short] = long
	}
	if len(names) != len(codes) {
		t.Errorf("reverse dictionary has %d entries, want %d", len(names), len(codes))
	}
}
