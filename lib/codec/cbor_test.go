// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"reflect"
	"testing"
)

func TestMarshal_Deterministic(t *testing.T) {
	value := map[string]any{
		"zebra":  1,
		"apple":  "x",
		"middle": []any{true, nil},
	}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	second, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Marshal() is not deterministic")
	}
}

func TestRoundTrip_AnyTarget(t *testing.T) {
	value := map[string]any{
		"config": map[string]any{"model": "gpt-4o", "temperature": 0.5},
		"saved":  true,
	}

	encoded, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var decoded any
	if err := Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	// Nested maps must come back as map[string]any, not
	// map[interface{}]interface{}.
	top, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded top level is %T, want map[string]any", decoded)
	}
	nested, ok := top["config"].(map[string]any)
	if !ok {
		t.Fatalf("decoded nested value is %T, want map[string]any", top["config"])
	}
	if nested["model"] != "gpt-4o" {
		t.Errorf("nested model = %v, want gpt-4o", nested["model"])
	}
}

func TestRawMessage_DelaysDecoding(t *testing.T) {
	encoded, err := Marshal(map[string]any{"key": "value"})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var partial map[string]RawMessage
	if err := Unmarshal(encoded, &partial); err != nil {
		t.Fatalf("Unmarshal() into RawMessage map error: %v", err)
	}

	var value string
	if err := Unmarshal(partial["key"], &value); err != nil {
		t.Fatalf("Unmarshal(raw) error: %v", err)
	}
	if value != "value" {
		t.Errorf("raw value = %q, want value", value)
	}
}

func TestRoundTrip_Struct(t *testing.T) {
	type entry struct {
		Name    string `cbor:"name"`
		Enabled bool   `cbor:"enabled"`
	}

	original := entry{Name: "search", Enabled: true}
	encoded, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var decoded entry
	if err := Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("round trip = %+v, want %+v", decoded, original)
	}
}
