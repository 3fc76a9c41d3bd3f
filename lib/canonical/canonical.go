// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

// Package canonical shortens the well-known field names of a shared
// configuration to single-character codes before compression, and
// restores them after decompression. The mapping is a fixed,
// hand-authored dictionary: shortening unknown keys is never attempted,
// so payloads carrying fields this package has never heard of survive
// the round trip unchanged. That open-world tolerance is what makes the
// dictionary safe to extend without breaking links minted by older
// builds.
//
// Known limitation: [UnmapKeys] expands any single-character object key
// that collides with a registered code, even if the producing side
// never shortened it. Single-character long names are therefore
// rejected at dictionary-definition time — see newDictionary.
package canonical

import "fmt"

// codes maps long field names to their single-character codes. Both
// directions of the mapping are protocol constants: removing or
// repointing an entry breaks every link that used it. Append-only.
var codes = map[string]string{
	"apiKey":           "k",
	"apiBaseURL":       "u",
	"organization":     "o",
	"model":            "m",
	"temperature":      "t",
	"topP":             "p",
	"maxTokens":        "x",
	"frequencyPenalty": "q",
	"presencePenalty":  "y",
	"stream":           "w",
	"stop":             "z",
	"systemPrompt":     "s",
	"messages":         "h",
	"role":             "r",
	"content":          "c",
	"name":             "n",
	"description":      "d",
	"parameters":       "a",
	"functions":        "f",
	"enabled":          "e",
	"templates":        "l",
	"title":            "i",
	"prompt":           "b",
	"createdAt":        "g",
	"updatedAt":        "j",
	"vendor":           "v",
}

// names is the reverse of codes, built and validated at init.
var names = newDictionary(codes)

// newDictionary builds the reverse mapping and enforces the dictionary
// contract: codes are single characters, no two long names share a
// code, and no long name is itself a single character (such a name
// would be indistinguishable from a code on the unmap side).
func newDictionary(forward map[string]string) map[string]string {
	reverse := make(map[string]string, len(forward))
	for long, short := range forward {
		if len(long) <= 1 {
			panic(fmt.Sprintf("canonical: long name %q must be more than one character", long))
		}
		if len(short) != 1 {
			panic(fmt.Sprintf("canonical: code %q for %q must be exactly one character", short, long))
		}
		if existing, collision := reverse[short]; collision {
			panic(fmt.Sprintf("canonical: code %q assigned to both %q and %q", short, existing, long))
		}
		reverse[short] = long
	}
	return reverse
}

// MapKeys returns a copy of value with every known object key replaced
// by its short code, recursively. Arrays recurse element-wise, object
// values recurse, primitives and unknown keys pass through unchanged.
// The value is expected to be a JSON-shaped tree as produced by
// encoding/json: nil, bool, float64, string, []any, map[string]any.
func MapKeys(value any) any {
	return rewrite(value, codes)
}

// UnmapKeys is the inverse of MapKeys: every short code appearing as an
// object key is replaced by its long name.
func UnmapKeys(value any) any {
	return rewrite(value, names)
}

// rewrite walks a JSON-shaped value, replacing object keys through the
// given mapping. The type switch is exhaustive over the shapes
// encoding/json produces; anything else (a caller handed us a struct,
// say) passes through untouched and will be flattened by the next
// json.Marshal anyway.
func rewrite(value any, mapping map[string]string) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			if replacement, known := mapping[key]; known {
				key = replacement
			}
			out[key] = rewrite(inner, mapping)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, inner := range typed {
			out[i] = rewrite(inner, mapping)
		}
		return out
	default:
		// nil, bool, float64, string, json.Number: nothing to do.
		return value
	}
}
