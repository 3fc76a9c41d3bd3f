// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

package lzstring

import (
	"strings"
	"testing"
)

func TestCompress_Empty(t *testing.T) {
	compressed := Compress("")
	if len(compressed) != 0 {
		t.Errorf("Compress(\"\") = %d bytes, want 0", len(compressed))
	}

	decompressed, err := Decompress(nil)
	if err != nil {
		t.Fatalf("Decompress(nil) error: %v", err)
	}
	if decompressed != "" {
		t.Errorf("Decompress(nil) = %q, want empty", decompressed)
	}

	decompressed, err = Decompress([]byte{})
	if err != nil {
		t.Fatalf("Decompress(empty) error: %v", err)
	}
	if decompressed != "" {
		t.Errorf("Decompress(empty) = %q, want empty", decompressed)
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"single char", "a"},
		{"repeated char", "aa"},
		{"short ascii", "hello, world"},
		{"json", `{"m":"gpt-4o-mini","s":"Be concise.","t":0.7}`},
		{"repetitive json", `{"h":[{"r":"user","c":"hi"},{"r":"assistant","c":"hello"},{"r":"user","c":"bye"}]}`},
		{"whitespace", " \t\n\r "},
		{"high latin", "café naïve résumé"},
		{"cjk", "日本語のテキスト"},
		{"emoji", "hello \U0001F600\U0001F680 world \U0001F30D"},
		{"mixed", "ascii é 日本 \U0001F600 end"},
		{"null bytes", "a\x00b\x00c"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			compressed := Compress(tc.input)
			decompressed, err := Decompress(compressed)
			if err != nil {
				t.Fatalf("Decompress() error: %v", err)
			}
			if decompressed != tc.input {
				t.Errorf("round trip = %q, want %q", decompressed, tc.input)
			}
		})
	}
}

func TestRoundTrip_Long(t *testing.T) {
	// A long, repetitive payload well past the dictionary's bit-width
	// growth thresholds, similar in shape to a real conversation
	// history.
	var builder strings.Builder
	for i := 0; i < 2000; i++ {
		builder.WriteString(`{"role":"user","content":"message body `)
		builder.WriteByte(byte('a' + i%26))
		builder.WriteString(`"},`)
	}
	input := builder.String()
	if len(input) <= 10000 {
		t.Fatalf("fixture too small: %d chars", len(input))
	}

	compressed := Compress(input)
	if len(compressed) >= len(input) {
		t.Errorf("repetitive input did not shrink: %d -> %d bytes", len(input), len(compressed))
	}

	decompressed, err := Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress() error: %v", err)
	}
	if decompressed != input {
		t.Error("long round trip mismatch")
	}
}

func TestRoundTrip_LongUnicode(t *testing.T) {
	input := strings.Repeat("日本語 \U0001F600 ", 3000)
	compressed := Compress(input)
	decompressed, err := Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress() error: %v", err)
	}
	if decompressed != input {
		t.Error("unicode round trip mismatch")
	}
}

func TestRoundTrip_AllByteValues(t *testing.T) {
	// Every code point 1..255 plus a spread of multi-byte runes, so
	// both the 8-bit and 16-bit literal paths are exercised against
	// inputs with no repetition at all.
	var builder strings.Builder
	for r := rune(1); r < 256; r++ {
		builder.WriteRune(r)
	}
	for r := rune(0x100); r < 0x2000; r += 97 {
		builder.WriteRune(r)
	}
	input := builder.String()

	decompressed, err := Decompress(Compress(input))
	if err != nil {
		t.Fatalf("Decompress() error: %v", err)
	}
	if decompressed != input {
		t.Error("all-byte-values round trip mismatch")
	}
}

func TestCompress_Deterministic(t *testing.T) {
	input := `{"m":"gpt-4o","h":[{"r":"user","c":"hello"}]}`
	first := Compress(input)
	second := Compress(input)
	if string(first) != string(second) {
		t.Error("Compress() is not deterministic")
	}
}

func TestDecompress_OddLength(t *testing.T) {
	if _, err := Decompress([]byte{0x01, 0x02, 0x03}); err == nil {
		t.Error("Decompress(odd length) should return error")
	}
}

func TestDecompress_Truncated(t *testing.T) {
	// Truncation is detected either as an explicit decode error or,
	// at worst, as output that no longer matches the input — it must
	// never silently round-trip.
	input := `{"role":"user","content":"a reasonably long message"}`
	compressed := Compress(input)
	for cut := 2; cut <= 8; cut += 2 {
		truncated := compressed[:len(compressed)-cut]
		decompressed, err := Decompress(truncated)
		if err == nil && decompressed == input {
			t.Errorf("Decompress(truncated by %d) round-tripped intact", cut)
		}
	}
}

func TestDecompress_Garbage(t *testing.T) {
	// An all-ones bitstream opens with an invalid leading token; the
	// decoder must error, not panic.
	garbage := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	if _, err := Decompress(garbage); err == nil {
		t.Error("Decompress(garbage) should return error")
	}
}
