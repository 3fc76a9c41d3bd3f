// Copyright 2026 The GPTLink Authors
// SPDX-License-Identifier: Apache-2.0

package lzstring

import (
	"fmt"
	"unicode/utf16"
)

// bitsPerUnit is the width of one output unit of the bitstream. The
// stream is padded to a whole unit on flush, so compressed byte
// lengths are always even.
const bitsPerUnit = 16

// bitWriter accumulates bits most-significant-first into 16-bit units.
// Within a single token, value bits are consumed least-significant
// first — this asymmetry is part of the wire format.
type bitWriter struct {
	units    []uint16
	current  uint16
	position int
}

// writeBits writes the low count bits of value, least-significant bit
// first.
func (w *bitWriter) writeBits(value, count int) {
	for i := 0; i < count; i++ {
		w.current = w.current<<1 | uint16(value&1)
		if w.position == bitsPerUnit-1 {
			w.position = 0
			w.units = append(w.units, w.current)
			w.current = 0
		} else {
			w.position++
		}
		value >>= 1
	}
}

// flush pads the current unit with zero bits and emits it. Always
// emits exactly one unit, even when the writer is unit-aligned — the
// decompressor tolerates the extra padding because the end-of-stream
// token terminates decoding first.
func (w *bitWriter) flush() {
	for {
		w.current <<= 1
		if w.position == bitsPerUnit-1 {
			w.units = append(w.units, w.current)
			return
		}
		w.position++
	}
}

// bitReader consumes bits most-significant-first from 16-bit units,
// assembling token values least-significant bit first (the mirror of
// bitWriter). Reads past the end of the stream see zero bits; the
// caller detects overrun via the index method.
type bitReader struct {
	units []uint16
	index int
	value uint16
	mask  uint16
}

func newBitReader(units []uint16) *bitReader {
	return &bitReader{
		units: units,
		index: 1,
		value: units[0],
		mask:  1 << (bitsPerUnit - 1),
	}
}

// readBits reads count bits and assembles them into a value,
// least-significant bit first.
func (r *bitReader) readBits(count int) int {
	bits := 0
	for power := 0; power < count; power++ {
		if r.value&r.mask != 0 {
			bits |= 1 << power
		}
		r.mask >>= 1
		if r.mask == 0 {
			r.mask = 1 << (bitsPerUnit - 1)
			if r.index < len(r.units) {
				r.value = r.units[r.index]
			} else {
				r.value = 0
			}
			r.index++
		}
	}
	return bits
}

// overrun reports whether the reader has consumed bits beyond the end
// of the stream.
func (r *bitReader) overrun() bool {
	return r.index > len(r.units)
}

// Token codes 0 and 1 introduce a new literal code unit (8-bit and
// 16-bit payload respectively); code 2 terminates the stream. Codes
// from 3 up are dictionary references.
const (
	tokenLiteral8  = 0
	tokenLiteral16 = 1
	tokenEnd       = 2
	firstCode      = 3
)

// Compress compresses s into the byte-packed bitstream form. The
// empty string compresses to an empty (non-nil) byte slice. The input
// must be valid UTF-8; s is interpreted as the sequence of UTF-16
// code units of its runes.
func Compress(s string) []byte {
	if s == "" {
		return []byte{}
	}
	input := utf16.Encode([]rune(s))

	// charCodes assigns a dictionary code to each distinct code unit;
	// sequenceCodes extends a known sequence code by one unit. pending
	// holds single-unit codes whose literal has not been emitted yet:
	// the first time such a code would be produced, the literal token
	// is written instead so the decompressor can learn the unit.
	charCodes := make(map[uint16]int)
	sequenceCodes := make(map[uint64]int)
	pending := make(map[int]uint16)

	nextCode := firstCode
	enlargeIn := 2
	numBits := 2
	writer := &bitWriter{}

	produce := func(code int) {
		if unit, fresh := pending[code]; fresh {
			if unit < 256 {
				writer.writeBits(tokenLiteral8, numBits)
				writer.writeBits(int(unit), 8)
			} else {
				writer.writeBits(tokenLiteral16, numBits)
				writer.writeBits(int(unit), 16)
			}
			enlargeIn--
			if enlargeIn == 0 {
				enlargeIn = 1 << numBits
				numBits++
			}
			delete(pending, code)
		} else {
			writer.writeBits(code, numBits)
		}
		enlargeIn--
		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}
	}

	current := -1
	for _, unit := range input {
		unitCode, seen := charCodes[unit]
		if !seen {
			unitCode = nextCode
			nextCode++
			charCodes[unit] = unitCode
			pending[unitCode] = unit
		}
		if current == -1 {
			current = unitCode
			continue
		}
		extended := uint64(current)<<16 | uint64(unit)
		if code, ok := sequenceCodes[extended]; ok {
			current = code
			continue
		}
		produce(current)
		sequenceCodes[extended] = nextCode
		nextCode++
		current = unitCode
	}
	if current != -1 {
		produce(current)
	}

	writer.writeBits(tokenEnd, numBits)
	writer.flush()

	output := make([]byte, len(writer.units)*2)
	for i, unit := range writer.units {
		output[i*2] = byte(unit >> 8)
		output[i*2+1] = byte(unit)
	}
	return output
}

// Decompress reverses Compress. Empty input decompresses to the empty
// string. Returns an error for bitstreams that are truncated or that
// reference dictionary entries that cannot exist — such inputs were
// not produced by Compress.
func Decompress(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	if len(data)%2 != 0 {
		return "", fmt.Errorf("lzstring: compressed data has odd length %d", len(data))
	}
	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = uint16(data[i*2])<<8 | uint16(data[i*2+1])
	}
	reader := newBitReader(units)

	// Entries 0-2 are the reserved token codes and never resolve.
	dictionary := make([][]uint16, firstCode, 64)
	enlargeIn := 4
	numBits := 3

	var first []uint16
	switch token := reader.readBits(2); token {
	case tokenLiteral8:
		first = []uint16{uint16(reader.readBits(8))}
	case tokenLiteral16:
		first = []uint16{uint16(reader.readBits(16))}
	case tokenEnd:
		return "", nil
	default:
		return "", fmt.Errorf("lzstring: invalid leading token %d", token)
	}
	dictionary = append(dictionary, first)
	previous := first
	result := append([]uint16(nil), first...)

	for {
		if reader.overrun() {
			return "", fmt.Errorf("lzstring: unexpected end of compressed data")
		}
		code := reader.readBits(numBits)
		switch code {
		case tokenLiteral8:
			dictionary = append(dictionary, []uint16{uint16(reader.readBits(8))})
			code = len(dictionary) - 1
			enlargeIn--
		case tokenLiteral16:
			dictionary = append(dictionary, []uint16{uint16(reader.readBits(16))})
			code = len(dictionary) - 1
			enlargeIn--
		case tokenEnd:
			return string(utf16.Decode(result)), nil
		}
		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}

		var entry []uint16
		switch {
		case code < len(dictionary) && dictionary[code] != nil:
			entry = dictionary[code]
		case code == len(dictionary):
			// The reference is to the entry being defined right now:
			// it must be the previous sequence extended by its own
			// first unit.
			entry = make([]uint16, 0, len(previous)+1)
			entry = append(entry, previous...)
			entry = append(entry, previous[0])
		default:
			return "", fmt.Errorf("lzstring: reference to undefined dictionary entry %d", code)
		}
		result = append(result, entry...)

		grown := make([]uint16, 0, len(previous)+1)
		grown = append(grown, previous...)
		grown = append(grown, entry[0])
		dictionary = append(dictionary, grown)
		enlargeIn--
		previous = entry
		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}
	}
}
