// Package midi renders MIDI events and assembles standard MIDI files
// byte by byte. The layout is fixed by the consumers of the output, so
// everything here is explicit byte appending rather than a general MIDI
// library.
package midi

import (
	"errors"
	"io"
)

// maxVLQBytes bounds a delta-time encoding; MIDI caps variable-length
// quantities at four digits (28 bits of payload).
const maxVLQBytes = 4

// AppendVLQ appends v encoded as a MIDI variable-length quantity:
// base-128 digits, most significant first, bit 7 set on every digit but
// the last. Values above 28 bits do not occur; deltas are bounded by the
// track length.
func AppendVLQ(dst []byte, v uint32) []byte {
	if v>>7 == 0 {
		return append(dst, byte(v))
	}
	if v>>14 == 0 {
		return append(dst, byte(v>>7|0x80), byte(v&0x7f))
	}
	if v>>21 == 0 {
		return append(dst, byte(v>>14|0x80), byte(v>>7|0x80), byte(v&0x7f))
	}
	return append(dst, byte(v>>21|0x80), byte(v>>14|0x80), byte(v>>7|0x80), byte(v&0x7f))
}

var errVLQOverflow = errors.New("variable-length quantity longer than four bytes")

// ReadVLQ decodes a variable-length quantity from the front of b,
// returning the value and the number of bytes consumed.
func ReadVLQ(b []byte) (uint32, int, error) {
	var v uint32
	for i := 0; i < len(b) && i < maxVLQBytes; i++ {
		v = v<<7 | uint32(b[i]&0x7f)
		if b[i]&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	if len(b) >= maxVLQBytes {
		return 0, 0, errVLQOverflow
	}
	return 0, 0, io.ErrUnexpectedEOF
}
