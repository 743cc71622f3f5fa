package midi

// noteOnVelocity is the fixed attack velocity of every emitted note; the
// input format carries no usable per-note velocity.
const noteOnVelocity = 64

// AppendNoteOff appends a note-off event preceded by its delta-time.
func AppendNoteOff(dst []byte, delta uint32, channel, key uint8) []byte {
	dst = AppendVLQ(dst, delta)
	return append(dst, 0x80|channel, key, 0)
}

// AppendNoteOn appends a note-on event preceded by its delta-time.
func AppendNoteOn(dst []byte, delta uint32, channel, key uint8) []byte {
	dst = AppendVLQ(dst, delta)
	return append(dst, 0x90|channel, key, noteOnVelocity)
}

// AppendProgramChange appends a program-change event preceded by its
// delta-time.
func AppendProgramChange(dst []byte, delta uint32, channel, patch uint8) []byte {
	dst = AppendVLQ(dst, delta)
	return append(dst, 0xC0|channel, patch)
}

// AppendTrackName appends a track-name meta event. The name length is
// stored in a single byte, so name must be shorter than 256 bytes; the
// caller enforces that.
func AppendTrackName(dst []byte, delta uint32, name string) []byte {
	dst = AppendVLQ(dst, delta)
	dst = append(dst, 0xFF, 0x03, byte(len(name)))
	return append(dst, name...)
}

// AppendChannelPrefix appends a channel-prefix meta event.
func AppendChannelPrefix(dst []byte, delta uint32, channel uint8) []byte {
	dst = AppendVLQ(dst, delta)
	return append(dst, 0xFF, 0x20, 0x01, channel)
}

// AppendSetTempo appends a set-tempo meta event: the tempo as
// microseconds per quarter note in three big-endian bytes. bpm must be
// nonzero.
func AppendSetTempo(dst []byte, delta uint32, bpm uint32) []byte {
	usPerQuarter := 60000000 / bpm
	dst = AppendVLQ(dst, delta)
	return append(dst, 0xFF, 0x51, 0x03, byte(usPerQuarter>>16), byte(usPerQuarter>>8), byte(usPerQuarter))
}

// AppendEndOfTrack appends an end-of-track meta event.
func AppendEndOfTrack(dst []byte, delta uint32) []byte {
	dst = AppendVLQ(dst, delta)
	return append(dst, 0xFF, 0x2F, 0x00)
}
