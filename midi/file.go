package midi

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// TicksPerQuarter is the fixed time division of every written file.
const TicksPerQuarter = 96

// Track is the serialized event payload of one MTrk chunk.
type Track []byte

// File is an in-memory format 1 standard MIDI file: a tempo-only first
// track synthesized from BPM, followed by the sequenced tracks. BPM must
// be nonzero before serializing.
type File struct {
	BPM    uint32
	Tracks []Track
}

// Bytes serializes the MThd chunk, the tempo track and every track
// chunk.
func (f *File) Bytes() []byte {
	tempo := AppendSetTempo(nil, 0, f.BPM)
	tempo = AppendEndOfTrack(tempo, 0)

	var buf []byte
	buf = append(buf, "MThd"...)
	buf = binary.BigEndian.AppendUint32(buf, 6)
	buf = binary.BigEndian.AppendUint16(buf, 1) // format
	buf = binary.BigEndian.AppendUint16(buf, uint16(1+len(f.Tracks)))
	buf = binary.BigEndian.AppendUint16(buf, TicksPerQuarter)
	buf = appendChunk(buf, tempo)
	for _, track := range f.Tracks {
		buf = appendChunk(buf, track)
	}
	return buf
}

func appendChunk(dst []byte, payload []byte) []byte {
	dst = append(dst, "MTrk"...)
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(payload)))
	return append(dst, payload...)
}

// WriteFile serializes the file to path. The bytes are staged in a
// temporary file in the destination directory and renamed into place, so
// an interrupted write never leaves a truncated file under the final
// name.
func (f *File) WriteFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("output create error: %w", err)
	}
	if _, err := tmp.Write(f.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("output write error: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("output close error: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("output rename error: %w", err)
	}
	return nil
}
