package midi_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/randomwolf06/gmsf-to-midi/midi"
)

func testFile() *midi.File {
	var track midi.Track
	track = midi.AppendTrackName(track, 0, "lead")
	track = midi.AppendProgramChange(track, 0, 0, 5)
	track = midi.AppendNoteOn(track, 48, 0, 71)
	track = midi.AppendNoteOff(track, 24, 0, 71)
	track = midi.AppendEndOfTrack(track, 0)
	return &midi.File{BPM: 120, Tracks: []midi.Track{track}}
}

func TestFileBytesHeader(t *testing.T) {
	data := testFile().Bytes()
	if !bytes.Equal(data[:4], []byte("MThd")) {
		t.Fatalf("missing MThd chunk: %#v", data[:4])
	}
	if n := binary.BigEndian.Uint32(data[4:8]); n != 6 {
		t.Errorf("MThd length = %d, want 6", n)
	}
	if format := binary.BigEndian.Uint16(data[8:10]); format != 1 {
		t.Errorf("format = %d, want 1", format)
	}
	if ntracks := binary.BigEndian.Uint16(data[10:12]); ntracks != 2 {
		t.Errorf("ntracks = %d, want 2 (tempo + one track)", ntracks)
	}
	if division := binary.BigEndian.Uint16(data[12:14]); division != 96 {
		t.Errorf("division = %d, want 96", division)
	}
	// The tempo track follows immediately: SetTempo then EndOfTrack.
	wantTempo := midi.AppendEndOfTrack(midi.AppendSetTempo(nil, 0, 120), 0)
	if !bytes.Equal(data[14:18], []byte("MTrk")) {
		t.Fatalf("missing tempo MTrk chunk: %#v", data[14:18])
	}
	if n := binary.BigEndian.Uint32(data[18:22]); int(n) != len(wantTempo) {
		t.Fatalf("tempo track length = %d, want %d", n, len(wantTempo))
	}
	if !bytes.Equal(data[22:22+len(wantTempo)], wantTempo) {
		t.Errorf("tempo track = %#v, want %#v", data[22:22+len(wantTempo)], wantTempo)
	}
}

// The emitted bytes should parse cleanly with an independent SMF
// implementation, with every event and delta intact.
func TestWriteFileParsesBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mid")
	if err := testFile().WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	parsed, err := smf.ReadFile(path)
	if err != nil {
		t.Fatalf("written file did not parse: %v", err)
	}
	if parsed.Format() != 1 {
		t.Errorf("format = %d, want 1", parsed.Format())
	}
	if tf, ok := parsed.TimeFormat.(smf.MetricTicks); !ok || uint16(tf) != 96 {
		t.Errorf("time format = %v, want 96 metric ticks", parsed.TimeFormat)
	}
	if len(parsed.Tracks) != 2 {
		t.Fatalf("track count = %d, want 2", len(parsed.Tracks))
	}

	var bpm float64
	foundTempo := false
	for _, ev := range parsed.Tracks[0] {
		if ev.Message.GetMetaTempo(&bpm) {
			foundTempo = true
		}
	}
	if !foundTempo || bpm != 120 {
		t.Errorf("tempo track: found=%v bpm=%v, want 120", foundTempo, bpm)
	}

	var name string
	var ch, key, vel, prog uint8
	events := parsed.Tracks[1]
	if len(events) < 4 {
		t.Fatalf("track 1 has %d events, want at least 4", len(events))
	}
	if !events[0].Message.GetMetaTrackName(&name) || name != "lead" {
		t.Errorf("event 0: want track name \"lead\", got %v", events[0].Message)
	}
	if !events[1].Message.GetProgramChange(&ch, &prog) || ch != 0 || prog != 5 {
		t.Errorf("event 1: want program change 5 on channel 0, got %v", events[1].Message)
	}
	if !events[2].Message.GetNoteOn(&ch, &key, &vel) || key != 71 || vel != 64 {
		t.Errorf("event 2: want note on 71 velocity 64, got %v", events[2].Message)
	}
	if events[2].Delta != 48 {
		t.Errorf("note on delta = %d, want 48", events[2].Delta)
	}
	if !events[3].Message.GetNoteOff(&ch, &key, &vel) || key != 71 {
		t.Errorf("event 3: want note off 71, got %v", events[3].Message)
	}
	if events[3].Delta != 24 {
		t.Errorf("note off delta = %d, want 24", events[3].Delta)
	}
}

func TestWriteFileLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.mid")
	if err := testFile().WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.mid" {
		t.Errorf("unexpected directory contents: %v", entries)
	}
}
