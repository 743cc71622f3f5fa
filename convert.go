package gmsf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/randomwolf06/gmsf-to-midi/midi"
)

// Options adjusts conversion details that are not dictated by the input
// document.
type Options struct {
	// ShiftJISNames transcodes track names to Shift-JIS for players that
	// predate Unicode meta text.
	ShiftJISNames bool
}

// Convert unrolls a decoded sheet into a playable format 1 MIDI file.
// Tracks are emitted in ascending channel order. A channel without a
// track-map entry is dropped silently; a channel outside MIDI's 0-15
// range is dropped with a warning. Warnings are human-readable and
// non-fatal.
func Convert(sheet *Sheet, cfg *Config, opts Options) (*midi.File, []string, error) {
	if sheet.BPM == 0 {
		return nil, nil, errors.New("sheet declares a tempo of 0 BPM")
	}
	channels := make([]uint8, 0, len(sheet.Rolls))
	for channel := range sheet.Rolls {
		channels = append(channels, channel)
	}
	sort.Slice(channels, func(i, j int) bool { return channels[i] < channels[j] })

	file := &midi.File{BPM: sheet.BPM}
	var warnings []string
	for _, channel := range channels {
		info, ok := cfg.MidiTrackMap[channel]
		if !ok {
			continue
		}
		if channel > 15 {
			warnings = append(warnings, fmt.Sprintf("channel id should be 0-15, skipping track %d", channel))
			continue
		}
		name := info.Name
		if opts.ShiftJISNames {
			if encoded, _, err := transform.String(japanese.ShiftJIS.NewEncoder(), name); err == nil {
				name = encoded
			}
		}
		if len(name) > 255 {
			warnings = append(warnings, fmt.Sprintf("track name %q does not fit a meta event, truncating", info.Name))
			name = name[:255]
		}
		file.Tracks = append(file.Tracks, sequenceTrack(sheet, channel, info.Patch, name))
	}
	return file, warnings, nil
}

// OutputPath returns where the converted file for input path in should be
// written: next to the input with a .mid suffix appended, or under dir
// when dir is nonempty.
func OutputPath(in, dir string) string {
	if dir == "" {
		return in + ".mid"
	}
	return filepath.Join(dir, filepath.Base(in)+".mid")
}

// ConvertFile converts a single GMSF file and writes the result to
// outPath. Warnings are returned even on success; a non-nil error means
// nothing was left under outPath.
func ConvertFile(path, outPath string, cfg *Config, opts Options) ([]string, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open error: %w", err)
	}
	defer in.Close()

	sheet, err := ParseSheet(in, cfg)
	if err != nil {
		return nil, err
	}
	file, warnings, err := Convert(sheet, cfg, opts)
	if err != nil {
		return warnings, err
	}
	if err := file.WriteFile(outPath); err != nil {
		return warnings, err
	}
	return warnings, nil
}
