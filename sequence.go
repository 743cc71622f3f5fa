package gmsf

import "github.com/randomwolf06/gmsf-to-midi/midi"

// ticksPerColumn is how far the clock advances per grid column: a
// sixteenth note at the file's division.
const ticksPerColumn = midi.TicksPerQuarter / 4

// sequenceTrack walks one channel's piano-roll column by column and
// serializes it into a track buffer. Repeat actions steer the walk: the
// first action at a column with uses left fires and jumps back to its
// start column. Exhausted actions reset instead of firing, which lets
// them fire again on a later pass through the same column (a repeat
// nested inside an outer repeat).
func sequenceTrack(sheet *Sheet, channel uint8, patch uint8, name string) midi.Track {
	roll := sheet.Rolls[channel]

	var buf midi.Track
	buf = midi.AppendTrackName(buf, 0, name)
	buf = midi.AppendProgramChange(buf, 0, channel, patch)

	var tick, lastTick uint32
	var held KeySet
	for x := 0; x < sheet.Width; {
		for _, key := range held {
			buf = midi.AppendNoteOff(buf, tick-lastTick, channel, key)
			lastTick = tick
		}
		held = held[:0]
		for _, key := range roll[x] {
			buf = midi.AppendNoteOn(buf, tick-lastTick, channel, key)
			lastTick = tick
			held = append(held, key)
		}
		tick += ticksPerColumn

		repeating := false
		for i := range sheet.Repeats[x] {
			action := &sheet.Repeats[x][i]
			if action.Remaining >= action.Total {
				action.Remaining = 0
				continue
			}
			action.Remaining++
			x = action.Start
			repeating = true
			break
		}
		if !repeating {
			x++
		}
	}
	return midi.AppendEndOfTrack(buf, 0)
}
