package gmsf

// SymbolKind enumerates the meanings a grid symbol can carry. The set is
// closed; the decoder dispatches on it once per cell.
type SymbolKind uint8

const (
	SymbolOther SymbolKind = iota
	SymbolNote
	SymbolLowNote
	SymbolDrums
	SymbolRepeatBegin
	SymbolRepeatEnd
)

// Accidental shifts a note key by a semitone.
type Accidental uint8

const (
	Natural Accidental = iota
	Flat
	Sharp
)

// SheetSymbol is the decoded meaning of a grid symbol ID. Channel and
// Accidental are only meaningful for SymbolNote and SymbolLowNote.
type SheetSymbol struct {
	Kind       SymbolKind
	Channel    uint8
	Accidental Accidental
}

// percussionChannel is the fixed General MIDI drum channel.
const percussionChannel = 9

// keyLookup maps a grid row to its base key, a descending diatonic run
// from B4 on the top row down to C3.
var keyLookup = [14]uint8{71, 69, 67, 65, 64, 62, 60, 59, 57, 55, 53, 52, 50, 48}

// drumsLookup maps a grid row to a fixed percussion key; the lower half of
// the grid mirrors the upper half.
var drumsLookup = [14]uint8{
	36, // bass drum 1
	39, // hand clap
	59, // ride cymbal 3
	38, // acoustic snare
	43, // high floor tom
	45, // low tom
	49, // crash cymbal
	36, 39, 59, 38, 43, 45, 49,
}

// channelAndKey resolves a symbol at the given grid row to an output
// channel and key number. ok is false for non-sounding symbols and for
// rows outside the lookup tables; the latter means the configuration maps
// a symbol onto a row the format does not have.
func channelAndKey(sym SheetSymbol, row int) (channel, key uint8, ok bool) {
	if row < 0 || row >= len(keyLookup) {
		return 0, 0, false
	}
	switch sym.Kind {
	case SymbolNote, SymbolLowNote:
		key = keyLookup[row]
		if sym.Kind == SymbolLowNote {
			key -= 24
		}
		switch sym.Accidental {
		case Flat:
			key--
		case Sharp:
			key++
		}
		return sym.Channel, key, true
	case SymbolDrums:
		return percussionChannel, drumsLookup[row], true
	}
	return 0, 0, false
}
