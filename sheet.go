package gmsf

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrMalformedHeader is returned when the input does not start with the
// GMSF magic.
var ErrMalformedHeader = errors.New("invalid GMSF file")

var gmsfMagic = [4]byte{'G', 'M', 'S', 'F'}

// audiogearSlots is the number of (symbol, row) pairs packed into one
// composite cell.
const audiogearSlots = 5

// KeySet is the set of keys sounding in one grid column. It is kept
// sorted so that event emission is deterministic.
type KeySet []uint8

// Add inserts k, keeping the set sorted and duplicate-free.
func (s *KeySet) Add(k uint8) {
	i := 0
	for i < len(*s) && (*s)[i] < k {
		i++
	}
	if i < len(*s) && (*s)[i] == k {
		return
	}
	*s = append(*s, 0)
	copy((*s)[i+1:], (*s)[i:])
	(*s)[i] = k
}

// Sheet is a fully decoded GMSF document: the grid flattened into
// per-channel piano-rolls, plus the repeat actions resolved per column.
type Sheet struct {
	Version uint8
	BPM     uint32
	Width   int
	Height  int

	// Rolls holds, for every output channel that sounds at least once,
	// one KeySet per grid column.
	Rolls map[uint8][]KeySet

	// Repeats holds the resolved repeat actions per column, ordered by
	// ascending start column.
	Repeats [][]RepeatAction
}

// header is the fixed GMSF file header after the magic. The 16-bit fields
// are signed on the wire but used as unsigned.
type header struct {
	Version     uint8
	AudiogearID uint8
	BPM         int16
	Width       int16
	Height      int16
}

// ParseSheet decodes a GMSF document into a Sheet using the symbol table
// in cfg. It reads the whole grid before returning; a short read anywhere
// yields an error wrapping io.ErrUnexpectedEOF and no Sheet.
func ParseSheet(r io.Reader, cfg *Config) (*Sheet, error) {
	br := bufio.NewReader(r)

	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, fmt.Errorf("header read error: %w", short(err))
	}
	if magic != gmsfMagic {
		return nil, ErrMalformedHeader
	}
	var hdr header
	if err := binary.Read(br, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("header read error: %w", short(err))
	}

	sheet := &Sheet{
		Version: hdr.Version,
		BPM:     uint32(uint16(hdr.BPM)),
		Width:   int(uint16(hdr.Width)),
		Height:  int(uint16(hdr.Height)),
		Rolls:   make(map[uint8][]KeySet),
	}

	readByte := func() (uint8, error) {
		b, err := br.ReadByte()
		if err != nil {
			return 0, short(err)
		}
		return b, nil
	}
	insert := func(sym SheetSymbol, row, x int) {
		channel, key, ok := channelAndKey(sym, row)
		if !ok {
			return
		}
		roll, exists := sheet.Rolls[channel]
		if !exists {
			roll = make([]KeySet, sheet.Width)
			sheet.Rolls[channel] = roll
		}
		roll[x].Add(key)
	}

	rawRepeats := make([][]int, sheet.Width)
	for y := 0; y < sheet.Height; y++ {
		// Repeat begins are matched within a single row scan and the
		// stack is never popped: a repeat end resolves to the nearest
		// preceding begin in its row, or column 0 without one.
		var begins []int
		for x := 0; x < sheet.Width; x++ {
			id, err := readByte()
			if err != nil {
				return nil, fmt.Errorf("grid read error at row %d column %d: %w", y, x, err)
			}
			if id == 0 {
				continue
			}
			if id == hdr.AudiogearID {
				for i := 0; i < audiogearSlots; i++ {
					innerID, err := readByte()
					if err != nil {
						return nil, fmt.Errorf("audiogear read error at column %d: %w", x, err)
					}
					innerRow, err := readByte()
					if err != nil {
						return nil, fmt.Errorf("audiogear read error at column %d: %w", x, err)
					}
					if innerID == 0 {
						continue
					}
					if sym, ok := cfg.GmsfSheetMap[innerID]; ok {
						insert(sym, int(innerRow), x)
					}
				}
				// Trailing volume byte; the converter does not use it.
				if _, err := readByte(); err != nil {
					return nil, fmt.Errorf("audiogear read error at column %d: %w", x, err)
				}
				continue
			}
			sym, ok := cfg.GmsfSheetMap[id]
			if !ok {
				continue
			}
			insert(sym, y, x)
			switch sym.Kind {
			case SymbolRepeatBegin:
				begins = append(begins, x)
			case SymbolRepeatEnd:
				start := 0
				if len(begins) > 0 {
					start = begins[len(begins)-1]
				}
				rawRepeats[x] = append(rawRepeats[x], start)
			}
		}
	}
	sheet.Repeats = resolveRepeats(rawRepeats)
	return sheet, nil
}

// short maps a plain EOF to ErrUnexpectedEOF; once the header has been
// started, running out of bytes always means a truncated file.
func short(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
