package gmsf

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TrackInfo describes the MIDI track emitted for one instrument slot.
type TrackInfo struct {
	Patch uint8  `json:"patch" yaml:"patch"`
	Name  string `json:"name" yaml:"name"`
}

// Config maps the game's instrument slots and grid symbol IDs to their
// musical meaning. It is loaded once at startup and treated as read-only
// for the rest of the run.
type Config struct {
	MidiTrackMap map[uint8]TrackInfo   `json:"midi_track_map" yaml:"midi_track_map"`
	GmsfSheetMap map[uint8]SheetSymbol `json:"gmsf_sheet_map" yaml:"gmsf_sheet_map"`
}

// symbolDoc is the wire form of a SheetSymbol in configuration documents.
type symbolDoc struct {
	Type       string `json:"type" yaml:"type"`
	Channel    uint8  `json:"channel" yaml:"channel"`
	Accidental string `json:"accidental" yaml:"accidental"`
}

var symbolKinds = map[string]SymbolKind{
	"note":         SymbolNote,
	"low_note":     SymbolLowNote,
	"drums":        SymbolDrums,
	"repeat_begin": SymbolRepeatBegin,
	"repeat_end":   SymbolRepeatEnd,
	"other":        SymbolOther,
}

var accidentals = map[string]Accidental{
	"":        Natural,
	"natural": Natural,
	"flat":    Flat,
	"sharp":   Sharp,
}

func (s *SheetSymbol) fromDoc(doc symbolDoc) error {
	kind, ok := symbolKinds[doc.Type]
	if !ok {
		return fmt.Errorf("unknown sheet symbol type %q", doc.Type)
	}
	accidental, ok := accidentals[doc.Accidental]
	if !ok {
		return fmt.Errorf("unknown accidental %q", doc.Accidental)
	}
	*s = SheetSymbol{Kind: kind, Channel: doc.Channel, Accidental: accidental}
	return nil
}

func (s *SheetSymbol) UnmarshalJSON(data []byte) error {
	var doc symbolDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	return s.fromDoc(doc)
}

func (s *SheetSymbol) UnmarshalYAML(value *yaml.Node) error {
	var doc symbolDoc
	if err := value.Decode(&doc); err != nil {
		return err
	}
	return s.fromDoc(doc)
}

// LoadConfig reads the symbol and track tables from path. The document may
// be JSON or YAML; JSON is tried first.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config open error: %w", err)
	}
	var cfg Config
	if errJSON := json.Unmarshal(data, &cfg); errJSON != nil {
		if errYAML := yaml.Unmarshal(data, &cfg); errYAML != nil {
			return nil, fmt.Errorf("config could not be unmarshaled as .json (%v) or .yml (%v)", errJSON, errYAML)
		}
	}
	return &cfg, nil
}
