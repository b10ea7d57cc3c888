package deck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/arcanaland/cardconv/internal/card"
	"github.com/arcanaland/cardconv/internal/logger"
	"github.com/arcanaland/cardconv/internal/table"
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Deck is the converted card list
type Deck struct {
	Cards []card.Card `json:"cards" yaml:"cards"`
}

// Convert builds one card per row, in row order. The first row that cannot
// be built aborts the conversion. A nil log discards output.
func Convert(t *table.Table, log *charmlog.Logger) (*Deck, error) {
	if log == nil {
		log = logger.Discard()
	}

	d := &Deck{Cards: make([]card.Card, 0, len(t.Rows))}

	for i, row := range t.Rows {
		c, err := card.BuildCard(row)
		if err != nil {
			return nil, fmt.Errorf("row %d (line %d): %w", i+1, row.Line, err)
		}

		log.Debug("built card", "id", c.ID, "name", c.Name, "moves", len(c.Moves))
		d.Cards = append(d.Cards, c)
	}

	log.Info("converted table", "cards", len(d.Cards))
	return d, nil
}

// GetCard finds a card by ID
func (d *Deck) GetCard(id string) (*card.Card, error) {
	for i := range d.Cards {
		if d.Cards[i].ID == id {
			return &d.Cards[i], nil
		}
	}
	return nil, fmt.Errorf("card not found: %s", id)
}

// ParseFormat validates an output format name
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: json, yaml)", s)
	}
}

// Encode writes the deck. JSON is indented by two spaces and keeps
// non-ASCII and HTML characters as-is.
func Encode(w io.Writer, d *Deck, format string) error {
	format, err := ParseFormat(format)
	if err != nil {
		return err
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("error encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("error encoding json: %w", err)
		}
		_, err := w.Write(buf.Bytes())
		return err
	}
}

// WriteFile encodes the deck to path, replacing any existing file
func WriteFile(path string, d *Deck, format string) error {
	var buf bytes.Buffer
	if err := Encode(&buf, d, format); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}
