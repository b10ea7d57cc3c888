package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arcanaland/cardconv/internal/cell"
)

// ErrEmptyTable is returned when the input has no header row
var ErrEmptyTable = errors.New("table has no header row")

// DefaultNAValues are the cell spellings read as the no-value marker
var DefaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// Options controls how cells are typed
type Options struct {
	// TextColumns are never inferred as numeric
	TextColumns []string
	// NAValues replaces DefaultNAValues when non-empty
	NAValues []string
}

// Table is a parsed CSV file
type Table struct {
	Columns []string
	Rows    []*Row
}

// Row maps column names to raw cells, keeping header order
type Row struct {
	// Line is the 1-based line of the record in the source file
	Line    int
	columns []string
	cells   map[string]cell.Value
}

// NewRow builds a row from column/value pairs. Used by callers that do not
// read from CSV.
func NewRow(columns []string, values []cell.Value) *Row {
	r := &Row{columns: columns, cells: make(map[string]cell.Value, len(columns))}
	for i, col := range columns {
		if i < len(values) {
			r.cells[col] = values[i]
		} else {
			r.cells[col] = cell.NoValue()
		}
	}
	return r
}

// Get returns the cell for a column, or cell.Absent() if the row has no
// such column
func (r *Row) Get(column string) cell.Value {
	v, ok := r.cells[column]
	if !ok {
		return cell.Absent()
	}
	return v
}

// Has reports whether the column exists in the row
func (r *Row) Has(column string) bool {
	_, ok := r.cells[column]
	return ok
}

// Columns returns the column names in header order
func (r *Row) Columns() []string {
	return r.columns
}

// ReadFile reads a CSV file from disk
func ReadFile(path string, opts Options) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening table: %w", err)
	}
	defer file.Close()

	t, err := Read(file, opts)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return t, nil
}

// Read parses CSV with a header row. Each column is typed as a whole: if
// every non-empty cell is an integer the column is integral, if every
// non-empty cell is a number it is floating point, otherwise it is text.
// An integer column that has empty cells is read as floating point.
func Read(r io.Reader, opts Options) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	columns := dedupeColumns(header)

	var records [][]string
	var lines []int
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error parsing row: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if len(record) > len(columns) {
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(columns), len(record))
		}
		records = append(records, record)
		lines = append(lines, line)
	}

	na := opts.NAValues
	if len(na) == 0 {
		na = DefaultNAValues
	}
	naSet := make(map[string]struct{}, len(na))
	for _, s := range na {
		naSet[s] = struct{}{}
	}
	textCols := make(map[string]struct{}, len(opts.TextColumns))
	for _, c := range opts.TextColumns {
		textCols[c] = struct{}{}
	}

	// Type each column, then build rows
	typed := make([][]cell.Value, len(columns))
	for i, col := range columns {
		raw := make([]string, len(records))
		present := make([]bool, len(records))
		for j, record := range records {
			if i < len(record) {
				raw[j] = record[i]
				present[j] = true
			}
		}
		_, forceText := textCols[col]
		typed[i] = typeColumn(raw, present, naSet, forceText)
	}

	t := &Table{Columns: columns, Rows: make([]*Row, len(records))}
	for j := range records {
		values := make([]cell.Value, len(columns))
		for i := range columns {
			values[i] = typed[i][j]
		}
		row := NewRow(columns, values)
		row.Line = lines[j]
		t.Rows[j] = row
	}

	return t, nil
}

type columnKind int

const (
	intColumn columnKind = iota
	floatColumn
	textColumn
)

func typeColumn(raw []string, present []bool, na map[string]struct{}, forceText bool) []cell.Value {
	missing := make([]bool, len(raw))
	hasMissing := false
	kind := intColumn
	if forceText {
		kind = textColumn
	}

	for j, s := range raw {
		if _, isNA := na[s]; !present[j] || isNA {
			missing[j] = true
			hasMissing = true
			continue
		}
		if kind == intColumn {
			if _, ok := parseInt(s); !ok {
				kind = floatColumn
			}
		}
		if kind == floatColumn {
			if _, ok := parseFloat(s); !ok {
				kind = textColumn
			}
		}
	}
	if kind == intColumn && hasMissing {
		kind = floatColumn
	}

	values := make([]cell.Value, len(raw))
	for j, s := range raw {
		if missing[j] {
			values[j] = cell.NoValue()
			continue
		}
		switch kind {
		case intColumn:
			n, _ := parseInt(s)
			values[j] = cell.Int(n)
		case floatColumn:
			f, _ := parseFloat(s)
			values[j] = cell.Float(f)
		default:
			values[j] = cell.Text(s)
		}
	}
	return values
}

func parseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// dedupeColumns renames repeated headers to name.1, name.2, ...
func dedupeColumns(header []string) []string {
	seen := make(map[string]int, len(header))
	taken := make(map[string]struct{}, len(header))
	for _, h := range header {
		taken[h] = struct{}{}
	}

	columns := make([]string, len(header))
	for i, h := range header {
		n, dup := seen[h]
		seen[h] = n + 1
		if !dup {
			columns[i] = h
			continue
		}
		name := fmt.Sprintf("%s.%d", h, n)
		for {
			if _, clash := taken[name]; !clash {
				break
			}
			n++
			name = fmt.Sprintf("%s.%d", h, n)
		}
		seen[h] = n + 1
		taken[name] = struct{}{}
		columns[i] = name
	}
	return columns
}
