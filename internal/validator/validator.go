package validator

import (
	"fmt"
	"strings"

	"github.com/arcanaland/cardconv/internal/card"
	"github.com/arcanaland/cardconv/internal/table"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	TablePath string
	Options   table.Options
	Results   ValidationResults
}

func NewValidator(tablePath string, opts table.Options) *Validator {
	return &Validator{
		TablePath: tablePath,
		Options:   opts,
		Results:   ValidationResults{},
	}
}

// Validate checks that the table can be converted. Only the header is
// inspected; cell values are always recoverable.
func (v *Validator) Validate() (ValidationResults, error) {
	t, err := table.ReadFile(v.TablePath, v.Options)
	if err != nil {
		return v.Results, err
	}

	v.validateColumns(t.Columns)
	v.validateRows(t)

	return v.Results, nil
}

// validateColumns checks the header against the card builder's columns
func (v *Validator) validateColumns(columns []string) {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}

	var missingRequired []string
	for _, c := range card.RequiredColumns {
		if !present[c] {
			missingRequired = append(missingRequired, c)
		}
	}
	if len(missingRequired) > 0 {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("missing required columns: %s", strings.Join(missingRequired, ", ")))
	}

	var missingOptional []string
	for _, c := range card.OptionalColumns {
		if !present[c] {
			missingOptional = append(missingOptional, c)
		}
	}
	if len(missingOptional) > 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("missing optional columns (defaults will be used): %s", strings.Join(missingOptional, ", ")))
	}

	// Renamed duplicates look like "HP.1"
	for _, c := range columns {
		if i := strings.LastIndex(c, "."); i > 0 && isDigits(c[i+1:]) && present[c[:i]] {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("duplicate column %s read as %s", c[:i], c))
		}
	}
}

// validateRows checks the table body
func (v *Validator) validateRows(t *table.Table) {
	if len(t.Rows) == 0 {
		v.Results.Warnings = append(v.Results.Warnings, "table has no card rows")
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
