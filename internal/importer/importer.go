// Package importer reads tabular sales exports into RawRecords. Readers
// only lift cells out of the table; all validation happens downstream.
package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledgercast-dev/ledgercast/internal/model"
)

// Parser converts one tabular input into RawRecords.
type Parser interface {
	Parse(r io.Reader) ([]model.RawRecord, error)
	Format() string
}

// Columns maps the four semantic columns onto their possible header
// names. The source exports carry Georgian headers; English fallbacks
// cover hand-made files.
type Columns struct {
	Organization []string `yaml:"organization"`
	Amount       []string `yaml:"amount"`
	Date         []string `yaml:"date"`
	Note         []string `yaml:"note"`
}

// DefaultColumns returns the header aliases of the Georgian sales export.
func DefaultColumns() Columns {
	return Columns{
		Organization: []string{"ორგანიზაცია", "organization"},
		Amount:       []string{"თანხა", "amount"},
		Date:         []string{"გააქტიურების თარ.", "date"},
		Note:         []string{"დანიშნულება", "payment_method", "note"},
	}
}

// SchemaError is fatal for the whole run: a required column is absent
// from the input table. Nothing is emitted when it occurs.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("input table missing required column(s): %s", strings.Join(e.Missing, ", "))
}

// columnIndex holds the resolved position of each semantic column.
type columnIndex struct {
	org, amount, date, note int
}

// resolve matches a header row against the alias lists. English aliases
// match case-insensitively.
func (c Columns) resolve(header []string) (columnIndex, error) {
	find := func(aliases []string) int {
		for i, cell := range header {
			cell = strings.TrimSpace(cell)
			for _, alias := range aliases {
				if strings.EqualFold(cell, alias) {
					return i
				}
			}
		}
		return -1
	}

	idx := columnIndex{
		org:    find(c.Organization),
		amount: find(c.Amount),
		date:   find(c.Date),
		note:   find(c.Note),
	}

	missing := map[string]int{
		"organization":   idx.org,
		"amount":         idx.amount,
		"date":           idx.date,
		"payment method": idx.note,
	}
	var absent []string
	for name, i := range missing {
		if i < 0 {
			absent = append(absent, name)
		}
	}
	if len(absent) > 0 {
		sort.Strings(absent)
		return columnIndex{}, &SchemaError{Missing: absent}
	}
	return idx, nil
}

// record builds a RawRecord from one body row. row is the 1-based row
// number in the file, header included.
func (idx columnIndex) record(row int, cells []string) model.RawRecord {
	cell := func(i int) string {
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}
	return model.RawRecord{
		Row:          row,
		Organization: cell(idx.org),
		Amount:       cell(idx.amount),
		Date:         cell(idx.date),
		Note:         cell(idx.note),
	}
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// ForPath returns the parser matching a file's extension.
func (r *Registry) ForPath(path string) (Parser, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	p := r.Get(ext)
	if p == nil {
		return nil, fmt.Errorf("no parser for %q files", ext)
	}
	return p, nil
}

// DefaultRegistry returns a registry with all built-in parsers bound to
// the given column aliases.
func DefaultRegistry(cols Columns) *Registry {
	r := NewRegistry()
	r.Register(&CSVParser{Columns: cols})
	r.Register(&XLSXParser{Columns: cols})
	return r
}
