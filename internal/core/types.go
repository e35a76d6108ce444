package core

import (
	"iter"
	"strings"
)

// FieldType represents the expected data type for a column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldDate
	FieldAmount
	FieldInteger
)

// FieldSpec defines the rules for a single column.
type FieldSpec struct {
	Name     string    // Column header name
	Type     FieldType // Expected data type
	Required bool      // Value must be present and non-blank
}

// HeaderIndex maps column names (trimmed, lowercase) to their position in a row.
type HeaderIndex map[string]int

// MakeHeaderIndex creates a HeaderIndex from a header row.
// The first occurrence of a duplicated column wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, dup := idx[key]; dup {
			continue
		}
		idx[key] = i
	}
	return idx
}

// Record is one input row: an ordered mapping from column name to raw value.
// Records from the same source share their header and index.
type Record struct {
	Row  int // 1-based data row index, header excluded
	Line int // physical line (CSV) or sheet row (xlsx) in the source

	header []string
	index  HeaderIndex
	values []string
}

// NewRecord builds a record over a header. Values beyond the header are dropped;
// missing trailing values are treated as absent fields.
func NewRecord(row, line int, header []string, index HeaderIndex, values []string) Record {
	if index == nil {
		index = MakeHeaderIndex(header)
	}
	if len(values) > len(header) {
		values = values[:len(header)]
	}
	return Record{Row: row, Line: line, header: header, index: index, values: values}
}

// Get returns the raw value of a field and whether the row carries it.
// Lookup ignores case and surrounding whitespace in the header.
func (r Record) Get(name string) (string, bool) {
	pos, ok := r.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok || pos >= len(r.values) {
		return "", false
	}
	return r.values[pos], true
}

// Value returns the trimmed value of a field, or "" when absent.
func (r Record) Value(name string) string {
	v, _ := r.Get(name)
	return strings.TrimSpace(v)
}

// Len returns the number of fields the row carries.
func (r Record) Len() int {
	return len(r.values)
}

// Fields yields (column, value) pairs in header order, only for fields present in the row.
func (r Record) Fields() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for i, v := range r.values {
			if !yield(CleanCell(r.header[i]), v) {
				return
			}
		}
	}
}
