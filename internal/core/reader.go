package core

// reader.go implements the record reader: a header row followed by data rows,
// exposed as a lazy sequence of Records in file order.
//
// Two sources are supported:
//   - CSV (default): standard comma-separated values, quoted fields may contain
//     the delimiter. A leading UTF-8 BOM is skipped.
//   - XLSX (.xlsx, .xlsm): the first worksheet, read row by row.
//
// Any row that cannot be decoded stops the sequence with a MalformedInputError.

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// rowSource yields raw rows with their physical line number.
// Next returns io.EOF after the last row.
type rowSource interface {
	Next() (values []string, line int, err error)
	Close() error
}

// RecordReader reads Records from a tabular source.
type RecordReader struct {
	name   string
	src    rowSource
	header []string
	index  HeaderIndex
	rows   int
}

// OpenRecords opens a CSV or XLSX file and reads its header row.
// The caller must Close the reader.
func OpenRecords(path string) (*RecordReader, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &InputNotFoundError{Path: path}
	}
	if err != nil {
		return nil, &MalformedInputError{Path: path, Reason: "cannot access input", Err: err}
	}
	if info.IsDir() {
		return nil, &MalformedInputError{Path: path, Reason: "input is a directory"}
	}

	var src rowSource
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		src, err = openXLSX(path)
	default:
		src, err = openCSVFile(path)
	}
	if err != nil {
		return nil, &MalformedInputError{Path: path, Reason: "cannot open input", Err: err}
	}

	return newRecordReader(path, src)
}

// NewCSVReader reads CSV records from r. name is used in error messages only.
func NewCSVReader(r io.Reader, name string) (*RecordReader, error) {
	return newRecordReader(name, newCSVSource(r, nil))
}

func newRecordReader(name string, src rowSource) (*RecordReader, error) {
	rr := &RecordReader{name: name, src: src}

	header, line, err := src.Next()
	if err == io.EOF || (err == nil && isBlankRow(header)) {
		src.Close()
		return nil, &MalformedInputError{Path: name, Reason: "missing header row"}
	}
	if err != nil {
		src.Close()
		return nil, rr.decodeError(line, err)
	}
	if !validUTF8(header) {
		src.Close()
		return nil, &MalformedInputError{Path: name, Line: line, Reason: "header is not valid UTF-8"}
	}

	rr.header = header
	rr.index = MakeHeaderIndex(header)
	return rr, nil
}

// Header returns the column names as they appear in the source.
func (r *RecordReader) Header() []string {
	out := make([]string, len(r.header))
	for i, h := range r.header {
		out[i] = CleanCell(h)
	}
	return out
}

// HasColumn reports whether the header declares the named column.
func (r *RecordReader) HasColumn(name string) bool {
	_, ok := r.index[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Records yields each data row in order. After an error is yielded the
// sequence ends.
func (r *RecordReader) Records() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			values, line, err := r.src.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Record{}, r.decodeError(line, err))
				return
			}
			if len(values) == 0 {
				continue
			}
			if !validUTF8(values) {
				yield(Record{}, &MalformedInputError{Path: r.name, Line: line, Reason: "row is not valid UTF-8"})
				return
			}

			r.rows++
			if !yield(NewRecord(r.rows, line, r.header, r.index, values), nil) {
				return
			}
		}
	}
}

// Close releases the underlying file.
func (r *RecordReader) Close() error {
	return r.src.Close()
}

// Collect drains a record sequence, stopping at the first error.
func Collect(seq iter.Seq2[Record, error]) ([]Record, error) {
	var out []Record
	for rec, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *RecordReader) decodeError(line int, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		line = pe.Line
		err = pe.Err
	}
	return &MalformedInputError{Path: r.name, Line: line, Reason: "cannot decode row", Err: err}
}

func validUTF8(values []string) bool {
	for _, v := range values {
		if !utf8.ValidString(v) {
			return false
		}
	}
	return true
}

func isBlankRow(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

/* ----------------------------------------
	CSV source
---------------------------------------- */

type csvSource struct {
	r      *csv.Reader
	closer io.Closer
}

func openCSVFile(path string) (*csvSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return newCSVSource(f, f), nil
}

func newCSVSource(r io.Reader, closer io.Closer) *csvSource {
	cr := csv.NewReader(NewBOMSkippingReader(r))
	cr.FieldsPerRecord = -1 // short and long rows are handled per record
	return &csvSource{r: cr, closer: closer}
}

func (s *csvSource) Next() ([]string, int, error) {
	rec, err := s.r.Read()
	if err != nil {
		return nil, 0, err
	}
	line, _ := s.r.FieldPos(0)
	return rec, line, nil
}

func (s *csvSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

/* ----------------------------------------
	XLSX source
---------------------------------------- */

type xlsxSource struct {
	f    *excelize.File
	rows *excelize.Rows
	line int
}

func openXLSX(path string) (*xlsxSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}

	sheet := f.GetSheetName(0)
	if sheet == "" {
		f.Close()
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return &xlsxSource{f: f, rows: rows}, nil
}

func (s *xlsxSource) Next() ([]string, int, error) {
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			return nil, s.line, err
		}
		return nil, s.line, io.EOF
	}
	s.line++
	cols, err := s.rows.Columns()
	if err != nil {
		return nil, s.line, err
	}
	return cols, s.line, nil
}

func (s *xlsxSource) Close() error {
	rowsErr := s.rows.Close()
	if err := s.f.Close(); err != nil {
		return err
	}
	return rowsErr
}
