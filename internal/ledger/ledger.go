// Package ledger is the append-only study table and its rendered views.
package ledger

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"slices"

	"github.com/K0NGR3SS/slrledger/internal/storage"
)

// Table is the ledger held in memory: a header and rows of equal width.
type Table struct {
	Header []string
	Rows   [][]string
}

// Parse reads CSV data. Empty input gives an empty table.
func Parse(data []byte) (*Table, error) {
	t := &Table{}
	if len(bytes.TrimSpace(data)) == 0 {
		return t, nil
	}

	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLedger, err)
	}
	t.Header = records[0]
	t.Rows = records[1:]
	return t, nil
}

// Load reads the ledger from backend. A ledger that does not exist yet is
// an empty table with header; a ledger that exists but does not parse is
// an error.
func Load(ctx context.Context, backend storage.Backend, name string, header []string) (*Table, error) {
	ok, err := backend.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Table{Header: slices.Clone(header)}, nil
	}
	data, err := backend.Read(ctx, name)
	if err != nil {
		return nil, err
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(t.Header) == 0 {
		t.Header = slices.Clone(header)
	}
	return t, nil
}

// Bytes renders the table as CSV.
func (t *Table) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the full table back to backend.
func (t *Table) Save(ctx context.Context, backend storage.Backend, name string) error {
	data, err := t.Bytes()
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	if err := backend.Write(ctx, name, data); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Append adds one row. Columns the table lacks are added to the end of the
// header, with absent filled into every existing row; columns the row lacks
// get absent. Existing cells are never moved or changed.
func (t *Table) Append(columns, values []string, absent string) error {
	if len(columns) != len(values) {
		return fmt.Errorf("%w: %d columns, %d values", ErrColumnMismatch, len(columns), len(values))
	}

	for _, c := range columns {
		if slices.Contains(t.Header, c) {
			continue
		}
		t.Header = append(t.Header, c)
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], absent)
		}
	}

	row := make([]string, len(t.Header))
	for i, h := range t.Header {
		row[i] = absent
		if j := slices.Index(columns, h); j >= 0 {
			row[i] = values[j]
		}
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Column returns every cell of the named column, or nil if absent.
func (t *Table) Column(name string) []string {
	idx := slices.Index(t.Header, name)
	if idx < 0 {
		return nil
	}
	out := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, r[idx])
	}
	return out
}
