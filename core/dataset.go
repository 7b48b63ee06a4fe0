package core

import (
	"fmt"

	"github.com/google/uuid"
)

type DatasetID string

// SourceSummary is the contribution of a single source to a dataset.
type SourceSummary struct {
	Source string
	Rows   int
}

// Dataset is the unified result of an aggregation run: every row of every
// loaded source expressed against a single column order.
//
// A dataset is only modified by the aggregation run that creates it
// and is read-only afterwards.
type Dataset struct {
	id      DatasetID
	header  Header
	rows    []Row
	sources []SourceSummary
}

func NewDataset() *Dataset {
	return &Dataset{
		id:      DatasetID(uuid.New().String()),
		header:  Header{},
		rows:    []Row{},
		sources: []SourceSummary{},
	}
}

// Dataset implements DatasetSource, so a dataset can be bound to a view directly.
func (d *Dataset) Dataset() *Dataset {
	return d
}

func (d *Dataset) ID() DatasetID {
	return d.id
}

// Header returns the unified column order. It must not be modified.
func (d *Dataset) Header() Header {
	return d.header
}

func (d *Dataset) Len() int {
	return len(d.rows)
}

func (d *Dataset) Width() int {
	return len(d.header)
}

func (d *Dataset) IsEmpty() bool {
	return len(d.rows) == 0
}

// Sources returns the sources that contributed to the dataset in load order.
func (d *Dataset) Sources() []SourceSummary {
	return append([]SourceSummary(nil), d.sources...)
}

// Cell returns the value at the given coordinates.
func (d *Dataset) Cell(row, col int) (Value, error) {
	if row < 0 || row >= len(d.rows) {
		return Value{}, fmt.Errorf("row %d of %d: %w", row, len(d.rows), ErrIndexOutOfRange)
	}
	if col < 0 || col >= len(d.header) {
		return Value{}, fmt.Errorf("column %d of %d: %w", col, len(d.header), ErrIndexOutOfRange)
	}

	return d.rows[row][col], nil
}

// Rows returns the row range from-to. Negative indexes count from the end,
// -1 being the position after the last row.
func (d *Dataset) Rows(from, to int) ([]Row, error) {
	rows, _, _, err := d.getRows(from, to)
	return rows, err
}

// Format formats the selected row range with formatter.
func (d *Dataset) Format(formatter Formatter, from, to int, nullText string) ([]byte, error) {
	rows, fromAdjusted, _, err := d.getRows(from, to)
	if err != nil {
		return nil, fmt.Errorf("d.getRows: %w", err)
	}

	opts := &FormatterOptions{
		ChunkStart: fromAdjusted,
		NullText:   nullText,
	}

	f, err := formatter.Format(d.header, rows, opts)
	if err != nil {
		return nil, fmt.Errorf("formatter.Format: %w", err)
	}

	return f, nil
}

// getRows returns the row range and adjusted from-to values
func (d *Dataset) getRows(from, to int) (rows []Row, rangeFrom, rangeTo int, err error) {
	// validation
	if (from < 0 && to < 0) || (from >= 0 && to >= 0) {
		if from > to {
			return nil, 0, 0, ErrInvalidRange(from, to)
		}
	}
	// undefined -> error
	if from < 0 && to >= 0 {
		return nil, 0, 0, ErrInvalidRange(from, to)
	}

	// calculate range
	length := len(d.rows)
	if from < 0 {
		from += length + 1
		if from < 0 {
			from = 0
		}
	}
	if to < 0 {
		to += length + 1
		if to < 0 {
			to = 0
		}
	}

	if from > length {
		from = length
	}
	if to > length {
		to = length
	}

	return d.rows[from:to], from, to, nil
}

// append reconciles set into the dataset. Rows accepted earlier are widened
// with nulls when set introduces new columns.
func (d *Dataset) append(set *RowSet) {
	header, rows := Reconcile(d.header, set)

	if len(header) > len(d.header) {
		widen(d.rows, len(header))
	}

	d.header = header
	d.rows = append(d.rows, rows...)
	d.sources = append(d.sources, SourceSummary{
		Source: set.Source,
		Rows:   len(rows),
	})
}
