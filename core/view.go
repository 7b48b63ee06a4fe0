package core

import (
	"fmt"
	"strconv"
)

// NullText is the default text a View shows for null cells.
const NullText = "NULL"

// TableModel is the read-only grid contract consumed by presentation layers.
type TableModel interface {
	RowCount() int
	ColumnCount() int
	Cell(row, col int) (string, error)
	ColumnLabel(col int) (string, error)
	RowLabel(row int) (string, error)
}

var _ TableModel = (*View)(nil)

// View exposes a dataset as a TableModel. The dataset is resolved from the
// source on every call, so a view bound to an Aggregator always shows the
// result of the last completed run.
type View struct {
	source   DatasetSource
	nullText string
}

type ViewOption func(*View)

// ViewWithNullText sets the text used for null cells.
func ViewWithNullText(text string) ViewOption {
	return func(v *View) {
		v.nullText = text
	}
}

func NewView(source DatasetSource, opts ...ViewOption) *View {
	v := &View{
		source:   source,
		nullText: NullText,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *View) dataset() *Dataset {
	if v.source == nil {
		return NewDataset()
	}
	ds := v.source.Dataset()
	if ds == nil {
		return NewDataset()
	}
	return ds
}

func (v *View) NullText() string {
	return v.nullText
}

func (v *View) RowCount() int {
	return v.dataset().Len()
}

func (v *View) ColumnCount() int {
	return v.dataset().Width()
}

func (v *View) Cell(row, col int) (string, error) {
	val, err := v.dataset().Cell(row, col)
	if err != nil {
		return "", err
	}
	if val.IsNull() {
		return v.nullText, nil
	}
	return val.Text(), nil
}

func (v *View) ColumnLabel(col int) (string, error) {
	header := v.dataset().Header()
	if col < 0 || col >= len(header) {
		return "", fmt.Errorf("column %d of %d: %w", col, len(header), ErrIndexOutOfRange)
	}
	return header[col], nil
}

// RowLabel returns the position of the row in the dataset.
func (v *View) RowLabel(row int) (string, error) {
	length := v.dataset().Len()
	if row < 0 || row >= length {
		return "", fmt.Errorf("row %d of %d: %w", row, length, ErrIndexOutOfRange)
	}
	return strconv.Itoa(row), nil
}
