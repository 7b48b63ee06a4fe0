package handler

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/rdb2csv/rdb2csv/core"
)

var _ core.Formatter = (*Table)(nil)

// Table renders rows as an aligned text grid with row labels in the first column.
type Table struct{}

func newTable() *Table {
	return &Table{}
}

func (tf *Table) Format(header core.Header, rows []core.Row, opts *core.FormatterOptions) ([]byte, error) {
	labels := make([]string, 0, len(rows))
	cells := make([][]string, 0, len(rows))

	index := opts.ChunkStart
	for _, row := range rows {
		line := make([]string, len(header))
		for i := range line {
			if i >= len(row) || row[i].IsNull() {
				line[i] = opts.NullText
				continue
			}
			line[i] = row[i].Text()
		}

		labels = append(labels, strconv.Itoa(index))
		cells = append(cells, line)
		index += 1
	}

	return renderTable(header, labels, cells), nil
}

// formatView renders the rows from-to of a table model.
func formatView(model core.TableModel, from, to int) ([]byte, error) {
	header := make([]string, model.ColumnCount())
	for col := range header {
		label, err := model.ColumnLabel(col)
		if err != nil {
			return nil, err
		}
		header[col] = label
	}

	var labels []string
	var cells [][]string
	for row := from; row < to; row++ {
		label, err := model.RowLabel(row)
		if err != nil {
			return nil, err
		}

		line := make([]string, len(header))
		for col := range line {
			line[col], err = model.Cell(row, col)
			if err != nil {
				return nil, err
			}
		}

		labels = append(labels, label)
		cells = append(cells, line)
	}

	return renderTable(header, labels, cells), nil
}

func renderTable(header []string, labels []string, cells [][]string) []byte {
	tableHeaders := []any{""}
	for _, k := range header {
		tableHeaders = append(tableHeaders, k)
	}

	var tableRows []table.Row
	for i, line := range cells {
		indexedRow := []any{labels[i]}
		for _, cell := range line {
			indexedRow = append(indexedRow, cell)
		}
		tableRows = append(tableRows, table.Row(indexedRow))
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row(tableHeaders))
	t.AppendRows(tableRows)
	t.AppendSeparator()
	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false
	t.SuppressTrailingSpaces()

	return []byte(t.Render())
}
