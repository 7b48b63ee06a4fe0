package format

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rdb2csv/rdb2csv/core"
)

var _ core.Formatter = (*CSV)(nil)

// CSV formats rows as delimited text with a header line.
// Null values are written as empty fields.
type CSV struct {
	comma rune
}

type CSVOption func(*CSV)

// CSVWithComma sets the field delimiter (',' by default).
func CSVWithComma(comma rune) CSVOption {
	return func(c *CSV) {
		c.comma = comma
	}
}

func NewCSV(opts ...CSVOption) *CSV {
	c := &CSV{
		comma: ',',
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (cf *CSV) parseSchemaFul(header core.Header, rows []core.Row) [][]string {
	data := [][]string{
		header,
	}
	for _, row := range rows {
		csvRow := make([]string, len(header))
		for i := range csvRow {
			if i < len(row) {
				csvRow[i] = row[i].Text()
			}
		}
		data = append(data, csvRow)
	}

	return data
}

func (cf *CSV) Format(header core.Header, rows []core.Row, _ *core.FormatterOptions) ([]byte, error) {
	data := cf.parseSchemaFul(header, rows)

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)
	w.Comma = cf.comma

	for _, rec := range data {
		// a lone empty field would be written as a blank line, which readers skip
		if len(rec) == 1 && rec[0] == "" {
			w.Flush()
			b.WriteString(`""` + "\n")
			continue
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("w.Write: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("w.Flush: %w", err)
	}

	return b.Bytes(), nil
}
