package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/rdb2csv/rdb2csv/core"
)

var _ core.Formatter = (*JSON)(nil)

// JSON formats rows as an array of objects, keys in header order.
type JSON struct{}

func NewJSON() *JSON {
	return &JSON{}
}

// record is a json object that keeps the order of its keys.
type record struct {
	header core.Header
	row    core.Row
}

func (r record) MarshalJSON() ([]byte, error) {
	b := new(bytes.Buffer)
	b.WriteByte('{')
	for i, h := range r.header {
		if i > 0 {
			b.WriteByte(',')
		}

		key, err := json.Marshal(h)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')

		var val any
		if i < len(r.row) {
			val = jsonValue(r.row[i])
		}
		v, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", h, err)
		}
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// jsonValue maps a cell to a value json can encode.
// NaN and infinities have no json number form and are written as strings.
func jsonValue(v core.Value) any {
	f, ok := v.Any().(float64)
	if ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return v.Text()
	}
	return v.Any()
}

func (jf *JSON) Format(header core.Header, rows []core.Row, _ *core.FormatterOptions) ([]byte, error) {
	data := make([]record, 0, len(rows))
	for _, row := range rows {
		data = append(data, record{header: header, row: row})
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json.MarshalIndent: %w", err)
	}

	return out, nil
}
