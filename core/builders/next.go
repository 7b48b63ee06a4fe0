package builders

import (
	"github.com/rdb2csv/rdb2csv/core"
)

// NextSlice creates next and hasNext functions from provided values.
// toRow converts a single value from the slice to a row.
func NextSlice[T any](values []T, toRow func(T) core.Row) (func() (core.Row, error), func() bool) {
	index := 0

	hasNext := func() bool {
		return index < len(values)
	}

	// iterator functions
	next := func() (core.Row, error) {
		if !hasNext() {
			return nil, errNoNextRow
		}

		row := toRow(values[index])
		index++
		return row, nil
	}

	return next, hasNext
}
