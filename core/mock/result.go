package mock

import (
	"fmt"
	"time"

	"github.com/rdb2csv/rdb2csv/core"
	"github.com/rdb2csv/rdb2csv/core/builders"
)

var _ core.ResultStream = (*ResultStream)(nil)

type ResultStream struct {
	next    func() (core.Row, error)
	hasNext func() bool
	config  *resultStreamConfig
	calls   int
	closed  bool
}

func makeDefaultHeader(rows []core.Row) core.Header {
	var header core.Header
	if len(rows) > 0 {
		for i := range rows[0] {
			header = append(header, fmt.Sprintf("header_%d", i))
		}
	}
	return header
}

// NewResultStream returns a mocked result stream with provided rows.
// It creates a header that matches the number of columns in the first row
// in form of: <header_0>, <header_1>, etc.
func NewResultStream(rows []core.Row, opts ...ResultStreamOption) *ResultStream {
	config := &resultStreamConfig{
		nextSleep: 0,
		meta:      &core.Meta{},
		header:    makeDefaultHeader(rows),
		failAt:    -1,
	}
	for _, opt := range opts {
		opt(config)
	}

	next, hasNext := builders.NextSlice(rows, func(r core.Row) core.Row { return r })

	return &ResultStream{
		next:    next,
		hasNext: hasNext,
		config:  config,
	}
}

func (rs *ResultStream) Meta() *core.Meta {
	return rs.config.meta
}

func (rs *ResultStream) Header() core.Header {
	return rs.config.header
}

func (rs *ResultStream) Next() (core.Row, error) {
	time.Sleep(rs.config.nextSleep)

	index := rs.calls
	rs.calls++
	if rs.config.failErr != nil && index == rs.config.failAt {
		return nil, rs.config.failErr
	}
	return rs.next()
}

func (rs *ResultStream) HasNext() bool {
	if rs.closed {
		return false
	}
	return rs.hasNext()
}

func (rs *ResultStream) Close() {
	rs.closed = true
}

// NewRows returns a slice of rows in form of:
//
//	{ <index>(int), "row_<index>"(string) }
//
// where the first index is "from" and the last one is one less than "to".
func NewRows(from, to int) []core.Row {
	var rows []core.Row

	for i := from; i < to; i++ {
		rows = append(rows, core.Row{core.Int(int64(i)), core.String(fmt.Sprintf("row_%d", i))})
	}
	return rows
}
