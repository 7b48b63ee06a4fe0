package builders

import (
	"errors"
	"sync"

	"github.com/rdb2csv/rdb2csv/core"
)

var errNoNextRow = errors.New("no next row")

var _ core.ResultStream = (*Result)(nil)

// Result fills core.ResultStream interface for all sql dbs
type Result struct {
	next     func() (core.Row, error)
	hasNext  func() bool
	close   []func()
	meta    *core.Meta
	header  core.Header
	once    sync.Once
}

// onClose registers fn to be called after the result's own close function.
func (r *Result) onClose(fn func()) {
	r.close = append(r.close, fn)
}

func (r *Result) Meta() *core.Meta {
	return r.meta
}

func (r *Result) Header() core.Header {
	return r.header
}

func (r *Result) HasNext() bool {
	return r.hasNext()
}

func (r *Result) Next() (core.Row, error) {
	rows, err := r.next()
	if err != nil || rows == nil {
		r.Close()
		return nil, err
	}
	return rows, nil
}

// Close releases the result. It is safe to call more than once.
func (r *Result) Close() {
	r.once.Do(func() {
		for _, fn := range r.close {
			fn()
		}
	})
	r.hasNext = func() bool {
		return false
	}
}

// ResultStreamBuilder builds the rows
type ResultStreamBuilder struct {
	next    func() (core.Row, error)
	hasNext func() bool
	header  core.Header
	close   func()
	meta    *core.Meta
}

func NewResultStreamBuilder() *ResultStreamBuilder {
	return &ResultStreamBuilder{
		next:    func() (core.Row, error) { return nil, errNoNextRow },
		hasNext: func() bool { return false },
		header:  core.Header{},
		close:   func() {},
		meta:    &core.Meta{},
	}
}

func (b *ResultStreamBuilder) WithNextFunc(fn func() (core.Row, error), has func() bool) *ResultStreamBuilder {
	b.next = fn
	b.hasNext = has
	return b
}

func (b *ResultStreamBuilder) WithHeader(header core.Header) *ResultStreamBuilder {
	b.header = header
	return b
}

func (b *ResultStreamBuilder) WithCloseFunc(fn func()) *ResultStreamBuilder {
	b.close = fn
	return b
}

func (b *ResultStreamBuilder) WithMeta(meta *core.Meta) *ResultStreamBuilder {
	b.meta = meta
	return b
}

func (b *ResultStreamBuilder) Build() *Result {
	return &Result{
		next:    b.next,
		hasNext: b.hasNext,
		header:  b.header,
		close:   []func(){b.close},
		meta:    b.meta,
	}
}
