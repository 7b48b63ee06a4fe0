package mock

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rdb2csv/rdb2csv/core"
)

var ErrUnknownSource = errors.New("unable to open database file")

var _ core.Driver = (*driver)(nil)

type driver struct {
	source  string
	tables  map[string]table
	config  *adapterConfig
	adapter *Adapter
	once    sync.Once
}

func (d *driver) Query(ctx context.Context, query string) (core.ResultStream, error) {
	eff, ok := d.config.querySideEffects[query]
	if ok {
		err := eff(ctx)
		if err != nil {
			return nil, fmt.Errorf("side effect error: %w", err)
		}
	}

	for name, t := range d.tables {
		if query != "SELECT * FROM "+core.QuoteIdent(name) {
			continue
		}

		opts := append([]ResultStreamOption{
			ResultStreamWithHeader(t.header),
			ResultStreamWithMeta(&core.Meta{Source: d.source}),
		}, d.config.resultStreamOptions...)

		return NewResultStream(t.rows, opts...), nil
	}

	return nil, fmt.Errorf("unsupported query: %s", query)
}

func (d *driver) Structure(ctx context.Context) ([]*core.Structure, error) {
	names := make([]string, 0, len(d.tables))
	for name := range d.tables {
		names = append(names, name)
	}
	sort.Strings(names)

	schema := &core.Structure{
		Name:   "main",
		Schema: "main",
	}
	for _, name := range names {
		schema.Children = append(schema.Children, &core.Structure{
			Name:   name,
			Schema: "main",
			Type:   core.StructureTypeTable,
		})
	}

	return []*core.Structure{schema}, nil
}

func (d *driver) Columns(ctx context.Context, name string) ([]*core.Column, error) {
	t, ok := d.tables[name]
	if !ok {
		return nil, fmt.Errorf("unknown table: %s", name)
	}

	columns := make([]*core.Column, 0, len(t.header))
	for _, h := range t.header {
		columns = append(columns, &core.Column{Name: h})
	}

	return columns, nil
}

func (d *driver) Close() {
	d.once.Do(d.adapter.release)
}

var _ core.Adapter = (*Adapter)(nil)

// Adapter is an in-memory adapter where each source is a set of tables.
type Adapter struct {
	config *adapterConfig

	mu    sync.Mutex
	open  int
	calls []string
}

func NewAdapter(opts ...AdapterOption) *Adapter {
	config := &adapterConfig{
		tables:           make(map[string]map[string]table),
		connectErrors:    make(map[string]error),
		querySideEffects: make(map[string]func(context.Context) error),

		resultStreamOptions: []ResultStreamOption{},
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Adapter{
		config: config,
	}
}

func (a *Adapter) Connect(source string) (core.Driver, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.calls = append(a.calls, source)

	if err, ok := a.config.connectErrors[source]; ok {
		return nil, err
	}

	tables, ok := a.config.tables[source]
	if !ok {
		return nil, ErrUnknownSource
	}

	a.open++
	return &driver{
		source:  source,
		tables:  tables,
		config:  a.config,
		adapter: a,
	}, nil
}

func (a *Adapter) release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.open--
}

// OpenConnections returns the number of drivers that were not closed yet.
func (a *Adapter) OpenConnections() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.open
}

// Connected returns the sources passed to Connect in call order.
func (a *Adapter) Connected() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.calls...)
}
