package mock

import (
	"context"

	"github.com/rdb2csv/rdb2csv/core"
)

type table struct {
	header core.Header
	rows   []core.Row
}

type adapterConfig struct {
	tables           map[string]map[string]table
	connectErrors    map[string]error
	querySideEffects map[string]func(context.Context) error

	resultStreamOptions []ResultStreamOption
}

type AdapterOption func(*adapterConfig)

// AdapterWithTable adds a table with rows to a source.
func AdapterWithTable(source, name string, header core.Header, rows []core.Row) AdapterOption {
	return func(c *adapterConfig) {
		tables, ok := c.tables[source]
		if !ok {
			tables = make(map[string]table)
			c.tables[source] = tables
		}

		_, ok = tables[name]
		if ok {
			panic("table already registered for source: " + source + "." + name)
		}

		tables[name] = table{header: header, rows: rows}
	}
}

// AdapterWithSource adds an empty source (a database without tables).
func AdapterWithSource(source string) AdapterOption {
	return func(c *adapterConfig) {
		if _, ok := c.tables[source]; !ok {
			c.tables[source] = make(map[string]table)
		}
	}
}

// AdapterWithConnectError makes connecting to source fail with err.
func AdapterWithConnectError(source string, err error) AdapterOption {
	return func(c *adapterConfig) {
		c.connectErrors[source] = err
	}
}

func AdapterWithQuerySideEffect(query string, sideEffect func(context.Context) error) AdapterOption {
	return func(c *adapterConfig) {
		_, ok := c.querySideEffects[query]
		if ok {
			panic("side effect already registered for query: " + query)
		}

		c.querySideEffects[query] = sideEffect
	}
}

func AdapterWithResultStreamOpts(opts ...ResultStreamOption) AdapterOption {
	return func(c *adapterConfig) {
		c.resultStreamOptions = append(c.resultStreamOptions, opts...)
	}
}
