package builders

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rdb2csv/rdb2csv/core"
)

// default sql client used by other specific implementations
type Client struct {
	db             *sql.DB
	typeProcessors map[string]func(any) any
}

func NewClient(db *sql.DB, opts ...ClientOption) *Client {
	config := clientConfig{
		typeProcessors: make(map[string]func(any) any),
	}
	for _, opt := range opts {
		opt(&config)
	}

	return &Client{
		db:             db,
		typeProcessors: config.typeProcessors,
	}
}

func (c *Client) Conn(ctx context.Context) (*Conn, error) {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	return &Conn{
		conn:           conn,
		typeProcessors: c.typeProcessors,
	}, nil
}

// Query executes a query on a dedicated connection. The connection is
// released when the returned stream is closed or when the query fails.
func (c *Client) Query(ctx context.Context, query string) (*Result, error) {
	conn, err := c.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("c.Conn: %w", err)
	}

	rows, err := conn.Query(ctx, query)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	rows.onClose(func() { _ = conn.Close() })

	return rows, nil
}

// ColumnsFromQuery executes a given query on a new connection and
// converts the results to columns. A query should return a result that is
// at least 2 columns wide and have the following structure:
//
//	1st elem: name - string
//	2nd elem: type - string
//
// Query is sprintf-ed with args, so ColumnsFromQuery("select a from %s", "table_name") works.
func (c *Client) ColumnsFromQuery(ctx context.Context, query string, args ...any) ([]*core.Column, error) {
	result, err := c.Query(ctx, fmt.Sprintf(query, args...))
	if err != nil {
		return nil, err
	}
	defer result.Close()

	return ColumnsFromResultStream(result)
}

// StructureFromQuery executes a query returning (schema, name, type) rows
// and converts it to a structure tree.
func (c *Client) StructureFromQuery(ctx context.Context, query string, decodeType func(string) core.StructureType) ([]*core.Structure, error) {
	result, err := c.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	return StructureFromResultStream(result, decodeType)
}

func (c *Client) Close() {
	c.db.Close()
}

// connection to use for execution
type Conn struct {
	conn           *sql.Conn
	typeProcessors map[string]func(any) any
}

func (c *Conn) Close() error {
	return c.conn.Close()
}

func (c *Conn) getTypeProcessor(typ string) func(any) any {
	proc, ok := c.typeProcessors[strings.ToLower(typ)]
	if ok {
		return proc
	}

	return func(val any) any {
		valb, ok := val.([]byte)
		if ok {
			return string(valb)
		}
		return val
	}
}

// Query executes a query on a connection and returns a result stream.
func (c *Conn) Query(ctx context.Context, query string) (*Result, error) {
	dbRows, err := c.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	// create new rows
	header, err := dbRows.Columns()
	if err != nil {
		_ = dbRows.Close()
		return nil, err
	}

	dbCols, err := dbRows.ColumnTypes()
	if err != nil {
		_ = dbRows.Close()
		return nil, err
	}

	processors := make([]func(any) any, len(dbCols))
	for i := range dbCols {
		processors[i] = c.getTypeProcessor(dbCols[i].DatabaseTypeName())
	}

	var (
		// dbRows.Next was already called for the upcoming row
		advanced    bool
		hasRow      bool
		errReported bool
	)
	advance := func() {
		if !advanced {
			hasRow = dbRows.Next()
			advanced = true
		}
	}

	hasNextFunc := func() bool {
		advance()
		if hasRow {
			return true
		}
		// an iteration error is reported by one last call to next
		return !errReported && dbRows.Err() != nil
	}

	nextFunc := func() (core.Row, error) {
		advance()
		if !hasRow {
			if err := dbRows.Err(); err != nil && !errReported {
				errReported = true
				return nil, err
			}
			return nil, errNoNextRow
		}
		advanced = false

		columns := make([]any, len(dbCols))
		columnPointers := make([]any, len(dbCols))
		for i := range columns {
			columnPointers[i] = &columns[i]
		}

		if err := dbRows.Scan(columnPointers...); err != nil {
			return nil, err
		}

		row := make(core.Row, len(dbCols))
		for i := range dbCols {
			row[i] = core.ValueOf(processors[i](columns[i]))
		}

		return row, nil
	}

	rows := NewResultStreamBuilder().
		WithNextFunc(nextFunc, hasNextFunc).
		WithHeader(header).
		WithCloseFunc(func() {
			_ = dbRows.Close()
		}).
		Build()

	return rows, nil
}
