package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// TargetTable is the table read from every source.
const TargetTable = "logdata"

type (
	// Adapter is an object which allows to connect to a database file via its path.
	Adapter interface {
		Connect(source string) (Driver, error)
	}

	// Driver is an interface for a specific database driver
	Driver interface {
		Query(ctx context.Context, query string) (ResultStream, error)
		Structure(ctx context.Context) ([]*Structure, error)
		Columns(ctx context.Context, table string) ([]*Column, error)
		Close()
	}
)

// SourceReader reads the target table of a single source.
type SourceReader interface {
	ReadTable(ctx context.Context, source string) (*RowSet, error)
}

var _ SourceReader = (*Reader)(nil)

// Reader is the row source adapter: it opens one source at a time
// and materializes every row of the target table.
type Reader struct {
	adapter Adapter
	table   string
	log     logrus.FieldLogger
}

type readerConfig struct {
	table string
	log   logrus.FieldLogger
}

type ReaderOption func(*readerConfig)

// ReaderWithTable overrides the TargetTable.
func ReaderWithTable(table string) ReaderOption {
	return func(c *readerConfig) {
		if table != "" {
			c.table = table
		}
	}
}

func ReaderWithLogger(log logrus.FieldLogger) ReaderOption {
	return func(c *readerConfig) {
		if log != nil {
			c.log = log
		}
	}
}

func NewReader(adapter Adapter, opts ...ReaderOption) *Reader {
	config := readerConfig{
		table: TargetTable,
		log:   discardLogger(),
	}
	for _, opt := range opts {
		opt(&config)
	}

	return &Reader{
		adapter: adapter,
		table:   config.table,
		log:     config.log,
	}
}

// Table returns the name of the table the reader scans.
func (r *Reader) Table() string {
	return r.table
}

// open connects to the source and makes sure the target table is present.
// The caller closes the returned driver.
func (r *Reader) open(ctx context.Context, source string) (Driver, error) {
	driver, err := r.adapter.Connect(source)
	if err != nil {
		return nil, newSourceError(source, ErrSourceUnreadable, fmt.Errorf("adapter.Connect: %w", err))
	}

	structure, err := driver.Structure(ctx)
	if err != nil {
		driver.Close()
		return nil, newSourceError(source, ErrSourceUnreadable, fmt.Errorf("driver.Structure: %w", err))
	}

	if !HasRelation(structure, r.table) {
		driver.Close()
		return nil, newSourceError(source, ErrTableMissing, fmt.Errorf("no table named %q", r.table))
	}

	return driver, nil
}

// ReadTable scans all rows and columns of the target table.
// The connection is released on every return path.
func (r *Reader) ReadTable(ctx context.Context, source string) (*RowSet, error) {
	driver, err := r.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer driver.Close()

	stream, err := driver.Query(ctx, "SELECT * FROM "+QuoteIdent(r.table))
	if err != nil {
		return nil, newSourceError(source, ErrSourceUnreadable, fmt.Errorf("driver.Query: %w", err))
	}
	defer stream.Close()

	set := &RowSet{
		Source: source,
		Header: append(Header(nil), stream.Header()...),
		Rows:   make([]Row, 0),
	}

	for stream.HasNext() {
		row, err := stream.Next()
		if err != nil {
			return nil, newSourceError(source, ErrSourceUnreadable, fmt.Errorf("stream.Next: %w", err))
		}
		set.Rows = append(set.Rows, row)
	}

	r.log.WithFields(logrus.Fields{
		"source":  source,
		"rows":    set.Len(),
		"columns": len(set.Header),
	}).Debug("read table")

	return set, nil
}

// Describe returns the declared columns of the target table.
func (r *Reader) Describe(ctx context.Context, source string) ([]*Column, error) {
	driver, err := r.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer driver.Close()

	columns, err := driver.Columns(ctx, r.table)
	if err != nil {
		return nil, newSourceError(source, ErrSourceUnreadable, fmt.Errorf("driver.Columns: %w", err))
	}

	return columns, nil
}

// QuoteIdent quotes an sql identifier with double quotes.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
