package adapters

import (
	"context"
	"fmt"

	"github.com/rdb2csv/rdb2csv/core"
	"github.com/rdb2csv/rdb2csv/core/builders"
)

var _ core.Driver = (*duckDriver)(nil)

type duckDriver struct {
	c         *builders.Client
	currentDB string
}

func (d *duckDriver) Query(ctx context.Context, query string) (core.ResultStream, error) {
	return d.c.Query(ctx, query)
}

func (d *duckDriver) Columns(ctx context.Context, table string) ([]*core.Column, error) {
	return d.c.ColumnsFromQuery(ctx, "DESCRIBE %s", core.QuoteIdent(table))
}

func (d *duckDriver) Structure(ctx context.Context) ([]*core.Structure, error) {
	catalogQuery := fmt.Sprintf(`
		SELECT table_schema, table_name, table_type
		FROM information_schema.tables
		WHERE table_catalog = %s;`,
		quoteLiteral(d.currentDB))

	return d.c.StructureFromQuery(ctx, catalogQuery, getDuckDBStructureType)
}

// getDuckDBStructureType returns the core.StructureType based on the
// given type string for duckdb adapter.
func getDuckDBStructureType(typ string) core.StructureType {
	switch typ {
	case "BASE TABLE":
		return core.StructureTypeTable
	case "VIEW":
		return core.StructureTypeView
	default:
		return core.StructureTypeNone
	}
}

// Close closes the connection to the database.
func (d *duckDriver) Close() {
	d.c.Close()
}
