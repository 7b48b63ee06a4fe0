package adapters

import (
	"context"

	"github.com/rdb2csv/rdb2csv/core"
	"github.com/rdb2csv/rdb2csv/core/builders"
)

var _ core.Driver = (*sqliteDriver)(nil)

type sqliteDriver struct {
	c *builders.Client
}

func (d *sqliteDriver) Query(ctx context.Context, query string) (core.ResultStream, error) {
	return d.c.Query(ctx, query)
}

func (d *sqliteDriver) Columns(ctx context.Context, table string) ([]*core.Column, error) {
	return d.c.ColumnsFromQuery(ctx, "SELECT name, type FROM pragma_table_info(%s)", quoteLiteral(table))
}

func (d *sqliteDriver) Structure(ctx context.Context) ([]*core.Structure, error) {
	// sqlite is single schema structure, so we hardcode the name of it.
	query := "SELECT 'main' AS schema, name, type FROM sqlite_schema"

	return d.c.StructureFromQuery(ctx, query, getSQLiteStructureType)
}

func getSQLiteStructureType(typ string) core.StructureType {
	switch typ {
	case "table":
		return core.StructureTypeTable
	case "view":
		return core.StructureTypeView
	default:
		return core.StructureTypeNone
	}
}

func (d *sqliteDriver) Close() { d.c.Close() }
