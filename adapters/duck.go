//go:build cgo && ((darwin && (amd64 || arm64)) || (linux && (amd64 || arm64 || riscv64)))

package adapters

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/rdb2csv/rdb2csv/core"
	"github.com/rdb2csv/rdb2csv/core/builders"
)

// Register client
func init() {
	_ = register(&Duck{}, "duck", "duckdb")
}

var _ core.Adapter = (*Duck)(nil)

// Duck opens duckdb database files in read only access mode.
type Duck struct{}

func (d *Duck) Connect(path string) (core.Driver, error) {
	abs, err := existingFile(path)
	if err != nil {
		return nil, err
	}

	dsn := abs + "?" + url.Values{"access_mode": {"read_only"}}.Encode()

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to duckdb database: %w", err)
	}

	return &duckDriver{
		c:         builders.NewClient(db, builders.WithCustomTypeProcessor("uuid", uuidProcessor)),
		currentDB: parseDatabaseFromPath(abs),
	}, nil
}
