//go:build (darwin && (amd64 || arm64)) || (freebsd && (386 || amd64 || arm || arm64)) || (linux && (386 || amd64 || arm || arm64 || ppc64le || riscv64 || s390x)) || (netbsd && amd64) || (openbsd && (amd64 || arm64)) || (windows && (amd64 || arm64))

package adapters

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "modernc.org/sqlite"

	"github.com/rdb2csv/rdb2csv/core"
	"github.com/rdb2csv/rdb2csv/core/builders"
)

// Register client
func init() {
	_ = register(&SQLite{}, "sqlite", "sqlite3", "rdb")
}

var _ core.Adapter = (*SQLite)(nil)

// SQLite opens database files read-only. Missing files are reported instead of created.
type SQLite struct{}

func (s *SQLite) Connect(path string) (core.Driver, error) {
	abs, err := existingFile(path)
	if err != nil {
		return nil, err
	}

	dsn := fileURI(abs, url.Values{"mode": {"ro"}})

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to sqlite database: %w", err)
	}

	return &sqliteDriver{
		c: builders.NewClient(db),
	}, nil
}
