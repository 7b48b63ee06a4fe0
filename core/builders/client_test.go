package builders_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdb2csv/rdb2csv/core"
	"github.com/rdb2csv/rdb2csv/core/builders"
)

// setupTestClient helper function to setup a client backed by sqlmock
func setupTestClient(t *testing.T, opts ...builders.ClientOption) (*builders.Client, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return builders.NewClient(db, opts...), mock
}

func drain(t *testing.T, stream core.ResultStream) ([]core.Row, error) {
	t.Helper()

	var rows []core.Row
	for stream.HasNext() {
		row, err := stream.Next()
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func TestClient_Query(t *testing.T) {
	r := require.New(t)

	client, mock := setupTestClient(t)

	mock.ExpectQuery(`SELECT * FROM "logdata"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "payload", "score", "note"}).
			AddRow(int64(1), "first", []byte("raw"), 1.5, nil).
			AddRow(int64(2), "second", []byte{}, 0.25, "x")).
		RowsWillBeClosed()

	stream, err := client.Query(context.Background(), `SELECT * FROM "logdata"`)
	r.NoError(err)

	r.Equal(core.Header{"id", "name", "payload", "score", "note"}, stream.Header())

	rows, err := drain(t, stream)
	r.NoError(err)
	stream.Close()

	r.Equal([]core.Row{
		{core.Int(1), core.String("first"), core.String("raw"), core.Float(1.5), core.Null()},
		{core.Int(2), core.String("second"), core.String(""), core.Float(0.25), core.String("x")},
	}, rows)

	r.NoError(mock.ExpectationsWereMet())
}

func TestClient_QueryNoRows(t *testing.T) {
	r := require.New(t)

	client, mock := setupTestClient(t)

	mock.ExpectQuery(`SELECT * FROM "logdata"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"})).
		RowsWillBeClosed()

	stream, err := client.Query(context.Background(), `SELECT * FROM "logdata"`)
	r.NoError(err)

	// the header is known without any rows
	r.Equal(core.Header{"id", "name"}, stream.Header())
	r.False(stream.HasNext())

	stream.Close()
	// closing twice is fine
	stream.Close()

	r.NoError(mock.ExpectationsWereMet())
}

func TestClient_QueryError(t *testing.T) {
	r := require.New(t)

	client, mock := setupTestClient(t)

	expected := errors.New("no such table: logdata")
	mock.ExpectQuery(`SELECT * FROM "logdata"`).WillReturnError(expected)

	stream, err := client.Query(context.Background(), `SELECT * FROM "logdata"`)
	r.ErrorIs(err, expected)
	r.Nil(stream)

	r.NoError(mock.ExpectationsWereMet())
}

func TestClient_QueryRowError(t *testing.T) {
	r := require.New(t)

	client, mock := setupTestClient(t)

	expected := errors.New("database disk image is malformed")
	mock.ExpectQuery(`SELECT * FROM "logdata"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).
			AddRow(int64(1)).
			AddRow(int64(2)).
			RowError(1, expected))

	stream, err := client.Query(context.Background(), `SELECT * FROM "logdata"`)
	r.NoError(err)
	defer stream.Close()

	rows, err := drain(t, stream)
	r.ErrorIs(err, expected)
	r.Equal([]core.Row{{core.Int(1)}}, rows)
}

func TestClient_CustomTypeProcessor(t *testing.T) {
	r := require.New(t)

	client, mock := setupTestClient(t, builders.WithCustomTypeProcessor("FLAG", func(v any) any {
		i, ok := v.(int64)
		if !ok {
			return v
		}
		return i != 0
	}))

	columns := []*sqlmock.Column{
		sqlmock.NewColumn("enabled").OfType("FLAG", int64(0)),
	}
	mock.ExpectQuery("SELECT enabled FROM t").
		WillReturnRows(sqlmock.NewRowsWithColumnDefinition(columns...).
			AddRow(int64(1)).
			AddRow(int64(0)))

	stream, err := client.Query(context.Background(), "SELECT enabled FROM t")
	r.NoError(err)
	defer stream.Close()

	rows, err := drain(t, stream)
	r.NoError(err)
	r.Equal([]core.Row{{core.Bool(true)}, {core.Bool(false)}}, rows)
}

func TestClient_StructureFromQuery(t *testing.T) {
	r := require.New(t)

	client, mock := setupTestClient(t)

	query := "SELECT schema, name, type FROM objects"
	mock.ExpectQuery(query).
		WillReturnRows(sqlmock.NewRows([]string{"schema", "name", "type"}).
			AddRow("main", "logdata", "table").
			AddRow("main", "recent", "view").
			AddRow("aux", "other", "index"))

	decode := func(typ string) core.StructureType {
		switch typ {
		case "table":
			return core.StructureTypeTable
		case "view":
			return core.StructureTypeView
		default:
			return core.StructureTypeNone
		}
	}

	structure, err := client.StructureFromQuery(context.Background(), query, decode)
	r.NoError(err)
	r.Len(structure, 2)

	assert.Equal(t, "main", structure[0].Name)
	assert.Len(t, structure[0].Children, 2)
	assert.Equal(t, core.StructureTypeView, structure[0].Children[1].Type)
	assert.Equal(t, "aux", structure[1].Name)

	r.True(core.HasRelation(structure, "logdata"))
	r.True(core.HasRelation(structure, "recent"))
	r.True(core.HasRelation(structure, "LogData"))
	r.False(core.HasRelation(structure, "other"))
	r.False(core.HasRelation(structure, "missing"))
}

func TestClient_ColumnsFromQuery(t *testing.T) {
	r := require.New(t)

	client, mock := setupTestClient(t)

	mock.ExpectQuery("SELECT name, type FROM pragma_table_info('logdata')").
		WillReturnRows(sqlmock.NewRows([]string{"name", "type"}).
			AddRow("id", "INTEGER").
			AddRow("message", "TEXT").
			AddRow("extra", ""))

	columns, err := client.ColumnsFromQuery(context.Background(), "SELECT name, type FROM pragma_table_info('%s')", "logdata")
	r.NoError(err)

	r.Equal([]*core.Column{
		{Name: "id", Type: "INTEGER"},
		{Name: "message", Type: "TEXT"},
		{Name: "extra", Type: ""},
	}, columns)
}

func TestClient_Close(t *testing.T) {
	client, mock := setupTestClient(t)

	mock.ExpectClose()
	client.Close()

	require.NoError(t, mock.ExpectationsWereMet())
}
