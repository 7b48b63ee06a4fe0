package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rdb2csv/rdb2csv/core"
	"github.com/rdb2csv/rdb2csv/core/mock"
)

func TestReader_ReadTable(t *testing.T) {
	r := require.New(t)

	rows := mock.NewRows(0, 5)
	adapter := mock.NewAdapter(
		mock.AdapterWithTable("a.rdb", core.TargetTable, core.Header{"id", "message"}, rows),
	)

	reader := core.NewReader(adapter)
	r.Equal(core.TargetTable, reader.Table())

	set, err := reader.ReadTable(context.Background(), "a.rdb")
	r.NoError(err)

	r.Equal("a.rdb", set.Source)
	r.Equal(core.Header{"id", "message"}, set.Header)
	r.Equal(rows, set.Rows)
	r.Equal(5, set.Len())

	r.Equal(0, adapter.OpenConnections())
}

func TestReader_ReadTableNoRows(t *testing.T) {
	r := require.New(t)

	adapter := mock.NewAdapter(
		mock.AdapterWithTable("a.rdb", core.TargetTable, core.Header{"id", "message"}, nil),
	)

	set, err := core.NewReader(adapter).ReadTable(context.Background(), "a.rdb")
	r.NoError(err)

	r.Equal(core.Header{"id", "message"}, set.Header)
	r.NotNil(set.Rows)
	r.Empty(set.Rows)
}

func TestReader_ReadTableCustomTable(t *testing.T) {
	r := require.New(t)

	adapter := mock.NewAdapter(
		mock.AdapterWithTable("a.rdb", "events", core.Header{"id"}, mock.NewRows(0, 1)),
		mock.AdapterWithTable("a.rdb", core.TargetTable, core.Header{"id"}, nil),
	)

	reader := core.NewReader(adapter, core.ReaderWithTable("events"))
	set, err := reader.ReadTable(context.Background(), "a.rdb")
	r.NoError(err)
	r.Equal(1, set.Len())

	// empty name keeps the default
	r.Equal(core.TargetTable, core.NewReader(adapter, core.ReaderWithTable("")).Table())
}

func TestReader_ReadTableErrors(t *testing.T) {
	connectErr := errors.New("file is not a database")
	nextErr := errors.New("database disk image is malformed")

	type testCase struct {
		name         string
		opts         []mock.AdapterOption
		source       string
		expectedKind error
		expectedErr  error
	}

	testCases := []testCase{
		{
			name:         "missing table",
			opts:         []mock.AdapterOption{mock.AdapterWithTable("a.rdb", "other", core.Header{"id"}, nil)},
			source:       "a.rdb",
			expectedKind: core.ErrTableMissing,
		},
		{
			name:         "no tables at all",
			opts:         []mock.AdapterOption{mock.AdapterWithSource("empty.rdb")},
			source:       "empty.rdb",
			expectedKind: core.ErrTableMissing,
		},
		{
			name:         "connect error",
			opts:         []mock.AdapterOption{mock.AdapterWithConnectError("bad.rdb", connectErr)},
			source:       "bad.rdb",
			expectedKind: core.ErrSourceUnreadable,
			expectedErr:  connectErr,
		},
		{
			name:         "unknown source",
			source:       "missing.rdb",
			expectedKind: core.ErrSourceUnreadable,
			expectedErr:  mock.ErrUnknownSource,
		},
		{
			name: "error while reading rows",
			opts: []mock.AdapterOption{
				mock.AdapterWithTable("a.rdb", core.TargetTable, core.Header{"id", "message"}, mock.NewRows(0, 5)),
				mock.AdapterWithResultStreamOpts(mock.ResultStreamWithNextError(3, nextErr)),
			},
			source:       "a.rdb",
			expectedKind: core.ErrSourceUnreadable,
			expectedErr:  nextErr,
		},
		{
			name: "query error",
			opts: []mock.AdapterOption{
				mock.AdapterWithTable("a.rdb", core.TargetTable, core.Header{"id"}, nil),
				mock.AdapterWithQuerySideEffect(`SELECT * FROM "logdata"`, func(context.Context) error {
					return connectErr
				}),
			},
			source:       "a.rdb",
			expectedKind: core.ErrSourceUnreadable,
			expectedErr:  connectErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := require.New(t)

			adapter := mock.NewAdapter(tc.opts...)

			set, err := core.NewReader(adapter).ReadTable(context.Background(), tc.source)
			r.Nil(set)
			r.ErrorIs(err, tc.expectedKind)
			if tc.expectedErr != nil {
				r.ErrorIs(err, tc.expectedErr)
			}

			var sourceErr *core.SourceError
			r.ErrorAs(err, &sourceErr)
			r.Equal(tc.source, sourceErr.Source)

			// every opened connection was released
			r.Equal(0, adapter.OpenConnections())
		})
	}
}

func TestReader_Describe(t *testing.T) {
	r := require.New(t)

	adapter := mock.NewAdapter(
		mock.AdapterWithTable("a.rdb", core.TargetTable, core.Header{"id", "message"}, nil),
	)
	reader := core.NewReader(adapter)

	columns, err := reader.Describe(context.Background(), "a.rdb")
	r.NoError(err)
	r.Equal([]*core.Column{{Name: "id"}, {Name: "message"}}, columns)
	r.Equal(0, adapter.OpenConnections())

	_, err = reader.Describe(context.Background(), "missing.rdb")
	r.ErrorIs(err, core.ErrSourceUnreadable)
}

func TestQuoteIdent(t *testing.T) {
	r := require.New(t)

	r.Equal(`"logdata"`, core.QuoteIdent("logdata"))
	r.Equal(`"we""ird"`, core.QuoteIdent(`we"ird`))
}
