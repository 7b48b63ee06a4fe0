package adapters

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rdb2csv/rdb2csv/core"
	"github.com/rdb2csv/rdb2csv/core/mock"
)

func TestMux(t *testing.T) {
	r := require.New(t)

	mux := new(Mux)

	adapter, err := mux.GetAdapter("sqlite")
	r.NoError(err)
	r.IsType(&SQLite{}, adapter)

	// aliases point to the same adapter
	alias, err := mux.GetAdapter("rdb")
	r.NoError(err)
	r.Same(adapter, alias)

	_, err = mux.GetAdapter("nonexistent")
	r.ErrorIs(err, ErrUnsupportedTypeAlias)
	r.ErrorContains(err, "rdb, sqlite, sqlite3")

	r.NoError(register(mock.NewAdapter(), "memory", ""))
	t.Cleanup(func() { delete(registeredAdapters, "memory") })
	r.Contains(Types(), "memory")
	r.IsIncreasing(Types())

	r.ErrorIs(register(mock.NewAdapter(), ""), errNoValidTypeAliases)
	r.ErrorIs(register(mock.NewAdapter()), errNoValidTypeAliases)
}

type namedUUID [16]byte

func TestUUIDProcessor(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	tests := []struct {
		name  string
		input any
		want  any
	}{
		{name: "byte slice", input: id[:], want: id.String()},
		{name: "byte array", input: [16]byte(id), want: id.String()},
		{name: "named array", input: namedUUID(id), want: id.String()},
		{name: "wrong length", input: []byte("abc"), want: "abc"},
		{name: "other types pass through", input: int64(7), want: int64(7)},
		{name: "nil", input: nil, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uuidProcessor(tt.input))
		})
	}
}

func TestNewReader(t *testing.T) {
	r := require.New(t)

	reader, err := NewReader("sqlite", core.ReaderWithTable("events"))
	r.NoError(err)
	r.Equal("events", reader.Table())

	_, err = NewReader("nonexistent")
	r.ErrorIs(err, ErrUnsupportedTypeAlias)
}

func TestFileURI(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		params url.Values
		want   string
	}{
		{
			name:   "plain absolute path",
			input:  "/tmp/logs/a.rdb",
			params: url.Values{"mode": {"ro"}},
			want:   "file:///tmp/logs/a.rdb?mode=ro",
		},
		{
			name:   "reserved characters are escaped",
			input:  "/tmp/what?#.rdb",
			params: url.Values{"mode": {"ro"}},
			want:   "file:///tmp/what%3F%23.rdb?mode=ro",
		},
		{
			name:  "no params",
			input: "/a.rdb",
			want:  "file:///a.rdb",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fileURI(tt.input, tt.params))
		})
	}
}

func TestQuoteLiteral(t *testing.T) {
	assert.Equal(t, "'logdata'", quoteLiteral("logdata"))
	assert.Equal(t, "'it''s'", quoteLiteral("it's"))
}
