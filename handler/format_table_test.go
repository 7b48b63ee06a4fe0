package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rdb2csv/rdb2csv/core"
)

func TestTable_Format(t *testing.T) {
	r := require.New(t)

	out, err := newTable().Format(
		core.Header{"id", "message"},
		[]core.Row{
			{core.Int(7), core.Null()},
			{core.Int(8)},
		},
		&core.FormatterOptions{ChunkStart: 10, NullText: "NULL"},
	)
	r.NoError(err)

	text := string(out)
	r.Contains(text, "message")

	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "10") || strings.HasPrefix(line, "11") {
			rows = append(rows, line)
		}
	}
	r.Len(rows, 2)
	r.Contains(rows[0], "7")
	r.Contains(rows[0], "NULL")
	// short rows are padded with the null text
	r.Contains(rows[1], "NULL")
}

func TestClampRange(t *testing.T) {
	type testCase struct {
		from, to, length int
		expectedFrom     int
		expectedTo       int
		expectError      bool
	}

	testCases := []testCase{
		{from: 0, to: -1, length: 5, expectedFrom: 0, expectedTo: 5},
		{from: 0, to: 100, length: 5, expectedFrom: 0, expectedTo: 5},
		{from: -3, to: -1, length: 5, expectedFrom: 3, expectedTo: 5},
		{from: -100, to: -1, length: 5, expectedFrom: 0, expectedTo: 5},
		{from: 0, to: -1, length: 0, expectedFrom: 0, expectedTo: 0},
		{from: 3, to: 1, length: 5, expectError: true},
		{from: -1, to: 3, length: 5, expectError: true},
		{from: -1, to: -3, length: 5, expectError: true},
	}

	for _, tc := range testCases {
		from, to, err := clampRange(tc.from, tc.to, tc.length)
		if tc.expectError {
			require.Error(t, err)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tc.expectedFrom, from)
		require.Equal(t, tc.expectedTo, to)
	}
}
