package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/assert"
)

// values carry unexported fields
var cmpValues = cmp.AllowUnexported(Value{})

func newRowRange(from, to int) []Row {
	var rows []Row
	for i := from; i < to; i++ {
		rows = append(rows, Row{Int(int64(i)), String("row")})
	}
	return rows
}

func TestDataset_Rows(t *testing.T) {
	numOfRows := 10

	dataset := NewDataset()
	dataset.append(&RowSet{
		Source: "a.rdb",
		Header: Header{"id", "text"},
		Rows:   newRowRange(0, numOfRows),
	})

	type testCase struct {
		name          string
		from          int
		to            int
		expectedRows  []Row
		expectedError error
	}

	testCases := []testCase{
		{
			name:         "get all",
			from:         0,
			to:           -1,
			expectedRows: newRowRange(0, numOfRows),
		},
		{
			name:         "get basic range",
			from:         0,
			to:           3,
			expectedRows: newRowRange(0, 3),
		},
		{
			name:         "get last 2",
			from:         -3,
			to:           -1,
			expectedRows: newRowRange(numOfRows-2, numOfRows),
		},
		{
			name:         "get only one",
			from:         0,
			to:           1,
			expectedRows: newRowRange(0, 1),
		},
		{
			name:         "range past the end is clamped",
			from:         8,
			to:           100,
			expectedRows: newRowRange(8, numOfRows),
		},
		{
			name:          "invalid range",
			from:          5,
			to:            1,
			expectedError: ErrInvalidRange(5, 1),
		},
		{
			name:          "invalid range (even if 10 can be higher than -1, its undefined and should fail)",
			from:          -5,
			to:            10,
			expectedError: ErrInvalidRange(-5, 10),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := dataset.Rows(tc.from, tc.to)
			if tc.expectedError != nil {
				assert.Error(t, err, tc.expectedError.Error())
				return
			}

			assert.NilError(t, err)
			assert.DeepEqual(t, rows, tc.expectedRows, cmpValues)
		})
	}
}

func TestDataset_AppendWidensPreviousRows(t *testing.T) {
	dataset := NewDataset()

	dataset.append(&RowSet{
		Source: "a.rdb",
		Header: Header{"id", "name"},
		Rows:   []Row{{Int(1), String("alice")}},
	})
	dataset.append(&RowSet{
		Source: "b.rdb",
		Header: Header{"id", "age"},
		Rows:   []Row{{Int(2), Int(41)}},
	})

	assert.DeepEqual(t, dataset.Header(), Header{"id", "name", "age"})
	assert.Equal(t, dataset.Len(), 2)
	assert.Equal(t, dataset.Width(), 3)

	rows, err := dataset.Rows(0, -1)
	assert.NilError(t, err)
	assert.DeepEqual(t, rows, []Row{
		{Int(1), String("alice"), Null()},
		{Int(2), Null(), Int(41)},
	}, cmpValues)

	for _, row := range rows {
		assert.Equal(t, len(row), dataset.Width())
	}

	assert.DeepEqual(t, dataset.Sources(), []SourceSummary{
		{Source: "a.rdb", Rows: 1},
		{Source: "b.rdb", Rows: 1},
	})
}

func TestDataset_Cell(t *testing.T) {
	dataset := NewDataset()
	dataset.append(&RowSet{
		Header: Header{"a", "b"},
		Rows:   []Row{{Int(1), Null()}},
	})

	val, err := dataset.Cell(0, 0)
	assert.NilError(t, err)
	assert.Equal(t, val, Int(1))

	val, err = dataset.Cell(0, 1)
	assert.NilError(t, err)
	assert.Assert(t, val.IsNull())

	_, err = dataset.Cell(1, 0)
	assert.ErrorContains(t, err, ErrIndexOutOfRange.Error())

	_, err = dataset.Cell(0, 2)
	assert.ErrorContains(t, err, ErrIndexOutOfRange.Error())

	_, err = dataset.Cell(-1, 0)
	assert.ErrorContains(t, err, ErrIndexOutOfRange.Error())
}

func TestNewDataset(t *testing.T) {
	a, b := NewDataset(), NewDataset()

	assert.Assert(t, a.ID() != b.ID())
	assert.Assert(t, a.IsEmpty())
	assert.Equal(t, a.Width(), 0)
	assert.Equal(t, len(a.Sources()), 0)
	assert.Equal(t, a.Dataset(), a)
}
