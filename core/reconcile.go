package core

// Reconcile merges the header of set into order and re-expresses the rows of set
// against the merged header.
//
// The returned header is order followed by the columns of set that order doesn't
// contain yet, in the order they appear in set. Column names are matched exactly.
// Cells of columns missing from set are null. When a name occurs more than once in
// set, the first occurrence is used.
//
// order is never modified.
func Reconcile(order Header, set *RowSet) (Header, []Row) {
	if set == nil {
		return order, nil
	}

	merged, mapping := mergeHeader(order, set.Header)

	// already in shape
	if isIdentity(mapping, len(merged)) && rowsHaveWidth(set.Rows, len(merged)) {
		return merged, set.Rows
	}

	rows := make([]Row, len(set.Rows))
	for i, row := range set.Rows {
		out := make(Row, len(merged))
		for j, val := range row {
			if j >= len(mapping) || mapping[j] < 0 {
				continue
			}
			out[mapping[j]] = val
		}
		rows[i] = out
	}

	return merged, rows
}

// mergeHeader returns the merged header and, for each column of header,
// its position in the merged header (-1 for duplicates).
func mergeHeader(order, header Header) (Header, []int) {
	merged := make(Header, len(order), len(order)+len(header))
	copy(merged, order)

	index := make(map[string]int, len(order)+len(header))
	for i, name := range order {
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}

	mapping := make([]int, len(header))
	seen := make(map[string]struct{}, len(header))
	for j, name := range header {
		if _, dup := seen[name]; dup {
			mapping[j] = -1
			continue
		}
		seen[name] = struct{}{}

		pos, ok := index[name]
		if !ok {
			pos = len(merged)
			index[name] = pos
			merged = append(merged, name)
		}
		mapping[j] = pos
	}

	return merged, mapping
}

func isIdentity(mapping []int, width int) bool {
	if len(mapping) != width {
		return false
	}
	for i, pos := range mapping {
		if pos != i {
			return false
		}
	}
	return true
}

func rowsHaveWidth(rows []Row, width int) bool {
	for _, row := range rows {
		if len(row) != width {
			return false
		}
	}
	return true
}

// widen pads every row with nulls up to width.
func widen(rows []Row, width int) {
	for i, row := range rows {
		if len(row) >= width {
			continue
		}
		wide := make(Row, width)
		copy(wide, row)
		rows[i] = wide
	}
}
