package diff

// selectKeys chooses up to maxKeyColumns join-key columns shared by both
// tables. A column qualifies when its ratio of distinct values to row
// count exceeds the uniqueness threshold in both tables; a zero-row
// table passes vacuously. Candidates are examined in a's column order so
// the choice is reproducible across runs. When nothing qualifies the
// first min(maxKeyColumns, n) shared columns are used instead, and an
// empty intersection returns nil, which forces positional matching.
func (d *Differ) selectKeys(a, b Table) []string {
	common := intersectColumns(a, b)
	if len(common) == 0 {
		return nil
	}

	var keys []string
	for _, col := range common {
		if d.uniqueEnough(a, col) && d.uniqueEnough(b, col) {
			keys = append(keys, col)
		}
	}

	if len(keys) == 0 {
		keys = common
	}
	if len(keys) > d.maxKeyColumns {
		keys = keys[:d.maxKeyColumns]
	}
	return keys
}

// intersectColumns returns the columns present in both tables,
// preserving a's column order.
func intersectColumns(a, b Table) []string {
	inB := make(map[string]bool, len(b.Columns))
	for _, col := range b.Columns {
		inB[col] = true
	}
	var common []string
	for _, col := range a.Columns {
		if inB[col] {
			common = append(common, col)
		}
	}
	return common
}

// uniqueEnough reports whether col's distinct-value ratio in t exceeds
// the configured threshold. An empty table cannot veto a candidate.
func (d *Differ) uniqueEnough(t Table, col string) bool {
	if len(t.Rows) == 0 {
		return true
	}
	idx := columnIndex(t, col)
	if idx < 0 {
		return false
	}
	distinct := make(map[string]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		if idx < len(row) {
			distinct[row[idx]] = struct{}{}
		} else {
			distinct[""] = struct{}{}
		}
	}
	ratio := float64(len(distinct)) / float64(len(t.Rows))
	return ratio > d.keyThreshold
}

func columnIndex(t Table, col string) int {
	for i, c := range t.Columns {
		if c == col {
			return i
		}
	}
	return -1
}
