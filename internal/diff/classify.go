package diff

import "strings"

// classify decides the status of one matched pair and, for modified
// rows, which columns changed. Both rows are projected onto allColumns
// with "" filling columns a side does not have.
func classify(old, new RowRecord, allColumns []string, index int) DiffRow {
	switch {
	case old == nil && new != nil:
		return DiffRow{
			Index:  index,
			Status: StatusAdded,
			New:    project(new, allColumns),
		}

	case old != nil && new == nil:
		return DiffRow{
			Index:  index,
			Status: StatusRemoved,
			Old:    project(old, allColumns),
		}

	case old != nil && new != nil:
		oldData := project(old, allColumns)
		newData := project(new, allColumns)

		var changed []string
		for _, col := range allColumns {
			if strings.TrimSpace(oldData[col]) != strings.TrimSpace(newData[col]) {
				changed = append(changed, col)
			}
		}

		status := StatusUnchanged
		if len(changed) > 0 {
			status = StatusModified
		}
		return DiffRow{
			Index:   index,
			Status:  status,
			Old:     oldData,
			New:     newData,
			Changed: changed,
		}
	}

	// Both sides absent. The matcher never produces this, but classify
	// stays total rather than panicking.
	return DiffRow{Index: index, Status: StatusUnchanged}
}

// project returns rec restricted to cols, filling missing columns with "".
func project(rec RowRecord, cols []string) RowRecord {
	out := make(RowRecord, len(cols))
	for _, col := range cols {
		out[col] = rec[col]
	}
	return out
}
