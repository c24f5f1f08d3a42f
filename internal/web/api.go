package web

// api.go adapts diff.Result values to the wire format consumed by the
// frontend. Serialization concerns live here, not in the diff core.

import "tablediff/internal/diff"

type summaryJSON struct {
	TotalRows     int `json:"totalRows"`
	AddedRows     int `json:"addedRows"`
	RemovedRows   int `json:"removedRows"`
	ModifiedRows  int `json:"modifiedRows"`
	UnchangedRows int `json:"unchangedRows"`
}

type diffRowJSON struct {
	RowIndex int    `json:"rowIndex"`
	Status   string `json:"status"`
	// OldData is null for added rows, NewData null for removed rows.
	OldData        map[string]string `json:"oldData"`
	NewData        map[string]string `json:"newData"`
	ChangedColumns []string          `json:"changedColumns"`
}

type diffResultJSON struct {
	Summary      summaryJSON   `json:"summary"`
	ColumnNames  []string      `json:"columnNames"`
	Rows         []diffRowJSON `json:"rows"`
	File1Name    string        `json:"file1Name"`
	File2Name    string        `json:"file2Name"`
	ComparisonID string        `json:"comparisonId"`
}

// toResultJSON converts a diff.Result into its wire representation.
// comparisonID correlates the response with server-side log entries.
func toResultJSON(res diff.Result, comparisonID string) diffResultJSON {
	rows := make([]diffRowJSON, len(res.Rows))
	for i, r := range res.Rows {
		changed := r.Changed
		if changed == nil {
			changed = []string{}
		}
		rows[i] = diffRowJSON{
			RowIndex:       r.Index,
			Status:         string(r.Status),
			OldData:        r.Old,
			NewData:        r.New,
			ChangedColumns: changed,
		}
	}

	cols := res.Columns
	if cols == nil {
		cols = []string{}
	}

	return diffResultJSON{
		Summary: summaryJSON{
			TotalRows:     res.Summary.Total,
			AddedRows:     res.Summary.Added,
			RemovedRows:   res.Summary.Removed,
			ModifiedRows:  res.Summary.Modified,
			UnchangedRows: res.Summary.Unchanged,
		},
		ColumnNames:  cols,
		Rows:         rows,
		File1Name:    res.File1Name,
		File2Name:    res.File2Name,
		ComparisonID: comparisonID,
	}
}
