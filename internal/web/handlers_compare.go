package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"tablediff/internal/diff"
	"tablediff/internal/fileio"
	"tablediff/internal/logging"
)

// allowedExtensions are the upload formats the compare endpoints accept.
// .xls is accepted here so the reader can reject it with a specific
// message rather than a generic unsupported-format error.
var allowedExtensions = []string{".csv", ".xlsx", ".xls"}

// comparisonInput is one request's pair of parsed tables.
type comparisonInput struct {
	table1, table2 diff.Table
	name1, name2   string
}

// handleCompare compares two uploaded files and returns the diff as
// JSON. The form field "mode" selects "additions" (default, reports
// only rows whose identifier is new in file2) or "full"; "idColumn"
// optionally names the identifier column for additions mode.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	in, err := s.readComparisonInput(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	var result diff.Result
	switch r.FormValue("mode") {
	case "full":
		result = s.differ.Compare(in.table1, in.table2, in.name1, in.name2)
	default:
		result = s.differ.CompareAdditions(in.table1, in.table2, in.name1, in.name2, r.FormValue("idColumn"))
	}

	comparisonID := uuid.NewString()
	logging.FromContext(r.Context()).Info("files compared",
		"comparison_id", comparisonID,
		"file1", in.name1,
		"file2", in.name2,
		"total", result.Summary.Total,
		"added", result.Summary.Added,
	)

	writeJSON(w, toResultJSON(result, comparisonID))
}

// handleDownloadCSV runs the additions-only comparison and streams the
// added rows back as a CSV attachment.
func (s *Server) handleDownloadCSV(w http.ResponseWriter, r *http.Request) {
	in, err := s.readComparisonInput(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	result := s.differ.CompareAdditions(in.table1, in.table2, in.name1, in.name2, r.FormValue("idColumn"))

	var added []diff.RowRecord
	for _, row := range result.Rows {
		if row.Status == diff.StatusAdded {
			added = append(added, row.New)
		}
	}
	if len(added) == 0 {
		s.respondError(w, r, errors.New("no added rows found"), http.StatusNotFound)
		return
	}

	filename := fmt.Sprintf("new_records_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := fileio.WriteCSV(w, result.Columns, added); err != nil {
		logging.FromContext(r.Context()).Error("csv download failed", "error", err)
	}
}

// readComparisonInput extracts and parses the file1/file2 multipart
// fields. Both files are parsed concurrently; each comparison stays
// independent because parsing writes only into its own table.
func (s *Server) readComparisonInput(w http.ResponseWriter, r *http.Request) (comparisonInput, error) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, 2*maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		return comparisonInput{}, fmt.Errorf("file too large or invalid form: %w", err)
	}

	file1, header1, err := r.FormFile("file1")
	if err != nil {
		return comparisonInput{}, errors.New("no file provided for file1")
	}
	defer file1.Close()

	file2, header2, err := r.FormFile("file2")
	if err != nil {
		return comparisonInput{}, errors.New("no file provided for file2")
	}
	defer file2.Close()

	in := comparisonInput{name1: header1.Filename, name2: header2.Filename}

	for _, name := range []string{in.name1, in.name2} {
		if !allowedExtension(name) {
			return comparisonInput{}, fmt.Errorf("%w: %s must be a CSV or Excel file", fileio.ErrUnsupportedFormat, name)
		}
	}

	var g errgroup.Group
	g.Go(func() error {
		var err error
		in.table1, err = parseUpload(file1, in.name1)
		return err
	})
	g.Go(func() error {
		var err error
		in.table2, err = parseUpload(file2, in.name2)
		return err
	})
	if err := g.Wait(); err != nil {
		return comparisonInput{}, err
	}
	return in, nil
}

func parseUpload(f multipart.File, filename string) (diff.Table, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return diff.Table{}, fmt.Errorf("reading %s: %w", filename, err)
	}
	t, err := fileio.ReadTable(filename, data)
	if err != nil {
		return diff.Table{}, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return t, nil
}

func allowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
