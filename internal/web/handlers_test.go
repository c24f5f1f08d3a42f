package web

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tablediff/internal/config"
	"tablediff/internal/diff"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           8004,
			RequestTimeout: 60 * time.Second,
		},
		Upload: config.UploadConfig{MaxFileSize: 10 * 1024 * 1024},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func newTestServer() *Server {
	return NewServer(diff.New(diff.Options{}), testConfig())
}

// compareRequest builds a multipart POST with file1/file2 fields plus
// optional extra form values.
func compareRequest(t *testing.T, target, name1, content1, name2, content2 string, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for field, file := range map[string][2]string{
		"file1": {name1, content1},
		"file2": {name2, content2},
	} {
		fw, err := mw.CreateFormFile(field, file[0])
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(file[1])); err != nil {
			t.Fatal(err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func doRequest(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	return rr
}

func decodeResult(t *testing.T, rr *httptest.ResponseRecorder) diffResultJSON {
	t.Helper()
	var res diffResultJSON
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rr.Body.String())
	}
	return res
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer()
	rr := doRequest(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestHandleInfo(t *testing.T) {
	s := newTestServer()
	rr := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/info", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var info map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info["version"] != apiVersion {
		t.Errorf("version = %v, want %s", info["version"], apiVersion)
	}
}

func TestHandleCompare_FullMode(t *testing.T) {
	s := newTestServer()
	req := compareRequest(t,
		"/api/compare",
		"old.csv", "id,name\n1,Alice\n2,Bob\n",
		"new.csv", "id,name\n1,Alice\n2,Bob\n3,Charlie\n",
		map[string]string{"mode": "full"},
	)

	rr := doRequest(s, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rr.Code, rr.Body.String())
	}

	res := decodeResult(t, rr)
	if res.Summary.TotalRows != 3 {
		t.Errorf("totalRows = %d, want 3", res.Summary.TotalRows)
	}
	if res.Summary.AddedRows != 1 || res.Summary.UnchangedRows != 2 {
		t.Errorf("summary = %+v, want 1 added, 2 unchanged", res.Summary)
	}
	if res.File1Name != "old.csv" || res.File2Name != "new.csv" {
		t.Errorf("file names = %q, %q", res.File1Name, res.File2Name)
	}
	if res.ComparisonID == "" {
		t.Error("comparisonId missing")
	}
}

func TestHandleCompare_AdditionsDefault(t *testing.T) {
	s := newTestServer()
	req := compareRequest(t,
		"/api/compare",
		"old.csv", "id,name\n1,Alice\n2,Bob\n",
		"new.csv", "id,name\n1,Alice\n2,Bob\n3,Charlie\n",
		nil,
	)

	rr := doRequest(s, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rr.Code, rr.Body.String())
	}

	res := decodeResult(t, rr)
	if res.Summary.TotalRows != 1 || res.Summary.AddedRows != 1 {
		t.Fatalf("summary = %+v, want total=added=1", res.Summary)
	}
	row := res.Rows[0]
	if row.Status != "added" {
		t.Errorf("status = %q, want added", row.Status)
	}
	if row.OldData != nil {
		t.Errorf("oldData = %v, want null", row.OldData)
	}
	if row.NewData["name"] != "Charlie" {
		t.Errorf("newData = %v, want name=Charlie", row.NewData)
	}
	if row.ChangedColumns == nil {
		t.Error("changedColumns must serialize as [], not null")
	}
}

func TestHandleCompare_BadExtension(t *testing.T) {
	s := newTestServer()
	req := compareRequest(t,
		"/api/compare",
		"notes.txt", "hello",
		"new.csv", "id\n1\n",
		nil,
	)

	rr := doRequest(s, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != "FILE001" {
		t.Errorf("code = %q, want FILE001", resp.Code)
	}
}

func TestHandleCompare_EmptyFile(t *testing.T) {
	s := newTestServer()
	req := compareRequest(t,
		"/api/compare",
		"old.csv", "",
		"new.csv", "id\n1\n",
		nil,
	)

	rr := doRequest(s, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != "FILE002" {
		t.Errorf("code = %q, want FILE002", resp.Code)
	}
}

func TestHandleCompare_MissingFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file1", "only.csv")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("id\n1\n"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/compare", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rr := doRequest(newTestServer(), req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != "FILE004" {
		t.Errorf("code = %q, want FILE004", resp.Code)
	}
}

func TestHandleDownloadCSV(t *testing.T) {
	s := newTestServer()
	req := compareRequest(t,
		"/api/download-csv",
		"old.csv", "id,name\n1,Alice\n",
		"new.csv", "id,name\n1,Alice\n2,Bob\n",
		nil,
	)

	rr := doRequest(s, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "new_records_") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.Contains(rr.Body.String(), "Bob") {
		t.Errorf("body = %q, want added row for Bob", rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "Alice") {
		t.Errorf("body = %q, must not contain unchanged rows", rr.Body.String())
	}
}

func TestHandleDownloadCSV_NoAdditions(t *testing.T) {
	s := newTestServer()
	req := compareRequest(t,
		"/api/download-csv",
		"old.csv", "id,name\n1,Alice\n",
		"new.csv", "id,name\n1,Alice\n",
		nil,
	)

	rr := doRequest(s, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}
