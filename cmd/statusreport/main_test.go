package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"docstatus/internal/format"
	"docstatus/internal/report"
)

const sampleRows = `[
	{"id": 1, "knowledgeBaseName": "kb", "fileName": "a.pdf", "status": 0, "createTime": "2024-03-01T12:00:00Z"},
	{"id": 2, "knowledgeBaseName": "kb", "fileName": "b.pdf", "status": 3, "createTime": "2024-03-02T12:00:00Z"},
	{"id": 3, "knowledgeBaseName": "kb", "fileName": "c.pdf", "status": 2, "createTime": null}
]`

func setTestEnv(t *testing.T) {
	t.Setenv("DOCSTATUS_FORMAT_LOCALE", "iso")
	t.Setenv("DOCSTATUS_FORMAT_TIMEZONE", "UTC")
	t.Setenv("DOCSTATUS_LOG_LEVEL", "error")
}

func TestRun_CSVToStdout(t *testing.T) {
	setTestEnv(t)

	var stdout bytes.Buffer
	err := run([]string{"-format", "csv", "-out", "-"}, strings.NewReader(sampleRows), &stdout)
	require.NoError(t, err)

	body := bytes.TrimPrefix(stdout.Bytes(), report.BOM)
	rows, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"1", "kb", "a.pdf", "0", "Pending processing", "info", "2024-03-01 12:00:00", "-"}, rows[1])
	assert.Equal(t, "danger", rows[2][5])
	assert.Equal(t, "-", rows[3][6])
}

func TestRun_StatusFilter(t *testing.T) {
	setTestEnv(t)

	var stdout bytes.Buffer
	err := run([]string{"-format", "csv", "-out", "-", "-status", "failed, completed"}, strings.NewReader(sampleRows), &stdout)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(stdout.Bytes(), report.BOM))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "3", rows[2][0])
}

func TestRun_XLSXFile(t *testing.T) {
	setTestEnv(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "docs.json")
	out := filepath.Join(dir, "report.xlsx")
	require.NoError(t, os.WriteFile(in, []byte(sampleRows), 0o600))

	require.NoError(t, run([]string{"-in", in, "-out", out}, strings.NewReader(""), &bytes.Buffer{}))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(report.DefaultSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestRun_FailedWriteRemovesOutput(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DOCSTATUS_REPORT_SHEET_NAME", report.SummarySheet)
	out := filepath.Join(t.TempDir(), "report.xlsx")

	err := run([]string{"-out", out}, strings.NewReader(sampleRows), &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, report.ErrInvalidSheetName)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "partial report left at %s", out)
}

func TestRun_Badges(t *testing.T) {
	setTestEnv(t)

	var stdout bytes.Buffer
	require.NoError(t, run([]string{"-badges"}, strings.NewReader(""), &stdout))

	var badges []format.Badge
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &badges))
	assert.Equal(t, format.Badges(), badges)
}

func TestRun_Errors(t *testing.T) {
	setTestEnv(t)

	tests := []struct {
		name string
		args []string
		in   string
		want string
	}{
		{"bad format", []string{"-format", "pdf"}, sampleRows, "invalid -format"},
		{"bad status", []string{"-status", "done", "-out", "-"}, sampleRows, "invalid -status"},
		{"missing input", []string{"-in", "/nonexistent/docs.json", "-out", "-"}, "", "open input"},
		{"bad rows", []string{"-out", "-"}, `[{"id": 1, "createTime": "soon"}]`, "read documents"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, strings.NewReader(tt.in), &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseFlags_UnknownStatus(t *testing.T) {
	setTestEnv(t)

	var stdout bytes.Buffer
	input := `{"id": 1, "status": 7}` + "\n" + `{"id": 2, "status": 1}`
	require.NoError(t, run([]string{"-format", "csv", "-out", "-", "-status", "unknown"}, strings.NewReader(input), &stdout))

	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(stdout.Bytes(), report.BOM))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Unknown", rows[1][4])
}
