package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"docstatus/internal/domain"
	"docstatus/internal/format"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the report header row.
var columns = []string{
	"ID",
	"Knowledge Base",
	"File Name",
	"Status Code",
	"Status",
	"Category",
	"Created At",
	"Updated At",
}

// Columns returns a copy of the report header row.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// CSVWriter wraps csv.Writer for exporting document status rows.
type CSVWriter struct {
	out   io.Writer
	csv   *csv.Writer
	dates *format.DateFormatter
}

// NewCSVWriter creates a CSVWriter that writes to w, rendering dates with
// dates (format.Default() when nil).
func NewCSVWriter(w io.Writer, dates *format.DateFormatter) *CSVWriter {
	if dates == nil {
		dates = format.Default()
	}
	return &CSVWriter{out: w, csv: csv.NewWriter(w), dates: dates}
}

// WriteBOM writes the UTF-8 byte order mark. Call it before WriteHeader.
func (w *CSVWriter) WriteBOM() error {
	_, err := w.out.Write(BOM)
	return err
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteDocuments converts a batch of documents to CSV rows and writes them.
func (w *CSVWriter) WriteDocuments(docs []domain.Document) error {
	for i := range docs {
		if err := w.csv.Write(Row(&docs[i], w.dates)); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// WriteCSV writes a complete report: BOM, header and one row per document.
func WriteCSV(out io.Writer, docs []domain.Document, dates *format.DateFormatter) error {
	w := NewCSVWriter(out, dates)
	if err := w.WriteBOM(); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteDocuments(docs); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	w.Flush()
	return w.Error()
}

// Row converts a single document to a row matching Columns.
func Row(doc *domain.Document, dates *format.DateFormatter) []string {
	d := doc.Descriptor()
	return []string{
		strconv.FormatInt(doc.ID, 10),
		doc.KnowledgeBaseName,
		doc.FileName,
		strconv.Itoa(int(d.Code)),
		d.Label,
		string(d.Category),
		dates.Format(doc.CreatedAt),
		dates.Format(doc.UpdatedAt),
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename reduces a configured report prefix to characters that are
// safe in a filename on every platform. Runs of anything else become a single
// underscore, the result is capped at 100 bytes, and "report" is used when
// nothing usable is left.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "report"
	}
	return s
}

// BuildFilename returns a sanitized report filename.
// Format: {sanitized_prefix}_{YYYY-MM-DD}_{run id prefix}.{ext}
func BuildFilename(prefix, ext string, now time.Time, runID uuid.UUID) string {
	sanitized := SanitizeFilename(prefix)
	date := now.Format("2006-01-02")
	return fmt.Sprintf("%s_%s_%s.%s", sanitized, date, runID.String()[:8], strings.TrimPrefix(ext, "."))
}
