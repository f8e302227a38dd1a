package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"docstatus/internal/domain"
	"docstatus/internal/format"
)

const (
	// DefaultSheet is the document sheet name when none is configured.
	DefaultSheet = "Documents"

	// SummarySheet holds the per-status counts.
	SummarySheet = "Summary"
)

var ErrInvalidSheetName = errors.New("invalid sheet name")

// categoryColors are the badge fill colors the document manager UI uses.
var categoryColors = map[domain.StatusCategory]string{
	domain.CategoryInfo:    "#909399",
	domain.CategoryWarning: "#E6A23C",
	domain.CategorySuccess: "#67C23A",
	domain.CategoryDanger:  "#F56C6C",
}

// WriteXLSX writes a workbook with a document sheet named sheet and a
// Summary sheet.
func WriteXLSX(w io.Writer, docs []domain.Document, dates *format.DateFormatter, sheet string) error {
	if dates == nil {
		dates = format.Default()
	}
	if sheet == "" {
		sheet = DefaultSheet
	}
	if err := checkSheetName(sheet); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSheetName, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx header style: %w", err)
	}
	badgeStyles, err := newBadgeStyles(f)
	if err != nil {
		return err
	}

	if err := writeDocumentSheet(f, sheet, docs, dates, headerStyle, badgeStyles); err != nil {
		return err
	}
	if err := writeSummarySheet(f, Summarize(docs), headerStyle); err != nil {
		return err
	}

	idx, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(idx)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

// checkSheetName applies the workbook sheet naming rules.
func checkSheetName(sheet string) error {
	if strings.EqualFold(sheet, SummarySheet) {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidSheetName, sheet)
	}
	if utf8.RuneCountInString(sheet) > 31 {
		return fmt.Errorf("%w: %q exceeds 31 characters", ErrInvalidSheetName, sheet)
	}
	if strings.ContainsAny(sheet, `:\/?*[]`) || strings.HasPrefix(sheet, "'") || strings.HasSuffix(sheet, "'") {
		return fmt.Errorf("%w: %q contains a forbidden character", ErrInvalidSheetName, sheet)
	}
	return nil
}

func newBadgeStyles(f *excelize.File) (map[domain.StatusCategory]int, error) {
	styles := make(map[domain.StatusCategory]int, len(categoryColors))
	for category, color := range categoryColors {
		id, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Color: "#FFFFFF"},
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return nil, fmt.Errorf("xlsx style for %s: %w", category, err)
		}
		styles[category] = id
	}
	return styles, nil
}

func writeDocumentSheet(
	f *excelize.File,
	sheet string,
	docs []domain.Document,
	dates *format.DateFormatter,
	headerStyle int,
	badgeStyles map[domain.StatusCategory]int,
) error {
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(columns))
	_ = f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle)

	for i := range docs {
		doc := &docs[i]
		d := doc.Descriptor()
		row := i + 2
		values := []any{
			doc.ID,
			doc.KnowledgeBaseName,
			doc.FileName,
			int(d.Code),
			d.Label,
			string(d.Category),
			dates.Format(doc.CreatedAt),
			dates.Format(doc.UpdatedAt),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx row %d: %w", row, err)
		}
		// Status and Category columns carry the badge color.
		from, _ := excelize.CoordinatesToCellName(5, row)
		to, _ := excelize.CoordinatesToCellName(6, row)
		_ = f.SetCellStyle(sheet, from, to, badgeStyles[d.Category])
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 10) // id
	_ = f.SetColWidth(sheet, "B", "B", 24) // knowledge base
	_ = f.SetColWidth(sheet, "C", "C", 40) // file name
	_ = f.SetColWidth(sheet, "D", "D", 12) // code
	_ = f.SetColWidth(sheet, "E", "F", 20) // status, category
	_ = f.SetColWidth(sheet, "G", "H", 22) // dates
	return nil
}

func writeSummarySheet(f *excelize.File, s Summary, headerStyle int) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("xlsx summary sheet: %w", err)
	}
	header := []any{"Status Code", "Status", "Category", "Documents"}
	if err := f.SetSheetRow(SummarySheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx summary header: %w", err)
	}
	_ = f.SetCellStyle(SummarySheet, "A1", "D1", headerStyle)

	row := 2
	for _, c := range s.Counts {
		values := []any{int(c.Descriptor.Code), c.Descriptor.Label, string(c.Descriptor.Category), c.Count}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(SummarySheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx summary row %d: %w", row, err)
		}
		row++
	}
	totals := []any{"", "Total", "", s.Total}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(SummarySheet, cell, &totals); err != nil {
		return fmt.Errorf("xlsx summary total: %w", err)
	}
	_ = f.SetColWidth(SummarySheet, "A", "D", 18)
	return nil
}
