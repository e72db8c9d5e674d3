package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	// SheetName is the worksheet holding candidate rows in XLSX reports.
	SheetName = "Candidates"

	filePrefix      = "candidate_report_"
	timestampLayout = "20060102_150405"
	marker          = "*"
)

// Header is the first row of every report.
var Header = []string{
	"Name",
	"Qualifications Count",
	ai.CriterionReactNative.Title(),
	ai.CriterionSignalProcessing.Title(),
	ai.CriterionBiomedical.Title(),
	"Summary",
}

// ValidateFormat rejects report formats that have no writer.
func ValidateFormat(format string) error {
	switch format {
	case FormatCSV, FormatXLSX:
		return nil
	default:
		return fmt.Errorf("unknown report format %q (supported: %s, %s)", format, FormatCSV, FormatXLSX)
	}
}

// FileName returns the timestamped report file name.
func FileName(now time.Time, format string) string {
	return filePrefix + now.Format(timestampLayout) + "." + format
}

// Rows renders one row per record, matching Header.
func (r *RunReport) Rows() [][]string {
	rows := make([][]string, 0, len(r.Records))
	for _, rec := range r.Records {
		row := []string{rec.Name, strconv.Itoa(rec.QualificationsCount())}
		for _, c := range ai.Criteria {
			row = append(row, mark(rec.Judgment.Has(c)))
		}
		rows = append(rows, append(row, rec.Judgment.Summary))
	}
	return rows
}

func mark(v bool) string {
	if v {
		return marker
	}
	return ""
}

// Write stores the report in dir and returns the file path. A report without
// records still gets its header row.
func Write(dir, format string, now time.Time, r *RunReport) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if err := ValidateFormat(format); err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(dir, FileName(now, format))

	var err error
	switch format {
	case FormatXLSX:
		err = writeXLSX(path, r)
	default:
		err = writeCSV(path, r)
	}
	if err != nil {
		return "", err
	}

	return path, nil
}

func writeCSV(path string, r *RunReport) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	if err := w.WriteAll(r.Rows()); err != nil {
		return fmt.Errorf("write report rows: %w", err)
	}

	return file.Close()
}

func writeXLSX(path string, r *RunReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	write := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(SheetName, cell, v)
	}

	for i, h := range Header {
		if err := write(i+1, 1, h); err != nil {
			return fmt.Errorf("write report header: %w", err)
		}
	}

	for i, rec := range r.Records {
		row := i + 2
		values := []any{rec.Name, rec.QualificationsCount()}
		for _, c := range ai.Criteria {
			values = append(values, mark(rec.Judgment.Has(c)))
		}
		values = append(values, rec.Judgment.Summary)

		for col, v := range values {
			if err := write(col+1, row, v); err != nil {
				return fmt.Errorf("write report row %d: %w", row, err)
			}
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 28)
	_ = f.SetColWidth(SheetName, "B", "B", 20)
	_ = f.SetColWidth(SheetName, "C", "E", 14)
	_ = f.SetColWidth(SheetName, "F", "F", 80)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx report: %w", err)
	}
	return nil
}
