// Package export renders grouped reports as downloadable spreadsheets.
package export

import (
	"bytes"
	"fmt"

	"github.com/stwalsh4118/sdma/internal/report"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the workbooks produced here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	sheetName       = "Report"
	grandTotalLabel = "कुल योग (Grand Total) :"
	noDataLabel     = "कोई डेटा उपलब्ध नहीं है (No Data Available)"
)

// Column headers, matching the on-screen report tables.
const (
	HeaderSerial   = "क्र."
	HeaderTehsil   = "तहसील का नाम"
	HeaderDistrict = "जिले का नाम"
	HeaderDisaster = "आपदा विवरण"
)

// StatHeaders head the six bucket columns in bucket order.
var StatHeaders = []string{
	"जनहानि संख्या",
	"मकान क्षति संख्या",
	"पशु हानि संख्या",
	"फसल क्षति (हेक्टेयर में)",
	"शासकीय परिसंपत्ति क्षति हानि",
	"सड़क क्षति (कि.मी. में)",
}

// column is one leading (non-stat) column. span reports how many rows the
// cell covers: 0 on rows already covered by the group's first row.
type column struct {
	header string
	width  float64
	value  func(report.Row) interface{}
	span   func(report.Row) int
}

func single(report.Row) int { return 1 }

func tehsilSpan(r report.Row) int {
	if !r.IsTehsilFirst {
		return 0
	}
	return r.TehsilRowSpan
}

func districtSpan(r report.Row) int {
	if !r.IsDistrictFirst {
		return 0
	}
	return r.DistrictRowSpan
}

func leadingColumns(rep report.Report) []column {
	disaster := column{
		header: HeaderDisaster,
		width:  22,
		value:  func(r report.Row) interface{} { return r.DisasterTypeName },
		span:   single,
	}

	var cols []column
	switch rep.Mode {
	case report.ModeTehsilDetail:
		cols = []column{
			{header: HeaderSerial, width: 6, value: func(r report.Row) interface{} { return r.Serial }, span: tehsilSpan},
			{header: HeaderTehsil, width: 22, value: func(r report.Row) interface{} { return r.TehsilName }, span: tehsilSpan},
		}
	case report.ModeDistrictSummary:
		return []column{
			{header: HeaderSerial, width: 6, value: func(r report.Row) interface{} { return r.Serial }, span: single},
			{header: HeaderDistrict, width: 22, value: func(r report.Row) interface{} { return r.DistrictName }, span: single},
		}
	default:
		cols = []column{
			{header: HeaderSerial, width: 6, value: func(r report.Row) interface{} { return r.DistrictSerial }, span: districtSpan},
			{header: HeaderDistrict, width: 22, value: func(r report.Row) interface{} { return r.DistrictName }, span: districtSpan},
			{header: HeaderTehsil, width: 22, value: func(r report.Row) interface{} { return r.TehsilName }, span: tehsilSpan},
		}
	}
	if rep.ShowDisasterColumn {
		cols = append(cols, disaster)
	}
	return cols
}

// Headers returns the header row a report renders with.
func Headers(rep report.Report) []string {
	cols := leadingColumns(rep)
	headers := make([]string, 0, len(cols)+len(StatHeaders))
	for _, c := range cols {
		headers = append(headers, c.header)
	}
	return append(headers, StatHeaders...)
}

// FileName is the download name of a report workbook.
func FileName(rep report.Report) string {
	name := fmt.Sprintf("%s-report-%d", rep.Mode, rep.Filter.Year)
	if rep.Filter.Month != 0 {
		name = fmt.Sprintf("%s-%02d", name, rep.Filter.Month)
	}
	if rep.DistrictCode != 0 {
		name = fmt.Sprintf("%s-district-%d", name, rep.DistrictCode)
	}
	return name + ".xlsx"
}

// ReportWorkbook renders rep as a single-sheet workbook: one header row,
// one row per report row with group cells merged over their span, and a
// grand total row.
func ReportWorkbook(rep report.Report) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	w := &sheetWriter{f: f}
	if err := w.write(rep); err != nil {
		f.Close()
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetWriter struct {
	f           *excelize.File
	headerStyle int
	cellStyle   int
	totalStyle  int
}

func (w *sheetWriter) styles() error {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}

	var err error
	w.headerStyle, err = w.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#F3F4F6"}, Pattern: 1},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	w.cellStyle, err = w.f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create cell style: %w", err)
	}

	w.totalStyle, err = w.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E5E7EB"}, Pattern: 1},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create total style: %w", err)
	}
	return nil
}

func (w *sheetWriter) set(col, row int, value interface{}, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := w.f.SetCellValue(sheetName, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	if err := w.f.SetCellStyle(sheetName, cell, cell, style); err != nil {
		return fmt.Errorf("failed to style cell %s: %w", cell, err)
	}
	return nil
}

func (w *sheetWriter) merge(fromCol, fromRow, toCol, toRow int) error {
	if fromCol == toCol && fromRow == toRow {
		return nil
	}
	from, err := excelize.CoordinatesToCellName(fromCol, fromRow)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	to, err := excelize.CoordinatesToCellName(toCol, toRow)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := w.f.MergeCell(sheetName, from, to); err != nil {
		return fmt.Errorf("failed to merge %s:%s: %w", from, to, err)
	}
	// Merged ranges keep only the top-left style.
	if err := w.f.SetCellStyle(sheetName, from, to, w.cellStyle); err != nil {
		return fmt.Errorf("failed to style %s:%s: %w", from, to, err)
	}
	return nil
}

func (w *sheetWriter) write(rep report.Report) error {
	if err := w.styles(); err != nil {
		return err
	}

	cols := leadingColumns(rep)
	width := len(cols) + len(StatHeaders)

	for i, header := range Headers(rep) {
		if err := w.set(i+1, 1, header, w.headerStyle); err != nil {
			return err
		}
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		colWidth := 18.0
		if i < len(cols) {
			colWidth = cols[i].width
		}
		if err := w.f.SetColWidth(sheetName, colName, colName, colWidth); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	row := 2
	for _, r := range rep.Rows {
		for i, c := range cols {
			span := c.span(r)
			if span == 0 {
				continue
			}
			if err := w.set(i+1, row, c.value(r), w.cellStyle); err != nil {
				return err
			}
			if err := w.merge(i+1, row, i+1, row+span-1); err != nil {
				return err
			}
		}
		for j, b := range report.Buckets {
			if err := w.set(len(cols)+j+1, row, r.Stats.Value(b), w.cellStyle); err != nil {
				return err
			}
		}
		row++
	}

	if len(rep.Rows) == 0 {
		if err := w.set(1, row, noDataLabel, w.cellStyle); err != nil {
			return err
		}
		if err := w.merge(1, row, width, row); err != nil {
			return err
		}
		row++
	}

	if err := w.set(1, row, grandTotalLabel, w.totalStyle); err != nil {
		return err
	}
	if len(cols) > 1 {
		from, _ := excelize.CoordinatesToCellName(1, row)
		to, _ := excelize.CoordinatesToCellName(len(cols), row)
		if err := w.f.MergeCell(sheetName, from, to); err != nil {
			return fmt.Errorf("failed to merge total label: %w", err)
		}
		if err := w.f.SetCellStyle(sheetName, from, to, w.totalStyle); err != nil {
			return fmt.Errorf("failed to style total label: %w", err)
		}
	}
	for j, b := range report.Buckets {
		if err := w.set(len(cols)+j+1, row, rep.Totals.Value(b), w.totalStyle); err != nil {
			return err
		}
	}

	if err := w.f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}
	return nil
}
