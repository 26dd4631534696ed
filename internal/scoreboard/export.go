package scoreboard

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportSheet is the worksheet name of the scoreboard export.
const ExportSheet = "Scoreboard"

// WriteXLSX writes the snapshot as a spreadsheet: one row per team in board order
// followed by a total row.
func WriteXLSX(w io.Writer, snap Snapshot, exportedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return fmt.Errorf("data style: %w", err)
	}

	_ = f.SetColWidth(ExportSheet, "A", "A", 8)
	_ = f.SetColWidth(ExportSheet, "B", "B", 24)
	_ = f.SetColWidth(ExportSheet, "C", "C", 12)
	_ = f.SetColWidth(ExportSheet, "D", "D", 10)

	headers := []string{"Rank", "Team", "Color", "Score"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		_ = f.SetCellValue(ExportSheet, cell, header)
		_ = f.SetCellStyle(ExportSheet, cell, cell, headerStyle)
	}

	total := 0
	for i, team := range snap.Teams {
		row := i + 2
		_ = f.SetCellValue(ExportSheet, fmt.Sprintf("A%d", row), i+1)
		_ = f.SetCellValue(ExportSheet, fmt.Sprintf("B%d", row), team.Name)
		_ = f.SetCellValue(ExportSheet, fmt.Sprintf("C%d", row), team.DisplayColor)
		_ = f.SetCellValue(ExportSheet, fmt.Sprintf("D%d", row), team.Score)
		_ = f.SetCellStyle(ExportSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), dataStyle)

		swatch, err := f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Color: []string{strings.TrimPrefix(team.DisplayColor, "#")}, Pattern: 1},
			Border: border,
		})
		if err == nil {
			cell := fmt.Sprintf("C%d", row)
			_ = f.SetCellStyle(ExportSheet, cell, cell, swatch)
		}
		total += team.Score
	}

	summaryRow := len(snap.Teams) + 2
	_ = f.SetCellValue(ExportSheet, fmt.Sprintf("A%d", summaryRow), "Total")
	_ = f.MergeCell(ExportSheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("C%d", summaryRow))
	_ = f.SetCellValue(ExportSheet, fmt.Sprintf("D%d", summaryRow), total)
	_ = f.SetCellValue(ExportSheet, "F1", "Exported")
	_ = f.SetCellValue(ExportSheet, "G1", exportedAt.UTC().Format(time.RFC3339))

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ExportFilename names the download for the given export time.
func ExportFilename(exportedAt time.Time) string {
	return fmt.Sprintf("scoreboard_%s.xlsx", exportedAt.UTC().Format("20060102_150405"))
}
