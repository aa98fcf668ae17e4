package sheet

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/wardlookup/pkg/wardlookup/models"
)

// Write saves table to path in the format implied by its extension,
// replacing any existing file.
func Write(path string, table *models.Table) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	switch format {
	case FormatCSV:
		return writeCSV(path, table)
	default:
		return writeXLSX(path, table)
	}
}

func writeXLSX(path string, table *models.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := table.SheetName
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	if sheetName != DefaultSheetName {
		if err := f.SetSheetName(DefaultSheetName, sheetName); err != nil {
			return fmt.Errorf("name sheet %q: %w", sheetName, err)
		}
	}

	header := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if len(table.Columns) > 0 {
		style, err := f.NewStyle(&excelize.Style{
			Font:   &excelize.Font{Bold: true},
			Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
		})
		if err != nil {
			return fmt.Errorf("create header style: %w", err)
		}
		endCell, _ := excelize.CoordinatesToCellName(len(table.Columns), 1)
		if err := f.SetCellStyle(sheetName, "A1", endCell, style); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}

	for rowIdx, row := range table.Rows {
		for colIdx, value := range row {
			if value == nil {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cellName, value); err != nil {
				return fmt.Errorf("write %s: %w", cellName, err)
			}
		}
	}

	return f.SaveAs(path)
}

func writeCSV(path string, table *models.Table) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(file)
	if err := w.Write(table.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = formatValue(row[i])
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
