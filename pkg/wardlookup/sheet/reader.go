package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/wardlookup/pkg/wardlookup/models"
)

// DefaultSheetName is used for tables that do not come from a workbook.
const DefaultSheetName = "Sheet1"

// ErrEmptySheet indicates a sheet without any non-empty cell.
var ErrEmptySheet = errors.New("sheet contains no data")

// ReadOptions configures Read.
type ReadOptions struct {
	// Sheet selects a worksheet by name. Empty selects the first sheet.
	// Ignored for CSV input.
	Sheet string
}

// Read loads the table at path. The header is the first non-empty row of the
// used range; every following row up to the last non-empty one is a data row.
func Read(path string, opts ReadOptions) (*models.Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatCSV:
		return readCSV(path)
	default:
		return readXLSX(path, opts.Sheet)
	}
}

func readXLSX(path, sheetName string) (*models.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, errors.New("no sheets found in workbook")
	}
	if sheetName == "" {
		sheetName = sheetList[0]
	} else if !slices.Contains(sheetList, sheetName) {
		return nil, fmt.Errorf("sheet %q not found (available sheets: %s)", sheetName, strings.Join(sheetList, ", "))
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	return buildTable(sheetName, rows, func(rowIdx, colIdx int, text string) interface{} {
		// Only numeric cells become numbers; text cells keep their text even
		// when it looks numeric.
		cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
		if err != nil {
			return text
		}
		cellType, err := f.GetCellType(sheetName, cellName)
		if err != nil {
			return text
		}
		if cellType == excelize.CellTypeNumber || cellType == excelize.CellTypeUnset {
			return parseValue(text)
		}
		return text
	})
}

func readCSV(path string) (*models.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}

	return buildTable(DefaultSheetName, rows, func(_, _ int, text string) interface{} {
		return parseValue(text)
	})
}

type cellConverter func(rowIdx, colIdx int, text string) interface{}

func buildTable(sheetName string, rows [][]string, convert cellConverter) (*models.Table, error) {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return nil, ErrEmptySheet
	}
	width := maxCol - minCol + 1

	header := make([]string, width)
	for c := minCol; c <= maxCol; c++ {
		header[c-minCol] = cellAt(rows[minRow], c)
	}

	data := make([][]interface{}, 0, maxRow-minRow)
	for r := minRow + 1; r <= maxRow; r++ {
		row := make([]interface{}, width)
		for c := minCol; c <= maxCol; c++ {
			text := cellAt(rows[r], c)
			if text == "" {
				continue
			}
			row[c-minCol] = convert(r, c, text)
		}
		data = append(data, row)
	}

	return &models.Table{
		SheetName: sheetName,
		Range:     rangeRef(minRow, maxRow, minCol, maxCol),
		Columns:   headerNames(header),
		Rows:      data,
	}, nil
}

func cellAt(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}
