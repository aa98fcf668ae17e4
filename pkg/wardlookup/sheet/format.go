// Package sheet reads and writes the tabular files wardlookup enriches.
//
// Workbooks (.xlsx, .xlsm) go through excelize; .csv files through
// encoding/csv. Both are exchanged as a models.Table.
package sheet

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a spreadsheet file format.
type Format string

const (
	// FormatXLSX is an Office Open XML workbook.
	FormatXLSX Format = "xlsx"
	// FormatCSV is comma-separated text with a header row.
	FormatCSV Format = "csv"
)

// ErrUnsupportedFormat indicates a file extension with no reader or writer.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q (expected .xlsx, .xlsm or .csv)", ErrUnsupportedFormat, filepath.Base(path))
	}
}
