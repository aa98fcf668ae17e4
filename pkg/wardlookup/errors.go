package wardlookup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/ukaji3/wardlookup/pkg/wardlookup/sheet"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file could not be read as a spreadsheet.
var ErrInvalidFormat = errors.New("unreadable spreadsheet")

// ErrUnsupportedFormat indicates a file extension with no reader or writer.
var ErrUnsupportedFormat = sheet.ErrUnsupportedFormat

// ErrColumnNotFound indicates the postcode column is missing from the input.
var ErrColumnNotFound = errors.New("column not found")

// ColumnNotFoundError reports a missing postcode column together with the
// columns the table does have.
type ColumnNotFoundError struct {
	Column    string
	Available []string
	// Suggestion is the closest available column name, if any is close.
	Suggestion string
}

func (e *ColumnNotFoundError) Error() string {
	msg := fmt.Sprintf("column %q not found in input file. Available columns: %s",
		e.Column, strings.Join(e.Available, ", "))
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func (e *ColumnNotFoundError) Unwrap() error {
	return ErrColumnNotFound
}

// NewColumnNotFoundError creates a ColumnNotFoundError, suggesting the
// available column closest to the requested one.
func NewColumnNotFoundError(column string, available []string) *ColumnNotFoundError {
	return &ColumnNotFoundError{
		Column:     column,
		Available:  append([]string(nil), available...),
		Suggestion: closestColumn(column, available),
	}
}

// closestColumn returns the candidate within a third of the requested name's
// length in edits (case-insensitive), or "".
func closestColumn(column string, candidates []string) string {
	target := strings.ToLower(column)
	limit := max(1, len(target)/3)
	best, bestDist := "", limit+1
	for _, candidate := range candidates {
		dist := levenshtein.ComputeDistance(target, strings.ToLower(candidate))
		if dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best
}

// SheetError represents a failure reading or writing a spreadsheet file.
type SheetError struct {
	Path string
	Op   string // "read", "write"
	Err  error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(path, op string, err error) *SheetError {
	return &SheetError{
		Path: path,
		Op:   op,
		Err:  err,
	}
}
