// Package wardlookup enriches spreadsheets of UK postcodes with
// administrative geography from postcodes.io.
package wardlookup

import (
	"context"
	"log/slog"

	"github.com/ukaji3/wardlookup/pkg/wardlookup/models"
	"github.com/ukaji3/wardlookup/pkg/wardlookup/postcodes"
)

// DefaultPostcodeColumn is the input column read when none is configured.
const DefaultPostcodeColumn = "postcode"

// Lookuper resolves postcodes, returning one entry (nil when unresolved) per
// code in input order. *postcodes.Client implements it.
type Lookuper interface {
	LookupAll(ctx context.Context, codes []string, progress postcodes.ProgressFunc) []*models.LookupResult
}

var _ Lookuper = (*postcodes.Client)(nil)

// Options configures Process.
type Options struct {
	// PostcodeColumn names the input column holding postcodes.
	PostcodeColumn string
	// Sheet selects the input worksheet. Empty selects the first sheet.
	Sheet string
	// Lookup resolves the postcodes. Required.
	Lookup Lookuper
	// Progress, if set, is called before each lookup batch.
	Progress postcodes.ProgressFunc
	// Logger receives status lines. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns default processing options.
func DefaultOptions() Options {
	return Options{
		PostcodeColumn: DefaultPostcodeColumn,
	}
}
