package wardlookup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ukaji3/wardlookup/pkg/wardlookup/logging"
	"github.com/ukaji3/wardlookup/pkg/wardlookup/models"
	"github.com/ukaji3/wardlookup/pkg/wardlookup/postcodes"
	"github.com/ukaji3/wardlookup/pkg/wardlookup/sheet"
)

// Summary describes a completed run.
type Summary struct {
	InputPath  string
	OutputPath string
	// Total is the number of data rows, which is also the number of output rows.
	Total int
	// Blank is the number of rows without a postcode.
	Blank int
	// Succeeded is the number of rows with a lookup result.
	Succeeded int
	// Batches is the number of lookup batches issued.
	Batches int
	// Countries counts successful rows per country.
	Countries map[string]int
	Elapsed   time.Duration
}

// Failed returns the number of rows without a lookup result.
func (s *Summary) Failed() int {
	return s.Total - s.Succeeded
}

// Ratio formats the success count as "succeeded/total".
func (s *Summary) Ratio() string {
	return fmt.Sprintf("%d/%d", s.Succeeded, s.Total)
}

// Process reads inputPath, looks up the postcode column and writes the table
// with the lookup fields appended to outputPath. Lookup failures never fail
// the run; only setup problems (missing or unreadable input, missing column,
// unsupported format) and write failures are returned.
func Process(ctx context.Context, inputPath, outputPath string, opts Options) (*Summary, error) {
	if opts.Lookup == nil {
		return nil, errors.New("lookup client required")
	}
	column := opts.PostcodeColumn
	if column == "" {
		column = DefaultPostcodeColumn
	}
	logger := logging.NewComponentLogger(opts.Logger, "pipeline")
	started := time.Now()

	if _, err := sheet.DetectFormat(outputPath); err != nil {
		return nil, err
	}
	if _, err := os.Stat(inputPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, inputPath)
		}
		return nil, NewSheetError(inputPath, "read", err)
	}

	logger.Info("reading input file", logging.String("path", inputPath))
	table, err := sheet.Read(inputPath, sheet.ReadOptions{Sheet: opts.Sheet})
	if err != nil {
		if errors.Is(err, sheet.ErrUnsupportedFormat) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, NewSheetError(inputPath, "read", err))
	}

	idx := table.ColumnIndex(column)
	if idx < 0 {
		return nil, NewColumnNotFoundError(column, table.Columns)
	}

	records := postcodeRecords(table.Column(idx))
	codes := make([]string, len(records))
	blank := 0
	for i, rec := range records {
		codes[i] = rec.Raw
		if rec.Blank() {
			blank++
		}
	}
	logger.Info("found rows with postcodes",
		logging.String("rows", humanize.Comma(int64(len(records)))),
		logging.String("sheet", table.SheetName),
		logging.String("range", table.Range),
		logging.Int("blank", blank),
	)

	logger.Info("looking up postcodes")
	batches := 0
	progress := func(batch, total, size int) {
		batches = total
		if opts.Progress != nil {
			opts.Progress(batch, total, size)
		}
	}
	results := opts.Lookup.LookupAll(ctx, codes, progress)
	if len(results) != len(codes) {
		return nil, fmt.Errorf("lookup returned %d results for %d postcodes", len(results), len(codes))
	}

	summary := &Summary{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Total:      len(codes),
		Blank:      blank,
		Batches:    batches,
		Countries:  make(map[string]int),
	}
	values := make([][]interface{}, len(results))
	for i, result := range results {
		fields := ExtractFields(result)
		values[i] = fields.Values()
		if result == nil {
			continue
		}
		summary.Succeeded++
		if fields.Country != nil {
			summary.Countries[*fields.Country]++
		}
	}
	logger.Info("successfully looked up postcodes", logging.String("matched", summary.Ratio()))

	output, err := table.AppendColumns(FieldColumns, values)
	if err != nil {
		return nil, err
	}

	logger.Info("saving results", logging.String("path", outputPath))
	if err := sheet.Write(outputPath, output); err != nil {
		return nil, NewSheetError(outputPath, "write", err)
	}

	summary.Elapsed = time.Since(started)
	return summary, nil
}

func postcodeRecords(cells []interface{}) []models.PostcodeRecord {
	records := make([]models.PostcodeRecord, len(cells))
	for i, cell := range cells {
		raw := postcodes.CellString(cell)
		records[i] = models.PostcodeRecord{
			Raw:        raw,
			Normalized: postcodes.Normalize(raw),
		}
	}
	return records
}
