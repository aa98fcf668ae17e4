package wardlookup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/wardlookup/pkg/wardlookup/models"
	"github.com/ukaji3/wardlookup/pkg/wardlookup/postcodes"
	"github.com/ukaji3/wardlookup/pkg/wardlookup/sheet"
)

// fakeLookup resolves known normalized codes in a single batch.
type fakeLookup struct {
	known map[string]*models.LookupResult
	calls int
	codes []string
}

func (f *fakeLookup) LookupAll(_ context.Context, codes []string, progress postcodes.ProgressFunc) []*models.LookupResult {
	f.calls++
	f.codes = append([]string(nil), codes...)
	if progress != nil && len(codes) > 0 {
		progress(1, 1, len(codes))
	}
	out := make([]*models.LookupResult, len(codes))
	for i, code := range codes {
		out[i] = f.known[postcodes.Normalize(code)]
	}
	return out
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{known: map[string]*models.LookupResult{
		"SW1A1AA": {
			Postcode:      strPtr("SW1A 1AA"),
			AdminWard:     strPtr("St James's"),
			AdminDistrict: strPtr("Westminster"),
			Region:        strPtr("London"),
			Country:       strPtr("England"),
			Latitude:      floatPtr(51.501009),
			Longitude:     floatPtr(-0.141588),
		},
		"EH11YZ": {
			Postcode: strPtr("EH1 1YZ"),
			Country:  strPtr("Scotland"),
		},
	}}
}

func writeInput(t *testing.T, header []interface{}, rows ...[]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		t.Fatalf("SetSheetRow: %v", err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "input.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func TestProcessMixedPostcodes(t *testing.T) {
	input := writeInput(t,
		[]interface{}{"postcode", "description"},
		[]interface{}{"SW1A 1AA", "Westminster"},
		[]interface{}{nil, "no postcode"},
		[]interface{}{"BOGUSCODE", "invalid"},
	)
	output := filepath.Join(t.TempDir(), "output.xlsx")

	lookup := newFakeLookup()
	opts := DefaultOptions()
	opts.Lookup = lookup

	summary, err := Process(context.Background(), input, output, opts)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if summary.Total != 3 || summary.Succeeded != 1 || summary.Blank != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.Ratio() != "1/3" || summary.Failed() != 2 {
		t.Errorf("Ratio() = %q, Failed() = %d", summary.Ratio(), summary.Failed())
	}
	if summary.Batches != 1 || summary.Countries["England"] != 1 {
		t.Errorf("unexpected batches/countries: %d %v", summary.Batches, summary.Countries)
	}
	if want := []string{"SW1A 1AA", "", "BOGUSCODE"}; len(lookup.codes) != 3 || lookup.codes[1] != want[1] || lookup.codes[2] != want[2] {
		t.Errorf("lookup received %q, want %q", lookup.codes, want)
	}

	table, err := sheet.Read(output, sheet.ReadOptions{})
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	wantColumns := append([]string{"postcode", "description"}, FieldColumns...)
	if len(table.Columns) != len(wantColumns) {
		t.Fatalf("output columns = %v, want %v", table.Columns, wantColumns)
	}
	for i, name := range wantColumns {
		if table.Columns[i] != name {
			t.Errorf("column %d = %q, want %q", i, table.Columns[i], name)
		}
	}
	if len(table.Rows) != 3 {
		t.Fatalf("expected 3 output rows, got %d", len(table.Rows))
	}

	ward := table.ColumnIndex("admin_ward")
	formatted := table.ColumnIndex("postcode_formatted")
	if table.Rows[0][ward] != "St James's" || table.Rows[0][formatted] != "SW1A 1AA" {
		t.Errorf("unexpected first row: %#v", table.Rows[0])
	}
	if table.Rows[1][1] != "no postcode" || table.Rows[2][1] != "invalid" {
		t.Errorf("rows reordered: %#v", table.Rows)
	}
	for _, row := range table.Rows[1:] {
		for _, idx := range []int{ward, formatted} {
			if row[idx] != nil {
				t.Errorf("expected empty field cell, got %#v", row[idx])
			}
		}
	}
}

func TestProcessCountsCountriesAndProgress(t *testing.T) {
	input := writeInput(t,
		[]interface{}{"id", "postcode"},
		[]interface{}{1, "sw1a1aa"},
		[]interface{}{2, "EH1 1YZ"},
		[]interface{}{3, " eh1 1yz "},
	)
	output := filepath.Join(t.TempDir(), "output.csv")

	var progress [][3]int
	opts := DefaultOptions()
	opts.Lookup = newFakeLookup()
	opts.Progress = func(batch, total, size int) {
		progress = append(progress, [3]int{batch, total, size})
	}

	summary, err := Process(context.Background(), input, output, opts)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if summary.Ratio() != "3/3" {
		t.Errorf("Ratio() = %q, want 3/3", summary.Ratio())
	}
	if summary.Countries["Scotland"] != 2 || summary.Countries["England"] != 1 {
		t.Errorf("unexpected countries: %v", summary.Countries)
	}
	if len(progress) != 1 || progress[0] != [3]int{1, 1, 3} {
		t.Errorf("unexpected progress calls: %v", progress)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("expected csv output: %v", err)
	}
}

func TestProcessMissingColumn(t *testing.T) {
	input := writeInput(t,
		[]interface{}{"postcode", "description"},
		[]interface{}{"SW1A 1AA", "Westminster"},
	)
	lookup := newFakeLookup()
	opts := DefaultOptions()
	opts.PostcodeColumn = "zip"
	opts.Lookup = lookup

	_, err := Process(context.Background(), input, filepath.Join(t.TempDir(), "out.xlsx"), opts)
	if !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
	var colErr *ColumnNotFoundError
	if !errors.As(err, &colErr) {
		t.Fatalf("expected *ColumnNotFoundError, got %T", err)
	}
	if len(colErr.Available) != 2 || colErr.Available[0] != "postcode" || colErr.Available[1] != "description" {
		t.Errorf("unexpected available columns: %v", colErr.Available)
	}
	if lookup.calls != 0 {
		t.Errorf("expected no lookups, got %d", lookup.calls)
	}
}

func TestProcessSetupErrors(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.xlsx")
	if err := os.WriteFile(corrupt, []byte("not a workbook"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	valid := writeInput(t, []interface{}{"postcode"}, []interface{}{"SW1A 1AA"})

	tests := []struct {
		name    string
		input   string
		output  string
		wantErr error
	}{
		{"missing input", filepath.Join(dir, "missing.xlsx"), filepath.Join(dir, "out.xlsx"), ErrFileNotFound},
		{"corrupt input", corrupt, filepath.Join(dir, "out.xlsx"), ErrInvalidFormat},
		{"unsupported output", valid, filepath.Join(dir, "out.json"), ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := newFakeLookup()
			opts := DefaultOptions()
			opts.Lookup = lookup

			_, err := Process(context.Background(), tt.input, tt.output, opts)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if lookup.calls != 0 {
				t.Errorf("expected no lookups, got %d", lookup.calls)
			}
		})
	}
}

func TestProcessRequiresLookup(t *testing.T) {
	if _, err := Process(context.Background(), "in.xlsx", "out.xlsx", DefaultOptions()); err == nil {
		t.Fatal("expected error without a lookup client")
	}
}
