package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/wardlookup/pkg/wardlookup/models"
	"github.com/ukaji3/wardlookup/pkg/wardlookup/sheet"
)

const defaultSamplePath = "sample_postcodes.xlsx"

// samplePostcodes covers each UK country and several English regions.
var samplePostcodes = [][2]string{
	{"SW1A 1AA", "Westminster Parliament"},
	{"M1 1AE", "Manchester City Centre"},
	{"B1 1AA", "Birmingham City Centre"},
	{"EH1 1YZ", "Edinburgh City Centre"},
	{"CF10 1DD", "Cardiff City Centre"},
	{"BT1 1AA", "Belfast City Centre"},
	{"LS1 1AA", "Leeds City Centre"},
	{"L1 1AA", "Liverpool City Centre"},
	{"NE1 1AA", "Newcastle City Centre"},
	{"BS1 1AA", "Bristol City Centre"},
}

func newSampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sample [output_file]",
		Short: "Write a sample spreadsheet of postcodes for testing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultSamplePath
			if len(args) == 1 {
				path = args[0]
			}
			if err := sheet.Write(path, sampleTable()); err != nil {
				return fmt.Errorf("write sample: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %d sample postcodes\n", path, len(samplePostcodes))
			return nil
		},
	}
}

func sampleTable() *models.Table {
	rows := make([][]interface{}, len(samplePostcodes))
	for i, entry := range samplePostcodes {
		rows[i] = []interface{}{entry[0], entry[1]}
	}
	return &models.Table{
		SheetName: sheet.DefaultSheetName,
		Columns:   []string{"postcode", "description"},
		Rows:      rows,
	}
}
