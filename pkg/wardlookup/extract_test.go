package wardlookup

import (
	"testing"

	"github.com/ukaji3/wardlookup/pkg/wardlookup/models"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestExtractFieldsNil(t *testing.T) {
	fields := ExtractFields(nil)
	if fields != (models.Fields{}) {
		t.Fatalf("expected all fields absent, got %+v", fields)
	}
	values := fields.Values()
	if len(values) != len(FieldColumns) {
		t.Fatalf("expected %d values, got %d", len(FieldColumns), len(values))
	}
	for i, v := range values {
		if v != nil {
			t.Errorf("value %d (%s) = %#v, want nil", i, FieldColumns[i], v)
		}
	}
}

func TestExtractFieldsMapsResult(t *testing.T) {
	result := &models.LookupResult{
		Postcode:                  strPtr("SW1A 1AA"),
		AdminWard:                 strPtr("St James's"),
		AdminDistrict:             strPtr("Westminster"),
		ParliamentaryConstituency: strPtr("Cities of London and Westminster"),
		Region:                    strPtr("London"),
		Country:                   strPtr("England"),
		Latitude:                  floatPtr(51.501009),
		Longitude:                 floatPtr(-0.141588),
	}

	got := ExtractFields(result).Values()
	want := []interface{}{
		"St James's",
		"Westminster",
		"Cities of London and Westminster",
		"London",
		"England",
		"SW1A 1AA",
		51.501009,
		-0.141588,
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s = %#v, want %#v", FieldColumns[i], got[i], want[i])
		}
	}
}

func TestExtractFieldsKeepsNullSubfields(t *testing.T) {
	result := &models.LookupResult{
		Postcode: strPtr("EH1 1YZ"),
		Country:  strPtr("Scotland"),
	}

	fields := ExtractFields(result)
	if fields.Region != nil {
		t.Errorf("expected region absent, got %q", *fields.Region)
	}
	if fields.Latitude != nil {
		t.Errorf("expected latitude absent, got %v", *fields.Latitude)
	}
	if fields.PostcodeFormatted == nil || *fields.PostcodeFormatted != "EH1 1YZ" {
		t.Errorf("unexpected postcode_formatted: %v", fields.PostcodeFormatted)
	}
}
