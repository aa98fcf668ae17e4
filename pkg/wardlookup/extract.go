package wardlookup

import "github.com/ukaji3/wardlookup/pkg/wardlookup/models"

// FieldColumns names the columns appended to every output row, in order.
var FieldColumns = []string{
	"admin_ward",
	"admin_district",
	"parliamentary_constituency",
	"region",
	"country",
	"postcode_formatted",
	"latitude",
	"longitude",
}

// ExtractFields maps a lookup result to the fixed output record.
// A nil result yields a record with every field absent.
func ExtractFields(result *models.LookupResult) models.Fields {
	if result == nil {
		return models.Fields{}
	}
	return models.Fields{
		AdminWard:                 result.AdminWard,
		AdminDistrict:             result.AdminDistrict,
		ParliamentaryConstituency: result.ParliamentaryConstituency,
		Region:                    result.Region,
		Country:                   result.Country,
		PostcodeFormatted:         result.Postcode,
		Latitude:                  result.Latitude,
		Longitude:                 result.Longitude,
	}
}
