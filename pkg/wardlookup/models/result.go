package models

// LookupResult is the subset of a postcodes.io result used for enrichment.
// Any field may be null in the service response.
type LookupResult struct {
	// Postcode is the canonical formatted postcode (e.g., "SW1A 1AA").
	Postcode *string `json:"postcode"`
	// AdminWard is the electoral ward.
	AdminWard *string `json:"admin_ward"`
	// AdminDistrict is the district or unitary authority.
	AdminDistrict *string `json:"admin_district"`
	// ParliamentaryConstituency is the Westminster constituency.
	ParliamentaryConstituency *string `json:"parliamentary_constituency"`
	// Region is the English region (null outside England).
	Region *string `json:"region"`
	// Country is the constituent country of the UK.
	Country *string `json:"country"`
	// Latitude is the WGS84 latitude.
	Latitude *float64 `json:"latitude"`
	// Longitude is the WGS84 longitude.
	Longitude *float64 `json:"longitude"`
}

// Fields is the fixed record appended to every output row.
// A nil field is written as an empty cell.
type Fields struct {
	AdminWard                 *string  `json:"admin_ward"`
	AdminDistrict             *string  `json:"admin_district"`
	ParliamentaryConstituency *string  `json:"parliamentary_constituency"`
	Region                    *string  `json:"region"`
	Country                   *string  `json:"country"`
	PostcodeFormatted         *string  `json:"postcode_formatted"`
	Latitude                  *float64 `json:"latitude"`
	Longitude                 *float64 `json:"longitude"`
}

// Values returns the fields as cells in output column order.
func (f Fields) Values() []interface{} {
	return []interface{}{
		stringCell(f.AdminWard),
		stringCell(f.AdminDistrict),
		stringCell(f.ParliamentaryConstituency),
		stringCell(f.Region),
		stringCell(f.Country),
		stringCell(f.PostcodeFormatted),
		floatCell(f.Latitude),
		floatCell(f.Longitude),
	}
}

func stringCell(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func floatCell(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}
