package models

// PostcodeRecord pairs a raw input value with its lookup key.
type PostcodeRecord struct {
	// Raw is the value as read from the input cell ("" when the cell is empty).
	Raw string `json:"raw"`
	// Normalized is Raw uppercased with all whitespace removed.
	Normalized string `json:"normalized"`
}

// Blank reports whether the record has nothing to look up.
func (r PostcodeRecord) Blank() bool {
	return r.Normalized == ""
}
