// Package postcodes is the postcodes.io client used to enrich spreadsheet rows.
//
// Lookups are sequential. Codes are normalized, deduplicated and sent in
// batches of up to MaxBatchSize; a failed batch falls back to one single
// lookup per code. Every lookup resolves to a result or nil, so callers always
// get exactly one entry per input code in input order. A fixed delay separates
// consecutive remote calls.
package postcodes
