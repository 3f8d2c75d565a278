// Package sleepscope computes sleep statistics for a synthetic workforce.
//
// The module is layered the same way end to end:
//
//	dataset    deterministic roster and nightly records, plus filtering
//	engine     domain-agnostic statistics over a RecordView
//	analytics  averages, distributions, period buckets and comparisons
//	schema     self-description of both collections
//	helpers    CSV and Excel import/export
//	server     JSON API over gin
//
// The sleepscope command under cmd/ prints any view as json, yaml, csv,
// text or xlsx, or serves the API.
package sleepscope

// Version is the module release.
const Version = "0.3.0"
