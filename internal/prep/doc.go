// Package prep parses preparation metadata tables and exposes the run-prefix
// index used to associate raw read files with sample identifiers.
//
// Metadata arrives as a QIIME-style tab-separated mapping file: a header row
// whose first column is the sample identifier (conventionally #SampleID) and
// which must contain a run_prefix column. The index is built once per job and
// is read-only afterwards.
package prep
