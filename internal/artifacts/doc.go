// Package artifacts harvests expected per-sample output files into the typed
// descriptors returned to the orchestrating service.
//
// Expected filenames derive from each sample's run prefix and a suffix
// template appropriate to the pairing mode. Files missing for an individual
// sample are silently skipped; a job where nothing at all survived processing
// is a NoOutput failure, distinct from a tooling fault.
package artifacts
