package params

import (
	"path/filepath"

	"seqflow/internal/services"
)

// Kind selects the rendering rule for one schema entry.
type Kind int

const (
	// KindFlag renders a bare flag when the value is "true" and nothing
	// otherwise.
	KindFlag Kind = iota
	// KindValue renders the flag followed by the raw value.
	KindValue
	// KindDatabase renders the flag followed by a path resolved through the
	// database lookup table.
	KindDatabase
	// KindQuoted renders the flag followed by the value in double quotes.
	KindQuoted
)

// Spec declares how a single option renders. Flag carries no dashes; a
// single-rune flag is rendered with one dash, longer flags with two.
type Spec struct {
	Flag string
	Kind Kind
}

// Schema maps human-readable option names, as they appear in the job's
// configuration mapping, to rendering rules.
type Schema map[string]Spec

// Databases resolves database labels to filesystem path prefixes. It is an
// explicit value rather than ambient process environment so formatting stays
// pure and testable.
type Databases struct {
	Dir  string
	Refs map[string]string
}

// Resolve maps a database label to the index prefix path under Dir.
func (d Databases) Resolve(label string) (string, error) {
	ref, ok := d.Refs[label]
	if !ok {
		return "", services.Wrap(services.ErrConfiguration, "params", "resolve database",
			"unknown database label "+label, nil)
	}
	return filepath.Join(d.Dir, ref), nil
}
