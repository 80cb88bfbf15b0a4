// Package params renders tool configuration mappings into canonical
// command-line flag strings.
//
// Each tool declares a static schema describing how every option renders:
// boolean flags, value-carrying flags, database path substitutions, or quoted
// long options. Flags are always emitted in sorted option-name order, so
// output is invariant under reordering of the input mapping.
package params
