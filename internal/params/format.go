package params

import (
	"sort"
	"strings"
)

// Format renders a configuration mapping into a single space-joined flag
// string. Options render in sorted option-name order; options absent from the
// mapping, boolean options that are false, and values equal to the "default"
// sentinel are omitted.
func Format(values map[string]string, schema Schema, db Databases) (string, error) {
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)

	rendered := make([]string, 0, len(names))
	for _, name := range names {
		spec := schema[name]
		value, ok := values[name]
		if !ok {
			continue
		}

		flag := dashes(spec.Flag) + spec.Flag
		switch spec.Kind {
		case KindFlag:
			if strings.EqualFold(value, "true") {
				rendered = append(rendered, flag)
			}
		case KindValue:
			if value == "" || value == "default" {
				continue
			}
			rendered = append(rendered, flag+" "+value)
		case KindDatabase:
			if value == "" || value == "default" {
				continue
			}
			path, err := db.Resolve(value)
			if err != nil {
				return "", err
			}
			rendered = append(rendered, flag+" "+path)
		case KindQuoted:
			if value == "" {
				continue
			}
			rendered = append(rendered, flag+` "`+strings.Trim(value, `"`)+`"`)
		}
	}

	return strings.Join(rendered, " "), nil
}

// SplitArgs breaks a formatted flag string into argument tokens, keeping
// double-quoted segments intact with the quotes removed.
func SplitArgs(formatted string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false
	pending := false

	for _, r := range formatted {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			pending = true
		case r == ' ' && !inQuotes:
			if pending {
				args = append(args, current.String())
				current.Reset()
				pending = false
			}
		default:
			current.WriteRune(r)
			pending = true
		}
	}
	if pending {
		args = append(args, current.String())
	}
	return args
}

func dashes(flag string) string {
	if len(flag) == 1 {
		return "-"
	}
	return "--"
}
