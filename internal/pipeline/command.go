package pipeline

import (
	"strings"
)

// Step is a single external-process invocation. When StdoutFile is set the
// process standard output is written to that file instead of being captured.
type Step struct {
	Program    string
	Args       []string
	StdoutFile string
}

// String renders the step in shell-like form for logs and error messages.
func (s Step) String() string {
	parts := make([]string, 0, len(s.Args)+3)
	parts = append(parts, s.Program)
	for _, arg := range s.Args {
		if strings.ContainsAny(arg, " \t") {
			parts = append(parts, `"`+arg+`"`)
			continue
		}
		parts = append(parts, arg)
	}
	if s.StdoutFile != "" {
		parts = append(parts, ">", s.StdoutFile)
	}
	return strings.Join(parts, " ")
}

// Command is the full invocation chain generated for one sample. Steps run in
// order; the first failing step fails the command.
type Command struct {
	RunPrefix string
	Steps     []Step
}

// String renders the whole chain for logs and error messages.
func (c Command) String() string {
	rendered := make([]string, 0, len(c.Steps))
	for _, step := range c.Steps {
		rendered = append(rendered, step.String())
	}
	return strings.Join(rendered, "; ")
}
