// Package readpair reconciles raw forward/reverse read files with the
// run-prefix index, producing the ordered sample list every downstream
// pipeline consumes.
//
// Matching is positional: forward and reverse lists are sorted
// lexicographically and paired index-for-index, then each forward basename
// must match exactly one run prefix, each prefix may be consumed once, and a
// paired reverse file must share the prefix. The resulting order drives
// generated-command order, which downstream consumers rely on for
// deterministic output naming.
package readpair
