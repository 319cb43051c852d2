// Copyright © 2025 The phpls authors

package phpast

// Diagnostic reports a problem found while parsing a document. Parse
// diagnostics never abort indexing; partial trees are still analyzed.
type Diagnostic struct {
	Span    Span
	Message string
}
