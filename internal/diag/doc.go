// Package diag defines the diagnostic model shared by the lexer, parser and driver.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form (LEX1002, SYN2001), a short Message, the Primary span and
// optional Notes. Producers emit through a Reporter; BagReporter collects
// into a Bag that supports limits, sorting, deduplication and merging.
//
// Package diag performs no formatting beyond the single-line golden form.
// Rendering lives in internal/diagfmt.
package diag
