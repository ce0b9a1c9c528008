// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// # Emitting diagnostics
//
// Phases report through a diag.Reporter so that emission stays decoupled from
// storage. BagReporter aggregates diagnostics into a Bag, which supports
// sorting, deduplication and a hard limit on the number of entries.
//
// Package diag does not format anything for humans beyond the single-line
// short form; rendering lives in internal/diagfmt.
package diag
