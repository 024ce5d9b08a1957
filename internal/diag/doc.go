// Package diag defines the diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexer, parser and static checker.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting layers.
//
// # Scope
//
// Package diag does not perform IO or CLI integration. Rendering lives in
// internal/diagfmt; orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string form
//     such as SEM3016.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// # Fail-fast phases
//
// Jlite phases stop at the first violation. A phase that fails returns an
// *Error (which wraps exactly one Diagnostic) as a plain Go error and, when a
// Reporter is configured, also reports the same diagnostic through it. Callers
// that need the structured record use errors.As or AsDiagnostic.
//
// # Code ranges
//
//	LEX1xxx  lexical
//	SYN2xxx  syntax
//	SEM3xxx  static checking
//	IO4xxx   file access
//	PRJ5xxx  project configuration
package diag
