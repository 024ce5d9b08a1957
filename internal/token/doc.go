// Package token defines lexical token kinds for Jlite sources.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End).
//   - Built-in type names (Int, Bool, String, Void) are keywords; class names
//     are identifiers and are told apart by the parser from context.
package token
