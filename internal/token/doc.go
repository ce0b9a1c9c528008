// Package token defines lexical token kinds for the Ro front end.
// Invariants:
//   - Token.Text is never empty and never contains whitespace.
//   - Token.Span matches the bytes of Text in the source file.
//   - Line comments (// ...) never reach the token stream; block-comment
//     markers (/* and */) do, and are removed by a separate filter pass.
//   - Type names (float, int, ...) are identifiers. The front end does not
//     check types.
package token
