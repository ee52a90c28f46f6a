// Package token defines lexical token kinds and trivia for Zen-C.
// Invariants:
//   - Token.Text is the exact source text covered by Token.Span.
//   - Comments and whitespace never appear in the token stream; they are kept
//     as Leading trivia of the next significant token.
//   - `//>` build directives and `#` preprocessor lines are whole-line tokens
//     (BuildDirective, PPDirective); their fields are split by the parser.
//   - Primitive type names (i32, usize, string, ...) are identifiers.
//     The type parser recognizes them through IsPrimitiveType.
//   - `&mut` is lexed as Amp + KwMut; the parser joins them.
package token
