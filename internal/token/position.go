// Package token defines the source position and lexical token kinds shared
// by the tokenizer, parser, and evaluator.
package token

import "fmt"

// Position is an immutable anchor into a source string: a byte offset plus
// the 1-based line/column it corresponds to. Columns and offsets are counted
// over UTF-8 bytes, matching the tokenizer's single-pass byte scan.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String renders "line:column", the form used in tracebacks and parser
// error messages.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether p was ever advanced past the zero value.
func (p Position) IsValid() bool {
	return p.Line > 0
}
