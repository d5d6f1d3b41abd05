package parse

import (
	"fmt"

	"github.com/mikenno/modelgen/internal/token"
)

// SyntaxError is a fatal, positioned parse failure (§7: Syntactic errors).
type SyntaxError struct {
	Filename string
	Pos      token.Position
	Message  string
}

func (e *SyntaxError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("%s:%s: %s", e.Filename, e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}
