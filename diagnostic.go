package cmdfactory

import (
	"fmt"
	"go/token"
)

// Diagnostic reports malformed or conflicting declaration attributes
// together with the offending source location.
type Diagnostic struct {
	Pos  token.Position
	Decl string
	Msg  string
}

func Errorf(pos token.Position, decl string, format string, a ...interface{}) *Diagnostic {
	return &Diagnostic{Pos: pos, Decl: decl, Msg: fmt.Sprintf(format, a...)}
}

func (d *Diagnostic) Error() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: type %s: %s", d.Pos, d.Decl, d.Msg)
	}
	return fmt.Sprintf("type %s: %s", d.Decl, d.Msg)
}
