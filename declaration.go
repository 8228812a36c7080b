package cmdfactory

import (
	"fmt"
	"go/token"
	"strconv"
)

// Shape classifies declarations into plain argument holding records
// and subcommand dispatching enumerations.
type Shape uint8

const (
	ShapeInvalid Shape = iota
	ShapeArgs
	ShapeSubcommand
)

func (s Shape) String() string {
	switch s {
	case ShapeArgs:
		return "args"
	case ShapeSubcommand:
		return "subcommand"
	default:
		return "invalid"
	}
}

// Attribute is a single raw `key=value` or bare `key` configuration entry.
type Attribute struct {
	Key   string
	Value string
	Bare  bool
	Pos   token.Position
}

func (a Attribute) String() string {
	if a.Bare {
		return a.Key
	}
	return fmt.Sprintf("%s=%s", a.Key, a.Value)
}

// Member is either a record field or an enumeration variant.
type Member struct {
	Name       string
	Type       string
	Doc        string
	Attributes []Attribute
	Pos        token.Position
}

// Import is an import spec of the file holding a declaration.
type Import struct {
	Name string
	Path string
}

func (i Import) String() string {
	if i.Name == "" {
		return strconv.Quote(i.Path)
	}
	return i.Name + " " + strconv.Quote(i.Path)
}

type Declaration struct {
	Package    string
	Imports    []Import
	Name       string
	Doc        string
	Shape      Shape
	Generics   Generics
	Attributes []Attribute
	Members    []Member
	Pos        token.Position
}

func (d Declaration) Accept(v Visitor) error {
	switch d.Shape {
	case ShapeArgs:
		return v.VisitArgs(d)
	case ShapeSubcommand:
		return v.VisitSubcommand(d)
	default:
		return Errorf(d.Pos, d.Name, "declaration shape %s can't be derived", d.Shape)
	}
}
