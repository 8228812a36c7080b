package parsers

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/1pkg/cmdfactory"
)

type mapfs struct {
	fstest.MapFS
	fileErr error
	dirErr  error
}

func (fsm mapfs) ReadFile(name string) ([]byte, error) {
	f, _ := fsm.MapFS.ReadFile(name)
	return f, fsm.fileErr
}

func (fsm mapfs) ReadDir(name string) ([]fs.DirEntry, error) {
	dir, _ := fsm.MapFS.ReadDir(name)
	return dir, fsm.dirErr
}

func escape(body string) []byte {
	return []byte(strings.ReplaceAll(body, "#", "`"))
}

func pos(fname string, line, column int) token.Position {
	return token.Position{Filename: fname, Line: line, Column: column}
}

// offsets drops byte offsets so expectations can be written with lines and columns only.
func offsets(decls []cmdfactory.Declaration) []cmdfactory.Declaration {
	for i := range decls {
		d := &decls[i]
		d.Pos.Offset = 0
		for j := range d.Attributes {
			d.Attributes[j].Pos.Offset = 0
		}
		for j := range d.Members {
			m := &d.Members[j]
			m.Pos.Offset = 0
			for k := range m.Attributes {
				m.Attributes[k].Pos.Offset = 0
			}
		}
	}
	return decls
}

func TestParse(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	table := map[string]struct {
		ctx   context.Context
		dir   fs.FS
		pckg  string
		types []string
		decls []cmdfactory.Declaration
		err   error
	}{
		"empty dir should produce expected error message": {
			ctx:   context.TODO(),
			dir:   fstest.MapFS{},
			pckg:  "foo",
			types: []string{"Config"},
			err:   errors.New("type Config can't be found in ast package foo"),
		},
		"empty dir without requested types should produce no declarations": {
			ctx:  context.TODO(),
			dir:  fstest.MapFS{},
			pckg: "foo",
		},
		"dir read error should produce expected error message": {
			ctx: context.TODO(),
			dir: mapfs{
				MapFS:  fstest.MapFS{},
				dirErr: errors.New("dir error"),
			},
			pckg: "foo",
			err:  errors.New("ast package foo fs dir can't be read, dir error"),
		},
		"file read error should produce expected error message": {
			ctx: context.TODO(),
			dir: mapfs{
				MapFS: fstest.MapFS{
					"config.go": {Data: []byte("package foo")},
				},
				fileErr: errors.New("file error"),
			},
			pckg: "foo",
			err:  errors.New("ast file config.go in package foo fs file can't be read, file error"),
		},
		"canceled context should produce expected error message": {
			ctx: canceled,
			dir: fstest.MapFS{
				"config.go": {Data: []byte("package foo\n\ntype Config struct{}\n")},
			},
			pckg: "foo",
			err:  context.Canceled,
		},
		"annotated struct should produce expected args declaration": {
			ctx: context.TODO(),
			dir: fstest.MapFS{
				"config.go": {Data: escape(`package foo

import (
	"fmt"
	_ "embed"
	str "strings"
)

// Config doc.
//cmdfactory:args name=tool, rename_all="snake"
type Config struct {
	Embedded
	// Out doc.
	Out string #cmdfactory:"env,required"#
	Level, Depth int
	hidden bool
	_ int
	Skipped str.Builder #cmdfactory:"-"#
	Plain fmt.Stringer #json:"plain"#
}

type Embedded struct{}
`)},
				"config.txt": {Data: []byte("type Config struct{}")},
				"dir":        {Mode: fs.ModeDir},
			},
			pckg: "foo",
			decls: []cmdfactory.Declaration{
				{
					Package: "foo",
					Imports: []cmdfactory.Import{
						{Path: "fmt"},
						{Name: "str", Path: "strings"},
					},
					Name:  "Config",
					Doc:   "Config doc.",
					Shape: cmdfactory.ShapeArgs,
					Attributes: []cmdfactory.Attribute{
						{Key: "name", Value: "tool", Pos: pos("config.go", 10, 1)},
						{Key: "rename_all", Value: "snake", Pos: pos("config.go", 10, 1)},
					},
					Members: []cmdfactory.Member{
						{
							Name: "Out",
							Type: "string",
							Doc:  "Out doc.",
							Attributes: []cmdfactory.Attribute{
								{Key: "env", Bare: true, Pos: pos("config.go", 14, 13)},
								{Key: "required", Bare: true, Pos: pos("config.go", 14, 13)},
							},
							Pos: pos("config.go", 14, 2),
						},
						{Name: "Level", Type: "int", Pos: pos("config.go", 15, 2)},
						{Name: "Depth", Type: "int", Pos: pos("config.go", 15, 9)},
						{
							Name: "Skipped",
							Type: "str.Builder",
							Attributes: []cmdfactory.Attribute{
								{Key: "skip", Bare: true, Pos: pos("config.go", 18, 22)},
							},
							Pos: pos("config.go", 18, 2),
						},
						{Name: "Plain", Type: "fmt.Stringer", Pos: pos("config.go", 19, 2)},
					},
					Pos: pos("config.go", 11, 6),
				},
			},
		},
		"annotated struct should produce expected subcommand declaration": {
			ctx: context.TODO(),
			dir: fstest.MapFS{
				"root.go": {Data: escape(`package foo

//cmdfactory:subcommand
type Root struct {
	Start Config
	Stop *Config #cmdfactory:"name=halt"#
}
`)},
			},
			pckg: "foo",
			decls: []cmdfactory.Declaration{
				{
					Package: "foo",
					Name:    "Root",
					Shape:   cmdfactory.ShapeSubcommand,
					Members: []cmdfactory.Member{
						{Name: "Start", Type: "Config", Pos: pos("root.go", 5, 2)},
						{
							Name: "Stop",
							Type: "*Config",
							Attributes: []cmdfactory.Attribute{
								{Key: "name", Value: "halt", Pos: pos("root.go", 6, 15)},
							},
							Pos: pos("root.go", 6, 2),
						},
					},
					Pos: pos("root.go", 4, 6),
				},
			},
		},
		"annotated named type should collect typed constants variants": {
			ctx: context.TODO(),
			dir: fstest.MapFS{
				"action.go": {Data: []byte(`package foo

const (
	Start Action = iota //cmdfactory:variant name=begin
	// Stop doc.
	Stop
	_
	Restart
)

const Limit = 10

//cmdfactory:subcommand rename_all=snake
type Action int
`)},
			},
			pckg: "foo",
			decls: []cmdfactory.Declaration{
				{
					Package: "foo",
					Name:    "Action",
					Shape:   cmdfactory.ShapeSubcommand,
					Attributes: []cmdfactory.Attribute{
						{Key: "rename_all", Value: "snake", Pos: pos("action.go", 13, 1)},
					},
					Members: []cmdfactory.Member{
						{
							Name: "Start",
							Type: "Action",
							Attributes: []cmdfactory.Attribute{
								{Key: "name", Value: "begin", Pos: pos("action.go", 4, 22)},
							},
							Pos: pos("action.go", 4, 2),
						},
						{Name: "Stop", Type: "Action", Doc: "Stop doc.", Pos: pos("action.go", 6, 2)},
						{Name: "Restart", Type: "Action", Pos: pos("action.go", 8, 2)},
					},
					Pos: pos("action.go", 14, 6),
				},
			},
		},
		"generic struct should produce expected type parameters": {
			ctx: context.TODO(),
			dir: fstest.MapFS{
				"pair.go": {Data: []byte(`package foo

import "fmt"

//cmdfactory:args
type Pair[K comparable, V fmt.Stringer] struct {
	Key K
}
`)},
			},
			pckg: "foo",
			decls: []cmdfactory.Declaration{
				{
					Package: "foo",
					Imports: []cmdfactory.Import{{Path: "fmt"}},
					Name:    "Pair",
					Shape:   cmdfactory.ShapeArgs,
					Generics: cmdfactory.Generics{Params: []cmdfactory.TypeParam{
						{Names: []string{"K"}, Constraint: "comparable"},
						{Names: []string{"V"}, Constraint: "fmt.Stringer"},
					}},
					Members: []cmdfactory.Member{
						{Name: "Key", Type: "K", Pos: pos("pair.go", 7, 2)},
					},
					Pos: pos("pair.go", 6, 6),
				},
			},
		},
		"generated test and foreign package files should be skipped": {
			ctx: context.TODO(),
			dir: fstest.MapFS{
				"gen.go": {Data: []byte(`// Code generated by cmdfactory. DO NOT EDIT.

package foo

//cmdfactory:args
type Gen struct{}
`)},
				"gen_test.go": {Data: []byte("package foo\n\n//cmdfactory:args\ntype Test struct{}\n")},
				"bar.go":      {Data: []byte("package bar\n\n//cmdfactory:args\ntype Bar struct{}\n")},
			},
			pckg: "foo",
		},
		"requested types should filter declarations": {
			ctx: context.TODO(),
			dir: fstest.MapFS{
				"config.go": {Data: []byte("package foo\n\n//cmdfactory:args\ntype Config struct{}\n\n//cmdfactory:args\ntype Other struct{}\n")},
			},
			pckg:  "foo",
			types: []string{"Other"},
			decls: []cmdfactory.Declaration{
				{Package: "foo", Name: "Other", Shape: cmdfactory.ShapeArgs, Pos: pos("config.go", 7, 6)},
			},
		},
		"requested type without directive should produce expected error message": {
			ctx: context.TODO(),
			dir: fstest.MapFS{
				"config.go": {Data: []byte("package foo\n\n// Config doc.\ntype Config struct{}\n")},
			},
			pckg:  "foo",
			types: []string{"Config"},
			err:   errors.New("type Config in ast package foo has no cmdfactory: directive"),
		},
		"unsupported type directive should produce expected error message": {
			ctx: context.TODO(),
			dir: fstest.MapFS{
				"config.go": {Data: []byte("package foo\n\n//cmdfactory:flag\ntype Config struct{}\n")},
			},
			pckg: "foo",
			err:  errors.New("ast file config.go in package foo type Config ast parsing error, unsupported cmdfactory:flag directive on type"),
		},
		"conflicting type directives should produce expected error message": {
			ctx: context.TODO(),
			dir: fstest.MapFS{
				"config.go": {Data: []byte("package foo\n\n//cmdfactory:args\n//cmdfactory:subcommand\ntype Config struct{}\n")},
			},
			pckg: "foo",
			err:  errors.New("ast file config.go in package foo type Config ast parsing error, conflicting cmdfactory:args and cmdfactory:subcommand directives"),
		},
		"type alias should produce expected error message": {
			ctx: context.TODO(),
			dir: fstest.MapFS{
				"config.go": {Data: []byte("package foo\n\n//cmdfactory:args\ntype Config = struct{}\n")},
			},
			pckg: "foo",
			err:  errors.New("ast file config.go in package foo type Config ast parsing error, type alias Config can't be derived"),
		},
		"interface type should produce expected error message": {
			ctx: context.TODO(),
			dir: fstest.MapFS{
				"config.go": {Data: []byte("package foo\n\n//cmdfactory:subcommand\ntype Config interface{}\n")},
			},
			pckg: "foo",
			err:  errors.New("ast file config.go in package foo type Config ast parsing error, interface type Config can't hold derived methods"),
		},
		"args directive on named type should produce expected error message": {
			ctx: context.TODO(),
			dir: fstest.MapFS{
				"config.go": {Data: []byte("package foo\n\n//cmdfactory:args\ntype Config int\n")},
			},
			pckg: "foo",
			err:  errors.New("ast file config.go in package foo type Config ast parsing error, cmdfactory:args directive requires struct type, got int"),
		},
		"explicit name on multiple fields should produce expected error message": {
			ctx: context.TODO(),
			dir: fstest.MapFS{
				"config.go": {Data: escape("package foo\n\n//cmdfactory:args\ntype Config struct {\n\tA, B string #cmdfactory:\"name=x\"#\n}\n")},
			},
			pckg: "foo",
			err:  errors.New("ast file config.go in package foo type Config ast parsing error, ambiguous name x for multiple fields A, B string `cmdfactory:\"name=x\"`"),
		},
		"malformed tag key should produce expected error message": {
			ctx: context.TODO(),
			dir: fstest.MapFS{
				"config.go": {Data: escape("package foo\n\n//cmdfactory:args\ntype Config struct {\n\tOut string #cmdfactory:\"na me=x\"#\n}\n")},
			},
			pckg: "foo",
			err:  errors.New("ast file config.go in package foo type Config ast parsing error, field Out string `cmdfactory:\"na me=x\"` tag can't be parsed, can't parse attribute na me=x key na me is not alphanumeric"),
		},
		"unsupported constant directive should produce expected error message": {
			ctx: context.TODO(),
			dir: fstest.MapFS{
				"action.go": {Data: []byte("package foo\n\ntype Action int\n\nconst (\n\t//cmdfactory:args\n\tStart Action = iota\n)\n")},
			},
			pckg: "foo",
			err:  errors.New("ast file action.go in package foo constant Start Action = iota ast parsing error, unsupported cmdfactory:args directive on constant"),
		},
	}
	for tname, tcase := range table {
		t.Run(tname, func(t *testing.T) {
			decls, err := Parse(tcase.ctx, tcase.dir, tcase.pckg, tcase.types...)
			require.Equal(t, fmt.Sprintf("%v", tcase.err), fmt.Sprintf("%v", err))
			require.Equal(t, tcase.decls, offsets(decls))
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	dir := fstest.MapFS{
		"config.go": {Data: []byte("package foo\n\ntype Config struct {\n")},
	}
	_, err := Parse(context.TODO(), dir, "foo")
	require.ErrorContains(t, err, "ast file config.go in package foo can't be parsed")
}

func TestAttributes(t *testing.T) {
	table := map[string]struct {
		raw   string
		attrs []string
		err   error
	}{
		"empty attributes should produce nothing": {},
		"bare and valued keys should be split by commas": {
			raw:   "name=tool, required ,rename-all=kebab",
			attrs: []string{"name=tool", "required", "rename-all=kebab"},
		},
		"quoted values should keep commas": {
			raw:   `name="a,b", env='X,Y'`,
			attrs: []string{"name=a,b", "env=X,Y"},
		},
		"missing key should produce expected error message": {
			raw: "=tool",
			err: errors.New("can't parse attribute =tool missing key in =tool"),
		},
		"malformed quoted value should produce expected error message": {
			raw: `name="\q"`,
			err: errors.New(`can't parse attribute name="\q" quoted value "\q", invalid syntax`),
		},
	}
	for tname, tcase := range table {
		t.Run(tname, func(t *testing.T) {
			attrs, err := attributes(tcase.raw, token.Position{})
			require.Equal(t, fmt.Sprintf("%v", tcase.err), fmt.Sprintf("%v", err))
			var strs []string
			for _, a := range attrs {
				strs = append(strs, a.String())
			}
			require.Equal(t, tcase.attrs, strs)
		})
	}
}

func TestDirective(t *testing.T) {
	kind, raw, ok := directive("//cmdfactory:args name=tool")
	require.True(t, ok)
	require.Equal(t, "args", kind)
	require.Equal(t, "name=tool", raw)
	kind, raw, ok = directive("//cmdfactory:subcommand")
	require.True(t, ok)
	require.Equal(t, "subcommand", kind)
	require.Empty(t, raw)
	_, _, ok = directive("// cmdfactory:args")
	require.False(t, ok)
}
