package generators

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/1pkg/cmdfactory"
)

// Import is the runtime package import path referenced by generated code.
const Import = "github.com/1pkg/cmdfactory"

var strip = regexp.MustCompile(`\n(\s)*\n(\s)*\n`)

// Options configures derivation shared by all declarations of a package.
type Options struct {
	// Package is the generated file package name.
	Package string
	// Fallback provides the name for declarations without explicit name.
	Fallback string
	// Casing and EnvCasing are defaults, declarations can still override them.
	Casing    cmdfactory.Casing
	EnvCasing cmdfactory.Casing
	// Args lists package args declarations that are not generated in this run,
	// variants of these types still delegate to their specifications.
	Args []string
}

// DefaultOptions returns options with default casing rules.
func DefaultOptions(pckg, fallback string) Options {
	return Options{
		Package:   pckg,
		Fallback:  fallback,
		Casing:    cmdfactory.DefaultCasing,
		EnvCasing: cmdfactory.DefaultEnvCasing,
	}
}

const file = `
// Code generated by cmdfactory. DO NOT EDIT.

package {{.Package}}

import (
	"{{.Import}}"
	{{range .Imports}}
	{{.}}
	{{- end}}
)

{{.Body}}
`

var tfile = template.Must(template.New("file").Parse(strings.TrimLeft(file, "\n")))

// Generate derives command factory contract for every provided declaration
// and writes formatted go source into provided writer.
// Either all declarations are derived or nothing is written.
func Generate(ctx context.Context, decls []cmdfactory.Declaration, opts Options, w io.Writer) error {
	b := builder{args: make(map[string]bool, len(decls)+len(opts.Args))}
	for _, a := range opts.Args {
		b.args[a] = true
	}
	for _, d := range decls {
		if d.Shape == cmdfactory.ShapeArgs {
			b.args[d.Name] = true
		}
	}
	for _, d := range decls {
		if err := ctx.Err(); err != nil {
			return err
		}
		item, err := cmdfactory.NewItem(d, cmdfactory.Derived(opts.Fallback), opts.Casing, opts.EnvCasing)
		if err != nil {
			return err
		}
		b.item = item
		if err := d.Accept(&b); err != nil {
			return err
		}
	}
	deps, err := b.imports(decls)
	if err != nil {
		return err
	}
	var raw bytes.Buffer
	if err := tfile.Execute(&raw, struct {
		Package string
		Import  string
		Imports []string
		Body    string
	}{
		Package: opts.Package,
		Import:  Import,
		Imports: deps,
		Body:    strings.Trim(strip.ReplaceAllString(b.out.String(), "\n\n"), "\n\t "),
	}); err != nil {
		return err
	}
	src, err := imports.Process("", raw.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return fmt.Errorf("generated source can't be formatted, %w", err)
	}
	if _, err := w.Write(src); err != nil {
		return err
	}
	return nil
}
