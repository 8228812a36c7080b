package parsers

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"io/fs"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/1pkg/cmdfactory"
)

const (
	// Directive prefix marks type declarations and variants that need to be derived.
	Directive = "cmdfactory:"
	// Tag is the struct field tag key holding member attributes.
	Tag = "cmdfactory"
)

const (
	directiveArgs       = "args"
	directiveSubcommand = "subcommand"
	directiveVariant    = "variant"
)

// Parse tries to parse all annotated type declarations from provided package.
// If types are provided, only the listed declarations are returned and all of them have to be found.
func Parse(ctx context.Context, dir fs.FS, pckg string, types ...string) ([]cmdfactory.Declaration, error) {
	// Start with parsing actual ast from fs driver.
	fentries, err := fs.ReadDir(dir, ".")
	if err != nil {
		return nil, fmt.Errorf("ast package %s fs dir can't be read, %w", pckg, err)
	}
	var files []file
	fset := token.NewFileSet()
	for _, fentry := range fentries {
		fname := fentry.Name()
		if fentry.IsDir() || !strings.HasSuffix(fname, ".go") || strings.HasSuffix(fname, "_test.go") {
			continue
		}
		b, err := fs.ReadFile(dir, fname)
		if err != nil {
			return nil, fmt.Errorf("ast file %s in package %s fs file can't be read, %w", fname, pckg, err)
		}
		buf := bytes.NewBuffer(b)
		f, err := goparser.ParseFile(fset, fname, b, goparser.AllErrors|goparser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("ast file %s in package %s can't be parsed, %w", fname, pckg, err)
		}
		// Previously generated files never carry declarations.
		if f.Name.Name != pckg || ast.IsGenerated(f) {
			continue
		}
		files = append(files, file{fset: fset, fname: fname, ast: f, buf: buf})
	}
	// Collect all typed constants first as they might be declared after their type.
	p := parser{pckg: pckg, variants: make(map[string][]cmdfactory.Member)}
	for _, file := range files {
		if err := p.constants(file); err != nil {
			return nil, err
		}
	}
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	var decls []cmdfactory.Declaration
	found := make(map[string]bool, len(types))
	for _, file := range files {
		for _, decl := range file.ast.Decls {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			gdecl, ok := decl.(*ast.GenDecl)
			if !ok || gdecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range gdecl.Specs {
				tspec := spec.(*ast.TypeSpec)
				if len(want) > 0 && !want[tspec.Name.Name] {
					continue
				}
				d, ok, err := p.declaration(file, gdecl, tspec)
				if err != nil {
					return nil, fmt.Errorf(
						"ast file %s in package %s type %s ast parsing error, %w",
						file.fname,
						pckg,
						tspec.Name.Name,
						err,
					)
				}
				if !ok {
					if want[tspec.Name.Name] {
						return nil, fmt.Errorf(
							"type %s in ast package %s has no %s directive",
							tspec.Name.Name,
							pckg,
							Directive,
						)
					}
					continue
				}
				found[d.Name] = true
				decls = append(decls, *d)
			}
		}
	}
	for _, t := range types {
		if !found[t] {
			return nil, fmt.Errorf("type %s can't be found in ast package %s", t, pckg)
		}
	}
	return decls, nil
}

type file struct {
	fset  *token.FileSet
	fname string
	ast   *ast.File
	buf   *bytes.Buffer
}

func (f file) definition(pos, end token.Pos) string {
	fpos, fend := f.fset.Position(pos), f.fset.Position(end)
	return f.buf.String()[fpos.Offset:fend.Offset]
}

func (f file) position(pos token.Pos) token.Position {
	return f.fset.Position(pos)
}

type parser struct {
	pckg     string
	variants map[string][]cmdfactory.Member
}

func (p *parser) constants(f file) error {
	for _, decl := range f.ast.Decls {
		gdecl, ok := decl.(*ast.GenDecl)
		if !ok || gdecl.Tok != token.CONST {
			continue
		}
		// Constants without type and value repeat the previous spec, e.g. iota sequences.
		var last string
		for _, spec := range gdecl.Specs {
			vspec := spec.(*ast.ValueSpec)
			switch {
			case vspec.Type != nil:
				last = ""
				if id, ok := vspec.Type.(*ast.Ident); ok {
					last = id.Name
				}
			case len(vspec.Values) > 0:
				last = ""
			}
			if last == "" {
				continue
			}
			attrs, err := p.variant(f, vspec)
			if err != nil {
				return fmt.Errorf(
					"ast file %s in package %s constant %s ast parsing error, %w",
					f.fname,
					p.pckg,
					f.definition(vspec.Pos(), vspec.End()),
					err,
				)
			}
			for _, name := range vspec.Names {
				if name.Name == "_" {
					continue
				}
				p.variants[last] = append(p.variants[last], cmdfactory.Member{
					Name:       name.Name,
					Type:       last,
					Doc:        strings.TrimSpace(vspec.Doc.Text()),
					Attributes: attrs,
					Pos:        f.position(name.Pos()),
				})
			}
		}
	}
	return nil
}

func (p *parser) variant(f file, vspec *ast.ValueSpec) ([]cmdfactory.Attribute, error) {
	var attrs []cmdfactory.Attribute
	var set bool
	for _, cg := range []*ast.CommentGroup{vspec.Doc, vspec.Comment} {
		if cg == nil {
			continue
		}
		for _, c := range cg.List {
			kind, raw, ok := directive(c.Text)
			if !ok {
				continue
			}
			if kind != directiveVariant {
				return nil, fmt.Errorf("unsupported %s%s directive on constant", Directive, kind)
			}
			if set {
				return nil, fmt.Errorf("conflicting %s%s directives", Directive, kind)
			}
			set = true
			a, err := attributes(raw, f.position(c.Slash))
			if err != nil {
				return nil, err
			}
			attrs = a
		}
	}
	return attrs, nil
}

func (p *parser) declaration(f file, gdecl *ast.GenDecl, tspec *ast.TypeSpec) (*cmdfactory.Declaration, bool, error) {
	doc := tspec.Doc
	// Single type declarations keep their doc on the gen decl itself.
	if doc == nil && len(gdecl.Specs) == 1 {
		doc = gdecl.Doc
	}
	if doc == nil {
		return nil, false, nil
	}
	var kind string
	var attrs []cmdfactory.Attribute
	for _, c := range doc.List {
		k, raw, ok := directive(c.Text)
		if !ok {
			continue
		}
		if k != directiveArgs && k != directiveSubcommand {
			return nil, false, fmt.Errorf("unsupported %s%s directive on type", Directive, k)
		}
		if kind != "" {
			return nil, false, fmt.Errorf(
				"conflicting %s%s and %s%s directives",
				Directive,
				kind,
				Directive,
				k,
			)
		}
		kind = k
		a, err := attributes(raw, f.position(c.Slash))
		if err != nil {
			return nil, false, err
		}
		attrs = a
	}
	if kind == "" {
		return nil, false, nil
	}
	if tspec.Assign.IsValid() {
		return nil, false, fmt.Errorf("type alias %s can't be derived", tspec.Name.Name)
	}
	d := cmdfactory.Declaration{
		Package:    p.pckg,
		Imports:    p.imports(f),
		Name:       tspec.Name.Name,
		Doc:        strings.TrimSpace(doc.Text()),
		Attributes: attrs,
		Pos:        f.position(tspec.Name.Pos()),
	}
	generics, err := p.generics(f, tspec)
	if err != nil {
		return nil, false, err
	}
	d.Generics = generics
	switch tt := tspec.Type.(type) {
	case *ast.StructType:
		members, err := p.fields(f, tt)
		if err != nil {
			return nil, false, err
		}
		d.Members = members
		d.Shape = cmdfactory.ShapeArgs
		if kind == directiveSubcommand {
			d.Shape = cmdfactory.ShapeSubcommand
		}
	case *ast.InterfaceType:
		return nil, false, fmt.Errorf("interface type %s can't hold derived methods", d.Name)
	default:
		if kind != directiveSubcommand {
			return nil, false, fmt.Errorf(
				"%s%s directive requires struct type, got %s",
				Directive,
				kind,
				f.definition(tspec.Type.Pos(), tspec.Type.End()),
			)
		}
		d.Shape = cmdfactory.ShapeSubcommand
		d.Members = p.variants[d.Name]
	}
	return &d, true, nil
}

func (p *parser) imports(f file) []cmdfactory.Import {
	var imports []cmdfactory.Import
	for _, spec := range f.ast.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		var name string
		if spec.Name != nil {
			name = spec.Name.Name
		}
		// Side effect and dot imports are never referenced by generated code.
		if name == "_" || name == "." {
			continue
		}
		imports = append(imports, cmdfactory.Import{Name: name, Path: path})
	}
	return imports
}

func (p *parser) generics(f file, tspec *ast.TypeSpec) (cmdfactory.Generics, error) {
	var g cmdfactory.Generics
	if tspec.TypeParams == nil {
		return g, nil
	}
	for _, field := range tspec.TypeParams.List {
		tp := cmdfactory.TypeParam{Constraint: f.definition(field.Type.Pos(), field.Type.End())}
		for _, name := range field.Names {
			tp.Names = append(tp.Names, name.Name)
		}
		g.Params = append(g.Params, tp)
	}
	return g, nil
}

func (p *parser) fields(f file, stype *ast.StructType) ([]cmdfactory.Member, error) {
	var members []cmdfactory.Member
	for _, field := range stype.Fields.List {
		// In case no names provided we can skip the embedded field.
		if len(field.Names) == 0 {
			continue
		}
		var attrs []cmdfactory.Attribute
		if field.Tag != nil {
			a, err := p.tag(f, field.Tag)
			if err != nil {
				return nil, fmt.Errorf(
					"field %s tag can't be parsed, %w",
					f.definition(field.Pos(), field.End()),
					err,
				)
			}
			attrs = a
		}
		// Explicit names are supported only for single name structure fields.
		if len(field.Names) > 1 {
			for _, a := range attrs {
				if a.Key == "name" {
					return nil, fmt.Errorf(
						"ambiguous name %s for multiple fields %s",
						a.Value,
						f.definition(field.Pos(), field.End()),
					)
				}
			}
		}
		typ := f.definition(field.Type.Pos(), field.Type.End())
		for _, name := range field.Names {
			if name.Name == "_" || !name.IsExported() {
				continue
			}
			members = append(members, cmdfactory.Member{
				Name:       name.Name,
				Type:       typ,
				Doc:        strings.TrimSpace(field.Doc.Text()),
				Attributes: attrs,
				Pos:        f.position(name.Pos()),
			})
		}
	}
	return members, nil
}

func (p *parser) tag(f file, lit *ast.BasicLit) ([]cmdfactory.Attribute, error) {
	raw, err := strconv.Unquote(lit.Value)
	if err != nil {
		return nil, err
	}
	val, ok := reflect.StructTag(raw).Lookup(Tag)
	if !ok {
		return nil, nil
	}
	// Skip omitted tags in the same way as encoding packages do.
	if strings.TrimSpace(val) == "-" {
		return []cmdfactory.Attribute{{Key: "skip", Bare: true, Pos: f.position(lit.Pos())}}, nil
	}
	return attributes(val, f.position(lit.Pos()))
}

// directive splits `//cmdfactory:kind attrs` comment into its kind and raw attributes.
func directive(comment string) (kind string, raw string, ok bool) {
	if !strings.HasPrefix(comment, "//"+Directive) {
		return "", "", false
	}
	body := strings.TrimPrefix(comment, "//"+Directive)
	kind, raw, _ = strings.Cut(body, " ")
	return strings.TrimSpace(kind), strings.TrimSpace(raw), true
}

// attributes parses comma separated `key=value` or bare `key` list,
// values might be quoted with double or single quotes to hold commas.
func attributes(raw string, pos token.Position) ([]cmdfactory.Attribute, error) {
	var attrs []cmdfactory.Attribute
	for _, tok := range cmdfactory.Splitb(raw, ",", `"`, `'`) {
		if tok == "" {
			continue
		}
		kv := strings.SplitN(tok, "=", 2)
		key := strings.TrimSpace(kv[0])
		if key == "" {
			return nil, fmt.Errorf("can't parse attribute %s missing key in %s", tok, raw)
		}
		for _, r := range key {
			if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-') {
				return nil, fmt.Errorf("can't parse attribute %s key %s is not alphanumeric", tok, key)
			}
		}
		a := cmdfactory.Attribute{Key: key, Pos: pos}
		if len(kv) == 1 {
			a.Bare = true
			attrs = append(attrs, a)
			continue
		}
		v := strings.TrimSpace(kv[1])
		switch {
		case len(v) > 1 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`):
			uv, err := strconv.Unquote(v)
			if err != nil {
				return nil, fmt.Errorf("can't parse attribute %s quoted value %s, %w", tok, v, err)
			}
			v = uv
		case len(v) > 1 && strings.HasPrefix(v, `'`) && strings.HasSuffix(v, `'`):
			v = v[1 : len(v)-1]
		}
		a.Value = v
		attrs = append(attrs, a)
	}
	return attrs, nil
}
