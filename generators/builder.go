package generators

import (
	"bytes"
	"fmt"
	"go/ast"
	goparser "go/parser"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/1pkg/cmdfactory"
)

// reserved method names can't be used by members as they clash with derived methods.
var reserved = map[string]bool{
	"Command":                     true,
	"CommandForUpdate":            true,
	"AugmentArgs":                 true,
	"AugmentArgsForUpdate":        true,
	"AugmentSubcommands":          true,
	"AugmentSubcommandsForUpdate": true,
}

var major = regexp.MustCompile(`^v[0-9]+$`)

// builder visits declarations and accumulates generated methods for them.
type builder struct {
	item *cmdfactory.Item
	args map[string]bool
	out  bytes.Buffer
}

// imports collects source imports referenced by generated code,
// i.e. by type parameters constraints and by delegated variant types.
// Unused ones are pruned later on formatting.
func (b *builder) imports(decls []cmdfactory.Declaration) ([]string, error) {
	set := make(map[string]cmdfactory.Import)
	for _, d := range decls {
		_, _, exprs := d.Generics.Split()
		if d.Shape == cmdfactory.ShapeSubcommand {
			for _, m := range d.Members {
				if typ, ok := delegate(b.args, m.Type); ok {
					exprs = append(exprs, typ)
				}
			}
		}
		refs := qualifiers(exprs...)
		for _, i := range d.Imports {
			name := pckgname(i)
			if i.Path == Import || !refs[name] {
				continue
			}
			if prev, ok := set[name]; ok && prev.Path != i.Path {
				return nil, cmdfactory.Errorf(
					d.Pos,
					d.Name,
					"import %s conflicts with import %s of another declaration",
					i,
					prev,
				)
			}
			set[name] = i
		}
	}
	imports := make([]string, 0, len(set))
	for _, i := range set {
		imports = append(imports, i.String())
	}
	sort.Strings(imports)
	return imports, nil
}

// qualifiers returns package names referenced by the provided type expressions.
func qualifiers(exprs ...string) map[string]bool {
	refs := make(map[string]bool)
	for _, e := range exprs {
		x, err := goparser.ParseExpr(e)
		if err != nil {
			continue
		}
		ast.Inspect(x, func(n ast.Node) bool {
			if sel, ok := n.(*ast.SelectorExpr); ok {
				if id, ok := sel.X.(*ast.Ident); ok {
					refs[id.Name] = true
				}
			}
			return true
		})
	}
	return refs
}

// pckgname returns the name an import is referenced by,
// unnamed imports are guessed from their path as goimports does.
func pckgname(i cmdfactory.Import) string {
	if i.Name != "" {
		return i.Name
	}
	base := path.Base(i.Path)
	if dir := path.Dir(i.Path); dir != "." && major.MatchString(base) {
		base = path.Base(dir)
	}
	base = strings.TrimPrefix(base, "go-")
	if j := strings.IndexAny(base, ".-"); j > 0 {
		base = base[:j]
	}
	return base
}

func (b *builder) check() error {
	d := b.item.Declaration()
	for _, m := range d.Members {
		// Typed constants variants live outside of the declaration method set.
		if m.Type != d.Name && reserved[m.Name] {
			return cmdfactory.Errorf(
				m.Pos,
				d.Name,
				"field %s clashes with derived method %s, fields and methods share the type namespace even for skipped fields",
				m.Name,
				m.Name,
			)
		}
	}
	return nil
}

// view exposes an item to generation templates.
type view struct {
	*cmdfactory.Item
	args map[string]bool
}

func (v view) Type() string {
	return v.Declaration().Name
}

func (v view) Receiver() string {
	return v.Type() + v.Declaration().Generics.Usage()
}

func (v view) Quoted() string {
	return strconv.Quote(v.CasedName())
}

// Args renders field arguments registration, update mode never marks arguments as required.
func (v view) Args(update bool) string {
	var buf bytes.Buffer
	for _, m := range v.Members() {
		fmt.Fprintf(&buf, "cmd.AddArg(cmdfactory.Arg{\nID: %q,\nLong: %q,\n", m.Name, m.Resolved)
		if m.Env != "" {
			fmt.Fprintf(&buf, "Env: %q,\n", m.Env)
		}
		if m.Doc != "" {
			fmt.Fprintf(&buf, "Help: %q,\n", m.Doc)
		}
		if m.Options.Required && !update {
			buf.WriteString("Required: true,\n")
		}
		buf.WriteString("})\n")
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Subcommands renders one branch per variant, variants holding derived
// argument records delegate to their own specifications.
func (v view) Subcommands(update bool) string {
	var buf bytes.Buffer
	for _, m := range v.Members() {
		if typ, ok := delegate(v.args, m.Type); ok {
			builder := "ArgsCommand"
			if update {
				builder = "ArgsCommandForUpdate"
			}
			fmt.Fprintf(&buf, "cmd.AddSubcommand(cmdfactory.%s(%q, new(%s)))\n", builder, m.Resolved, typ)
			continue
		}
		fmt.Fprintf(&buf, "cmd.AddSubcommand(cmdfactory.NewCommand(%q))\n", m.Resolved)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// delegate reports whether the variant type is an args declaration of the package,
// pointers and generic instantiations included.
func delegate(args map[string]bool, typ string) (string, bool) {
	typ = strings.TrimPrefix(strings.TrimSpace(typ), "*")
	name := typ
	if i := strings.Index(name, "["); i > 0 {
		name = name[:i]
	}
	return typ, args[name]
}

// Assertion renders compile time checks of derived contract,
// generic declarations get a generic function reusing type parameters verbatim.
func (v view) Assertion(capability string) string {
	ptr := fmt.Sprintf("(*%s)(nil)", v.Receiver())
	if intro := v.Declaration().Generics.Intro(); intro != "" {
		return fmt.Sprintf(
			"func _%s() {\nvar _ cmdfactory.CommandFactory = %s\nvar _ cmdfactory.%s = %s\n}",
			intro,
			ptr,
			capability,
			ptr,
		)
	}
	return fmt.Sprintf(
		"var (\n_ cmdfactory.CommandFactory = %s\n_ cmdfactory.%s = %s\n)",
		ptr,
		capability,
		ptr,
	)
}
