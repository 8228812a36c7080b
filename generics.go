package cmdfactory

import (
	"strconv"
	"strings"
)

// TypeParam is a single group of type parameters sharing the same constraint,
// e.g. `K, V comparable`. Constraint holds the source text verbatim.
type TypeParam struct {
	Names      []string
	Constraint string
}

// Generics carries declaration type parameters unchanged into every generated method.
type Generics struct {
	Params []TypeParam
}

func (g Generics) Empty() bool {
	return len(g.Params) == 0
}

// Split returns parameter introduction form `[K comparable, V any]`,
// parameter usage form `[K, V]` and the ordered per parameter constraints.
// Go keeps constraints inside of the introduction form, there is no separate where clause.
// Blank parameters can't be referenced, so they are named `_<index>` in both forms.
// For non generic declarations all forms are empty.
func (g Generics) Split() (intro string, usage string, constraints []string) {
	if g.Empty() {
		return "", "", nil
	}
	taken := make(map[string]bool)
	for _, p := range g.Params {
		for _, n := range p.Names {
			taken[n] = true
		}
	}
	groups := make([]string, 0, len(g.Params))
	var names []string
	for _, p := range g.Params {
		group := make([]string, 0, len(p.Names))
		for _, n := range p.Names {
			if n == "_" {
				n = blank(len(names), taken)
			}
			group = append(group, n)
			names = append(names, n)
			constraints = append(constraints, p.Constraint)
		}
		groups = append(groups, strings.Join(group, ", ")+" "+p.Constraint)
	}
	intro = "[" + strings.Join(groups, ", ") + "]"
	usage = "[" + strings.Join(names, ", ") + "]"
	return
}

func blank(i int, taken map[string]bool) string {
	n := "_" + strconv.Itoa(i)
	for taken[n] {
		n = "_" + n
	}
	taken[n] = true
	return n
}

func (g Generics) Intro() string {
	intro, _, _ := g.Split()
	return intro
}

func (g Generics) Usage() string {
	_, usage, _ := g.Split()
	return usage
}
