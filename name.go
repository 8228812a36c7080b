package cmdfactory

// Name holds either author assigned or derived identifier.
// Assigned names are used verbatim, derived names are always cased.
type Name struct {
	value    string
	assigned bool
}

func Assigned(value string) Name {
	return Name{value: value, assigned: true}
}

func Derived(value string) Name {
	return Name{value: value}
}

func (n Name) Raw() string {
	return n.value
}

func (n Name) IsAssigned() bool {
	return n.assigned
}

// Translate renders the name with provided casing rule unless the name was assigned.
func (n Name) Translate(c Casing) string {
	if n.assigned {
		return n.value
	}
	return c.Apply(n.value)
}

// ResolveName picks the explicit override if it is present,
// otherwise falls back to the derived fallback value.
// Empty fallback is tolerated and resolves into an empty name.
func ResolveName(override *string, fallback string) Name {
	if override != nil {
		return Assigned(*override)
	}
	return Derived(fallback)
}
