package cmdfactory

// ItemMember is a validated member with its resolved names.
type ItemMember struct {
	Member
	Options MemberAttributes
	// Resolved is the cased argument or subcommand name.
	Resolved string
	// Env is the environment variable name, empty if the member isn't bound to one.
	Env string
}

// Item is the resolved identity of a declaration.
// It is built once per derivation and never changes afterwards.
type Item struct {
	decl      Declaration
	options   Attributes
	name      Name
	casing    Casing
	envCasing Casing
	cased     string
	members   []ItemMember
}

// NewItem decodes declaration attributes and resolves item names.
// Fallback name is used only when declaration has no explicit name.
func NewItem(decl Declaration, fallback Name, casing, envCasing Casing) (*Item, error) {
	item := Item{decl: decl, name: fallback, casing: casing, envCasing: envCasing}
	if err := decode(decl.Pos, decl.Name, decl.Attributes, &item.options); err != nil {
		return nil, err
	}
	if item.options.Name != nil {
		item.name = Assigned(*item.options.Name)
	}
	if rule := item.options.RenameAll; rule != "" {
		c, err := ParseCasing(rule)
		if err != nil {
			return nil, Errorf(decl.Pos, decl.Name, "rename_all: %v", err)
		}
		item.casing = c
	}
	if rule := item.options.RenameAllEnv; rule != "" {
		c, err := ParseCasing(rule)
		if err != nil {
			return nil, Errorf(decl.Pos, decl.Name, "rename_all_env: %v", err)
		}
		item.envCasing = c
	}
	item.cased = item.name.Translate(item.casing)
	names := make(map[string]Member, len(decl.Members))
	envs := make(map[string]Member, len(decl.Members))
	for _, m := range decl.Members {
		im, err := item.member(m)
		if err != nil {
			return nil, err
		}
		if im.Options.Skip {
			continue
		}
		if prev, ok := names[im.Resolved]; ok {
			return nil, Errorf(
				m.Pos,
				decl.Name,
				"conflicting name %q for %s and %s (declared at %s)",
				im.Resolved,
				m.Name,
				prev.Name,
				prev.Pos,
			)
		}
		names[im.Resolved] = m
		if im.Env != "" {
			if prev, ok := envs[im.Env]; ok {
				return nil, Errorf(
					m.Pos,
					decl.Name,
					"conflicting env name %q for %s and %s (declared at %s)",
					im.Env,
					m.Name,
					prev.Name,
					prev.Pos,
				)
			}
			envs[im.Env] = m
		}
		item.members = append(item.members, im)
	}
	return &item, nil
}

func (i *Item) member(m Member) (ItemMember, error) {
	im := ItemMember{Member: m}
	if err := decode(m.Pos, i.decl.Name, m.Attributes, &im.Options); err != nil {
		return im, err
	}
	if im.Options.Skip {
		if im.Options.Set() {
			return im, Errorf(m.Pos, i.decl.Name, "member %s: skip conflicts with other directives", m.Name)
		}
		return im, nil
	}
	if i.decl.Shape == ShapeSubcommand && (im.Options.Env != nil || im.Options.Required) {
		return im, Errorf(m.Pos, i.decl.Name, "variant %s: env and required directives are supported only by args", m.Name)
	}
	n := Derived(m.Name)
	if im.Options.Name != nil {
		if *im.Options.Name == "" {
			return im, Errorf(m.Pos, i.decl.Name, "member %s: empty name directive", m.Name)
		}
		n = Assigned(*im.Options.Name)
	}
	im.Resolved = n.Translate(i.casing)
	if env := im.Options.Env; env != nil {
		if *env == "" {
			im.Env = i.envCasing.Apply(m.Name)
		} else {
			im.Env = *env
		}
	}
	return im, nil
}

func (i *Item) Declaration() Declaration {
	return i.decl
}

func (i *Item) Name() Name {
	return i.name
}

// CasedName returns item name rendered with item casing, assigned names are kept verbatim.
func (i *Item) CasedName() string {
	return i.cased
}

// EnvName returns item name rendered with item env casing.
func (i *Item) EnvName() string {
	return i.envCasing.Apply(i.name.Raw())
}

func (i *Item) Casing() Casing {
	return i.casing
}

func (i *Item) EnvCasing() Casing {
	return i.envCasing
}

// Attributes returns raw declaration attributes.
func (i *Item) Attributes() []Attribute {
	return i.decl.Attributes
}

// Augment reports whether augmentation capabilities should be derived too.
func (i *Item) Augment() bool {
	return i.options.Augment == nil || *i.options.Augment
}

func (i *Item) Members() []ItemMember {
	return append([]ItemMember(nil), i.members...)
}
