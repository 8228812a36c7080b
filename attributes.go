package cmdfactory

import (
	"go/token"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Attributes enumerates all recognized declaration level options.
type Attributes struct {
	Name         *string `mapstructure:"name"`
	RenameAll    string  `mapstructure:"rename_all"`
	RenameAllEnv string  `mapstructure:"rename_all_env"`
	Augment      *bool   `mapstructure:"augment"`
}

// MemberAttributes enumerates all recognized field and variant level options.
type MemberAttributes struct {
	Name     *string `mapstructure:"name"`
	Env      *string `mapstructure:"env"`
	Required bool    `mapstructure:"required"`
	Skip     bool    `mapstructure:"skip"`
}

// Set reports whether any option other than skip was provided.
func (m MemberAttributes) Set() bool {
	return m.Name != nil || m.Env != nil || m.Required
}

// bare holds values substituted for attributes provided without value,
// keys missing here require an explicit value.
var bare = map[string]string{
	"augment":  "true",
	"env":      "",
	"required": "true",
	"skip":     "true",
}

// decode validates raw attribute list and decodes it into provided options structure.
func decode(pos token.Position, decl string, attrs []Attribute, out interface{}) error {
	raw := make(map[string]interface{}, len(attrs))
	seen := make(map[string]Attribute, len(attrs))
	for _, a := range attrs {
		key := strings.ReplaceAll(strings.TrimSpace(a.Key), "-", "_")
		if prev, ok := seen[key]; ok {
			return Errorf(apos(a, pos), decl, "conflicting %q directives %q and %q", key, prev, a)
		}
		seen[key] = a
		if !a.Bare {
			raw[key] = a.Value
			continue
		}
		v, ok := bare[key]
		if !ok {
			return Errorf(apos(a, pos), decl, "missing %q key value", key)
		}
		raw[key] = v
	}
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &md,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return Errorf(pos, decl, "attributes can't be decoded, %v", err)
	}
	if len(md.Unused) > 0 {
		// Report the first unknown key in declaration order to keep diagnostics stable.
		for _, a := range attrs {
			key := strings.ReplaceAll(strings.TrimSpace(a.Key), "-", "_")
			for _, u := range md.Unused {
				if u == key {
					return Errorf(apos(a, pos), decl, "unsupported %q key in %q", a.Key, a)
				}
			}
		}
	}
	return nil
}

func apos(a Attribute, fallback token.Position) token.Position {
	if a.Pos.IsValid() {
		return a.Pos
	}
	return fallback
}
