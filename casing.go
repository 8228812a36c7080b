package cmdfactory

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// Casing defines how multi word identifiers are rendered.
type Casing uint8

const (
	Verbatim Casing = iota
	Kebab
	Snake
	ScreamingSnake
	Camel
	Pascal
	Lower
	Upper
)

const (
	// DefaultCasing is applied to derived command, argument and subcommand names.
	DefaultCasing = Kebab
	// DefaultEnvCasing is applied to derived environment variable names.
	DefaultEnvCasing = ScreamingSnake
)

// ParseCasing resolves casing rule from its name, the lookup is case insensitive
// and ignores `-`, `_` and the trailing `case` suffix, so `kebab-case`, `Kebab`
// and `KEBAB_CASE` are all the same rule.
func ParseCasing(name string) (Casing, error) {
	n := strings.ToLower(name)
	n = strings.NewReplacer("-", "", "_", "", " ", "").Replace(n)
	switch strings.TrimSuffix(n, "case") {
	case "verbatim":
		return Verbatim, nil
	case "kebab":
		return Kebab, nil
	case "snake":
		return Snake, nil
	case "screamingsnake":
		return ScreamingSnake, nil
	case "camel":
		return Camel, nil
	case "pascal":
		return Pascal, nil
	case "lower":
		return Lower, nil
	case "upper":
		return Upper, nil
	default:
		return Verbatim, fmt.Errorf("unsupported casing rule %q", name)
	}
}

func (c Casing) String() string {
	switch c {
	case Verbatim:
		return "verbatim"
	case Kebab:
		return "kebab-case"
	case Snake:
		return "snake_case"
	case ScreamingSnake:
		return "SCREAMING_SNAKE_CASE"
	case Camel:
		return "camelCase"
	case Pascal:
		return "PascalCase"
	case Lower:
		return "lower"
	case Upper:
		return "UPPER"
	default:
		return "invalid"
	}
}

// Apply renders the provided identifier accordingly to the casing rule.
// Digits stay in the word they follow, so `S3Bucket` is `s3-bucket`.
func (c Casing) Apply(s string) string {
	m, digits := mask(s)
	var out string
	switch c {
	case Kebab:
		out = strcase.ToKebab(m)
	case Snake:
		out = strcase.ToSnake(m)
	case ScreamingSnake:
		out = strcase.ToScreamingSnake(m)
	case Camel:
		out = strcase.ToLowerCamel(strcase.ToSnake(m))
	case Pascal:
		out = strcase.ToCamel(strcase.ToSnake(m))
	case Lower:
		out = strings.ReplaceAll(strcase.ToSnake(m), "_", "")
	case Upper:
		out = strings.ReplaceAll(strcase.ToScreamingSnake(m), "_", "")
	default:
		return s
	}
	return unmask(out, digits)
}

func separator(c byte) bool {
	return c == ' ' || c == '_' || c == '-' || c == '.'
}

// mask hides digit runs behind placeholder letters of the preceding letter case,
// strcase would otherwise split every digit run into a word of its own.
// It returns the masked identifier and the original digits,
// one entry per non separator byte, zero for bytes that aren't digits.
func mask(s string) (string, []byte) {
	b := []byte(s)
	digits := make([]byte, 0, len(b))
	var upper bool
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c >= '0' && c <= '9':
			j := i
			for j < len(b) && b[j] >= '0' && b[j] <= '9' {
				j++
			}
			ph := byte('x')
			if upper && (j == len(b) || b[j] < 'a' || b[j] > 'z') {
				ph = 'X'
			}
			for ; i < j; i++ {
				digits = append(digits, b[i])
				b[i] = ph
			}
			continue
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			upper = false
		case separator(c):
			upper = false
			i++
			continue
		}
		digits = append(digits, 0)
		i++
	}
	return string(b), digits
}

// unmask puts digits back, strcase keeps every non separator byte in order.
func unmask(s string, digits []byte) string {
	b := []byte(s)
	var k int
	for i, c := range b {
		if separator(c) {
			continue
		}
		if k < len(digits) && digits[k] != 0 {
			b[i] = digits[k]
		}
		k++
	}
	return string(b)
}
