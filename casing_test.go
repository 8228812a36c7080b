package cmdfactory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCasingApply(t *testing.T) {
	table := map[string]struct {
		casing Casing
		in     string
		out    string
	}{
		"kebab casing should hyphenate pascal identifiers": {
			casing: Kebab,
			in:     "MyCommand",
			out:    "my-command",
		},
		"kebab casing should hyphenate snake identifiers": {
			casing: Kebab,
			in:     "my_tool",
			out:    "my-tool",
		},
		"kebab casing should keep single lowercase word": {
			casing: Kebab,
			in:     "tool",
			out:    "tool",
		},
		"screaming snake casing should produce env style identifiers": {
			casing: ScreamingSnake,
			in:     "MyCommand",
			out:    "MY_COMMAND",
		},
		"snake casing should underscore pascal identifiers": {
			casing: Snake,
			in:     "OutputDir",
			out:    "output_dir",
		},
		"camel casing should lower the first word": {
			casing: Camel,
			in:     "my_command",
			out:    "myCommand",
		},
		"pascal casing should upper the first word": {
			casing: Pascal,
			in:     "my-command",
			out:    "MyCommand",
		},
		"lower casing should drop separators": {
			casing: Lower,
			in:     "MyCommand",
			out:    "mycommand",
		},
		"upper casing should drop separators": {
			casing: Upper,
			in:     "MyCommand",
			out:    "MYCOMMAND",
		},
		"verbatim casing should keep identifier as is": {
			casing: Verbatim,
			in:     "My_Command",
			out:    "My_Command",
		},
		"kebab casing should keep digits in their preceding word": {
			casing: Kebab,
			in:     "S3Bucket",
			out:    "s3-bucket",
		},
		"screaming snake casing should keep digits in their preceding word": {
			casing: ScreamingSnake,
			in:     "S3Bucket",
			out:    "S3_BUCKET",
		},
		"kebab casing should not split trailing digits": {
			casing: Kebab,
			in:     "Ipv4",
			out:    "ipv4",
		},
		"screaming snake casing should not split trailing digits": {
			casing: ScreamingSnake,
			in:     "oauth2",
			out:    "OAUTH2",
		},
		"kebab casing should not split inner digits": {
			casing: Kebab,
			in:     "e2e",
			out:    "e2e",
		},
		"kebab casing should split words after digits of acronyms": {
			casing: Kebab,
			in:     "HTTP2Server",
			out:    "http2-server",
		},
		"snake casing should split words after digits of lowercase words": {
			casing: Snake,
			in:     "api2Server",
			out:    "api2_server",
		},
		"camel casing should keep digits in their preceding word": {
			casing: Camel,
			in:     "V2Api",
			out:    "v2Api",
		},
		"pascal casing should keep acronyms as single words": {
			casing: Pascal,
			in:     "S3Bucket",
			out:    "S3Bucket",
		},
		"upper casing should keep digits": {
			casing: Upper,
			in:     "Level2",
			out:    "LEVEL2",
		},
		"any casing should keep empty identifier empty": {
			casing: Kebab,
		},
	}
	for tname, tcase := range table {
		t.Run(tname, func(t *testing.T) {
			require.Equal(t, tcase.out, tcase.casing.Apply(tcase.in))
		})
	}
}

func TestParseCasing(t *testing.T) {
	table := map[string]struct {
		name   string
		casing Casing
		err    string
	}{
		"kebab case spelling should be parsed": {
			name:   "kebab-case",
			casing: Kebab,
		},
		"short kebab spelling should be parsed": {
			name:   "kebab",
			casing: Kebab,
		},
		"screaming snake case spelling should be parsed": {
			name:   "SCREAMING_SNAKE_CASE",
			casing: ScreamingSnake,
		},
		"camel case spelling should be parsed": {
			name:   "camelCase",
			casing: Camel,
		},
		"pascal case spelling should be parsed": {
			name:   "PascalCase",
			casing: Pascal,
		},
		"snake case spelling should be parsed": {
			name:   "snake_case",
			casing: Snake,
		},
		"upper spelling should be parsed": {
			name:   "UPPER",
			casing: Upper,
		},
		"verbatim spelling should be parsed": {
			name:   "Verbatim",
			casing: Verbatim,
		},
		"unknown spelling should fail": {
			name: "title",
			err:  `unsupported casing rule "title"`,
		},
	}
	for tname, tcase := range table {
		t.Run(tname, func(t *testing.T) {
			c, err := ParseCasing(tcase.name)
			if tcase.err != "" {
				require.EqualError(t, err, tcase.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tcase.casing, c)
			// Canonical spelling should always parse back into the same rule.
			back, err := ParseCasing(c.String())
			require.NoError(t, err)
			require.Equal(t, c, back)
		})
	}
}
