package engine

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/1pkg/cmdfactory"
)

// Describe writes the provided specification tree as yaml document.
func Describe(w io.Writer, spec *cmdfactory.Command) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(spec); err != nil {
		return fmt.Errorf("command %s specification can't be described, %w", spec.Name, err)
	}
	return enc.Close()
}
