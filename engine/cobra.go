// Package engine binds command specifications to parser engines.
// It only shapes the engine command tree, values are kept as raw strings.
package engine

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1pkg/cmdfactory"
)

// Cobra converts the provided specification tree into a cobra command tree.
// Arguments are registered as string flags and bound to their env variables,
// subcommand and help requirements are enforced on run.
func Cobra(spec *cmdfactory.Command) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:           spec.Name,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	for _, a := range spec.Args {
		usage := a.Help
		if a.Env != "" {
			usage = strings.TrimSpace(fmt.Sprintf("%s [$%s]", usage, a.Env))
		}
		if cmd.Flags().Lookup(a.Long) != nil {
			return nil, fmt.Errorf("command %s argument %s flag %s is defined twice", spec.Name, a.ID, a.Long)
		}
		cmd.Flags().String(a.Long, "", usage)
		if a.Required {
			if err := cmd.MarkFlagRequired(a.Long); err != nil {
				return nil, fmt.Errorf("command %s argument %s can't be marked required, %w", spec.Name, a.ID, err)
			}
		}
	}
	for _, sub := range spec.Subcommands {
		c, err := Cobra(sub)
		if err != nil {
			return nil, err
		}
		cmd.AddCommand(c)
	}
	cmd.PreRunE = func(c *cobra.Command, _ []string) error {
		for _, a := range spec.Args {
			if a.Env == "" || c.Flags().Changed(a.Long) {
				continue
			}
			if v, ok := os.LookupEnv(a.Env); ok {
				if err := c.Flags().Set(a.Long, v); err != nil {
					return fmt.Errorf("env %s can't be applied to flag %s, %w", a.Env, a.Long, err)
				}
			}
		}
		return nil
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		if spec.ArgRequiredElseHelp && len(args) == 0 && c.Flags().NFlag() == 0 {
			return c.Help()
		}
		if spec.SubcommandRequired {
			names := make([]string, 0, len(spec.Subcommands))
			for _, sub := range spec.Subcommands {
				names = append(names, sub.Name)
			}
			return fmt.Errorf("%s requires a subcommand, one of [%s]", c.CommandPath(), strings.Join(names, ", "))
		}
		return nil
	}
	return cmd, nil
}
