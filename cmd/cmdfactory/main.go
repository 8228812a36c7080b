package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/1pkg/cmdfactory/cmd"
	"github.com/1pkg/cmdfactory/internal/config"
)

var (
	flagDir    string
	flagPckg   string
	flagOutput string
)

var rootCmd = &cobra.Command{
	Use:   "cmdfactory [types...]",
	Short: "Derive command line specifications from annotated Go types",
	Long: `cmdfactory derives Command and CommandForUpdate methods for Go types
annotated with //cmdfactory:args or //cmdfactory:subcommand directives.

It is meant to be used from go generate, for example:
  //go:generate cmdfactory
  //go:generate cmdfactory Config Action

Types without explicit name directive are named after $GOPACKAGE.`,
	RunE:          run,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.Flags().StringVar(&flagDir, "dir", ".", "Source package directory")
	rootCmd.Flags().StringVar(&flagPckg, "pckg", "", "Source package name ($GOPACKAGE or last element of dir by default)")
	rootCmd.Flags().StringVar(&flagOutput, "output", "", "Generated file name ($GOFILE based by default)")
}

func run(c *cobra.Command, types []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	pckg := flagPckg
	if pckg == "" {
		pckg = cfg.Package
	}
	if pckg == "" {
		dir, err := filepath.Abs(flagDir)
		if err != nil {
			return err
		}
		pckg = filepath.Base(dir)
	}
	p, err := cmd.Run(c.Context(), cmd.Options{
		Dir:     flagDir,
		Package: pckg,
		Output:  flagOutput,
		Types:   types,
		Config:  cfg,
	})
	if err != nil {
		return err
	}
	log.Println(p, "successfully generated")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}
