package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/1pkg/cmdfactory"
	"github.com/1pkg/cmdfactory/generators"
	"github.com/1pkg/cmdfactory/internal/config"
	"github.com/1pkg/cmdfactory/parsers"
)

// Output is the generated file name used when no source file is known.
const Output = "cmdfactory.gen.go"

// Options configures a single generation run.
type Options struct {
	// Dir is the source package directory.
	Dir string
	// Package is the source package name.
	Package string
	// Output is the generated file path relative to Dir, derived from source file by default.
	Output string
	// Types limits generation to the listed declarations.
	Types []string
	// Config is the generate environment.
	Config config.Config
}

// Run first parses provided package declarations, then
// derives their command specifications and writes them to a file.
// Nothing is written if any declaration fails the derivation.
func Run(ctx context.Context, opts Options) (string, error) {
	dir := os.DirFS(opts.Dir)
	decls, err := parsers.Parse(ctx, dir, opts.Package, opts.Types...)
	if err != nil {
		return "", err
	}
	all := decls
	if len(opts.Types) > 0 {
		if all, err = parsers.Parse(ctx, dir, opts.Package); err != nil {
			return "", err
		}
	}
	// Without explicit types go generate runs derive only declarations of their own file,
	// so several directives in the same package never produce duplicated methods.
	if f := opts.Config.File; len(opts.Types) == 0 && f != "" {
		var own []cmdfactory.Declaration
		for _, d := range decls {
			if d.Pos.Filename == filepath.Base(f) {
				own = append(own, d)
			}
		}
		decls = own
	}
	if len(decls) == 0 {
		return "", fmt.Errorf("no %s declarations found in package %s", parsers.Directive, opts.Package)
	}
	var b bytes.Buffer
	gopts := generators.DefaultOptions(opts.Package, opts.Config.Package)
	for _, d := range all {
		if d.Shape == cmdfactory.ShapeArgs {
			gopts.Args = append(gopts.Args, d.Name)
		}
	}
	if err := generators.Generate(ctx, decls, gopts, &b); err != nil {
		return "", err
	}
	path := filepath.Join(opts.Dir, output(opts))
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func output(opts Options) string {
	if opts.Output != "" {
		return opts.Output
	}
	if f := opts.Config.File; f != "" {
		return strings.TrimSuffix(filepath.Base(f), ".go") + "_" + Output
	}
	return Output
}
