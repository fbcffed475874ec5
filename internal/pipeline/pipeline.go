// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs a complete conversion: collect, convert AsciiDoc,
// convert HTML, then clean the cheatsheet. Steps run strictly in that order
// and the first error ends the run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pdiddy/docs2org/internal/cleanup"
	"github.com/pdiddy/docs2org/internal/collect"
	"github.com/pdiddy/docs2org/internal/convert"
	"github.com/pdiddy/docs2org/internal/toolchain"
	"github.com/pdiddy/docs2org/pkg/types"
)

// Options configures a pipeline run.
type Options struct {
	// SiteRoot is the directory given on the command line; the content tree
	// is SiteRoot/Config.ContentDir.
	SiteRoot string

	Config types.Config

	Runner   toolchain.Runner
	Recorder convert.Recorder

	// Out receives progress lines.
	Out io.Writer
}

// Summary reports what a run did.
type Summary struct {
	AsciiDoc   int
	HTML       int
	NonZero    int
	Cheatsheet string
}

// ContentRoot returns the directory that is scanned for a site root.
func ContentRoot(siteRoot string, cfg types.Config) string {
	return filepath.Join(siteRoot, cfg.ContentDir)
}

// Run executes the whole conversion. The cheatsheet is cleaned even when no
// documents were found; if it does not exist the run fails.
func Run(ctx context.Context, opts Options) (Summary, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return Summary{}, fmt.Errorf("invalid configuration: %w", err)
	}

	outRoot, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return Summary{}, fmt.Errorf("resolving output directory %s: %w", cfg.OutputDir, err)
	}

	wl, err := collect.CollectDir(ContentRoot(opts.SiteRoot, cfg), cfg.Categories)
	if err != nil {
		return Summary{}, fmt.Errorf("collecting sources: %w", err)
	}

	inv := convert.NewInvoker(opts.Runner, cfg.Tools, outRoot, opts.Out, opts.Recorder)
	result, err := inv.ConvertAll(ctx, wl)
	summary := Summary{
		AsciiDoc: result.AsciiDoc,
		HTML:     result.HTML,
		NonZero:  result.NonZero,
	}
	if err != nil {
		return summary, err
	}

	summary.Cheatsheet = filepath.Join(outRoot, cfg.Cheatsheet)
	if err := cleanup.CleanFile(summary.Cheatsheet, cfg.RawBegin, cfg.RawEnd); err != nil {
		return summary, err
	}
	return summary, nil
}
