// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns collected AsciiDoc and HTML documents into Org files
// by driving asciidoctor and pandoc.
//
// Each output lands at the source's path relative to the content root,
// re-rooted under the output directory. Converter exit codes are recorded but
// never acted on; any filesystem or process-start failure stops the batch.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/docs2org/internal/collect"
	"github.com/pdiddy/docs2org/internal/toolchain"
	"github.com/pdiddy/docs2org/pkg/types"
)

// Recorder receives one record per external tool invocation.
type Recorder interface {
	Record(ctx context.Context, rec types.ConversionRecord) error
}

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, types.ConversionRecord) error { return nil }

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	AsciiDoc int
	HTML     int
	// NonZero counts tool invocations that exited with a non-zero status.
	NonZero int
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.AsciiDoc + r.HTML
}

// Invoker converts single documents. It is not safe for concurrent use.
type Invoker struct {
	runner   toolchain.Runner
	tools    types.ToolConfig
	outRoot  string
	w        io.Writer
	recorder Recorder
	nonZero  int
}

// NewInvoker creates an Invoker that writes under outRoot, printing the paths
// it processes to w. rec may be nil.
func NewInvoker(r toolchain.Runner, tools types.ToolConfig, outRoot string, w io.Writer, rec Recorder) *Invoker {
	if rec == nil {
		rec = noopRecorder{}
	}
	return &Invoker{
		runner:   r,
		tools:    tools,
		outRoot:  outRoot,
		w:        w,
		recorder: rec,
	}
}

// ConvertAsciiDoc renders sf to DocBook with asciidoctor, converts the DocBook
// to Org with pandoc and then removes the DocBook file. The removal happens
// whatever pandoc's exit status was; if the file is missing (asciidoctor
// failed to produce it) the removal error is returned.
func (inv *Invoker) ConvertAsciiDoc(ctx context.Context, sf types.SourceFile) error {
	xmlPath := sf.OutputPath(inv.outRoot, types.ExtDocBook)
	orgPath := sf.OutputPath(inv.outRoot, types.ExtOrg)
	fmt.Fprintln(inv.w, sf.Path, xmlPath, orgPath)

	if err := os.MkdirAll(filepath.Dir(xmlPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory for %s: %w", sf.Path, err)
	}

	if err := inv.run(ctx, sf, xmlPath, inv.tools.Asciidoctor,
		"-b", "docbook5", sf.Path, "-o", xmlPath); err != nil {
		return err
	}
	if err := inv.run(ctx, sf, orgPath, inv.tools.Pandoc,
		"-f", "docbook", xmlPath, "-o", orgPath); err != nil {
		return err
	}

	if err := os.Remove(xmlPath); err != nil {
		return fmt.Errorf("removing intermediate %s: %w", xmlPath, err)
	}
	return nil
}

// ConvertHTML converts sf to Org with a single pandoc call.
func (inv *Invoker) ConvertHTML(ctx context.Context, sf types.SourceFile) error {
	orgPath := sf.OutputPath(inv.outRoot, types.ExtOrg)
	fmt.Fprintln(inv.w, sf.Path, orgPath)

	if err := os.MkdirAll(filepath.Dir(orgPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory for %s: %w", sf.Path, err)
	}

	return inv.run(ctx, sf, orgPath, inv.tools.Pandoc, sf.Path, "-o", orgPath)
}

// ConvertAll converts every AsciiDoc document, then every HTML document. It
// stops at the first error.
func (inv *Invoker) ConvertAll(ctx context.Context, wl collect.Worklists) (BatchResult, error) {
	var result BatchResult
	start := inv.nonZero

	for _, sf := range wl.AsciiDoc {
		if err := inv.ConvertAsciiDoc(ctx, sf); err != nil {
			result.NonZero = inv.nonZero - start
			return result, err
		}
		result.AsciiDoc++
	}
	for _, sf := range wl.HTML {
		if err := inv.ConvertHTML(ctx, sf); err != nil {
			result.NonZero = inv.nonZero - start
			return result, err
		}
		result.HTML++
	}

	result.NonZero = inv.nonZero - start
	return result, nil
}

// run executes one tool invocation and records it.
func (inv *Invoker) run(ctx context.Context, sf types.SourceFile, output, bin string, args ...string) error {
	started := time.Now()
	code, err := inv.runner.Run(ctx, bin, args...)
	if err != nil {
		return fmt.Errorf("converting %s: %w", sf.Path, err)
	}
	if code != 0 {
		inv.nonZero++
	}

	rec := types.ConversionRecord{
		Kind:        sf.Kind,
		Tool:        bin,
		Source:      sf.Path,
		Output:      output,
		ExitCode:    code,
		Duration:    time.Since(started),
		ConvertedAt: started.UTC(),
	}
	if err := inv.recorder.Record(ctx, rec); err != nil {
		return fmt.Errorf("recording conversion of %s: %w", sf.Path, err)
	}
	return nil
}
