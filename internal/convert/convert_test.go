// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/docs2org/internal/collect"
	"github.com/pdiddy/docs2org/pkg/types"
)

var tools = types.ToolConfig{Asciidoctor: "asciidoctor", Pandoc: "pandoc"}

// fakeRunner implements toolchain.Runner for testing. It writes a placeholder
// to the path following "-o", unless the binary is listed in skipWrite.
type fakeRunner struct {
	calls     [][]string
	exitCodes map[string]int
	skipWrite map[string]bool
	err       error
}

func (f *fakeRunner) Run(_ context.Context, bin string, args ...string) (int, error) {
	f.calls = append(f.calls, append([]string{bin}, args...))
	if f.err != nil {
		return -1, f.err
	}
	if !f.skipWrite[bin] {
		for i, a := range args {
			if a == "-o" && i+1 < len(args) {
				if err := os.WriteFile(args[i+1], []byte("output of "+bin), 0o644); err != nil {
					return -1, err
				}
			}
		}
	}
	return f.exitCodes[bin], nil
}

// fakeRecorder keeps every record in memory.
type fakeRecorder struct {
	records []types.ConversionRecord
	err     error
}

func (f *fakeRecorder) Record(_ context.Context, rec types.ConversionRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

func adocSource(t *testing.T, relDir, base string) types.SourceFile {
	t.Helper()
	return types.SourceFile{
		Path:     filepath.Join("/site/content", relDir, base+types.ExtAsciiDoc),
		RelDir:   relDir,
		BaseName: base,
		Kind:     types.KindAsciiDoc,
	}
}

func htmlSource(t *testing.T, relDir, base string) types.SourceFile {
	t.Helper()
	return types.SourceFile{
		Path:     filepath.Join("/site/content", relDir, base+types.ExtHTML),
		RelDir:   relDir,
		BaseName: base,
		Kind:     types.KindHTML,
	}
}

func TestConvertAsciiDoc(t *testing.T) {
	out := t.TempDir()
	runner := &fakeRunner{}
	rec := &fakeRecorder{}
	var log bytes.Buffer
	inv := NewInvoker(runner, tools, out, &log, rec)

	sf := adocSource(t, filepath.Join("guides", "x", "y"), "z")
	if err := inv.ConvertAsciiDoc(context.Background(), sf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	xmlPath := filepath.Join(out, "guides", "x", "y", "z.xml")
	orgPath := filepath.Join(out, "guides", "x", "y", "z.org")

	if len(runner.calls) != 2 {
		t.Fatalf("got %d tool calls, want 2", len(runner.calls))
	}
	wantFirst := []string{"asciidoctor", "-b", "docbook5", sf.Path, "-o", xmlPath}
	wantSecond := []string{"pandoc", "-f", "docbook", xmlPath, "-o", orgPath}
	if strings.Join(runner.calls[0], " ") != strings.Join(wantFirst, " ") {
		t.Errorf("first call = %v, want %v", runner.calls[0], wantFirst)
	}
	if strings.Join(runner.calls[1], " ") != strings.Join(wantSecond, " ") {
		t.Errorf("second call = %v, want %v", runner.calls[1], wantSecond)
	}

	if _, err := os.Stat(orgPath); err != nil {
		t.Errorf("expected org output at %s", orgPath)
	}
	if _, err := os.Stat(xmlPath); !os.IsNotExist(err) {
		t.Errorf("intermediate %s should have been removed", xmlPath)
	}
	if !strings.Contains(log.String(), sf.Path) || !strings.Contains(log.String(), orgPath) {
		t.Errorf("log %q should name source and output", log.String())
	}
	if len(rec.records) != 2 {
		t.Fatalf("got %d records, want 2", len(rec.records))
	}
	if rec.records[0].Output != xmlPath || rec.records[1].Output != orgPath {
		t.Errorf("records = %+v", rec.records)
	}
}

func TestConvertAsciiDoc_RemovesIntermediateWhenPandocFails(t *testing.T) {
	out := t.TempDir()
	runner := &fakeRunner{
		exitCodes: map[string]int{"pandoc": 64},
		skipWrite: map[string]bool{"pandoc": true},
	}
	var log bytes.Buffer
	inv := NewInvoker(runner, tools, out, &log, nil)

	if err := inv.ConvertAsciiDoc(context.Background(), adocSource(t, "about", "index")); err != nil {
		t.Fatalf("a non-zero pandoc exit must not be an error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "about", "index.xml")); !os.IsNotExist(err) {
		t.Error("intermediate should be removed even when pandoc fails")
	}
}

func TestConvertAsciiDoc_MissingIntermediateAborts(t *testing.T) {
	out := t.TempDir()
	runner := &fakeRunner{
		exitCodes: map[string]int{"asciidoctor": 1},
		skipWrite: map[string]bool{"asciidoctor": true},
	}
	var log bytes.Buffer
	inv := NewInvoker(runner, tools, out, &log, nil)

	err := inv.ConvertAsciiDoc(context.Background(), adocSource(t, "about", "index"))
	if err == nil {
		t.Fatal("expected error when the intermediate file was never written")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got: %v", err)
	}
	if len(runner.calls) != 2 {
		t.Errorf("pandoc should still have been invoked, got %d calls", len(runner.calls))
	}
}

func TestConvertHTML(t *testing.T) {
	out := t.TempDir()
	runner := &fakeRunner{}
	var log bytes.Buffer
	inv := NewInvoker(runner, tools, out, &log, nil)

	sf := htmlSource(t, "api", "cheatsheet")
	if err := inv.ConvertHTML(context.Background(), sf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	orgPath := filepath.Join(out, "api", "cheatsheet.org")
	want := []string{"pandoc", sf.Path, "-o", orgPath}
	if len(runner.calls) != 1 || strings.Join(runner.calls[0], " ") != strings.Join(want, " ") {
		t.Errorf("calls = %v, want [%v]", runner.calls, want)
	}
	if _, err := os.Stat(orgPath); err != nil {
		t.Errorf("expected org output at %s", orgPath)
	}
}

func TestConvertHTML_UnwritableDestination(t *testing.T) {
	out := t.TempDir()
	// A regular file where the category directory should be.
	if err := os.WriteFile(filepath.Join(out, "api"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	runner := &fakeRunner{}
	var log bytes.Buffer
	inv := NewInvoker(runner, tools, out, &log, nil)

	if err := inv.ConvertHTML(context.Background(), htmlSource(t, "api", "cheatsheet")); err == nil {
		t.Fatal("expected error creating output directory")
	}
	if len(runner.calls) != 0 {
		t.Errorf("no tool should run when the directory cannot be created, got %v", runner.calls)
	}
}

func TestConvertAll(t *testing.T) {
	out := t.TempDir()
	runner := &fakeRunner{exitCodes: map[string]int{"asciidoctor": 2}}
	rec := &fakeRecorder{}
	var log bytes.Buffer
	inv := NewInvoker(runner, tools, out, &log, rec)

	wl := collect.Worklists{
		AsciiDoc: []types.SourceFile{adocSource(t, "about", "a"), adocSource(t, "guides", "b")},
		HTML:     []types.SourceFile{htmlSource(t, "reference", "c")},
	}
	result, err := inv.ConvertAll(context.Background(), wl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AsciiDoc != 2 || result.HTML != 1 || result.Total() != 3 {
		t.Errorf("result = %+v", result)
	}
	if result.NonZero != 2 {
		t.Errorf("non-zero = %d, want 2", result.NonZero)
	}
	if len(runner.calls) != 5 {
		t.Fatalf("got %d calls, want 5", len(runner.calls))
	}
	// AsciiDoc documents are converted before HTML documents.
	if runner.calls[4][0] != "pandoc" || runner.calls[4][1] != wl.HTML[0].Path {
		t.Errorf("last call = %v, want the HTML conversion", runner.calls[4])
	}
	if len(rec.records) != 5 {
		t.Errorf("got %d records, want 5", len(rec.records))
	}
}

func TestConvertAll_StopsOnFirstError(t *testing.T) {
	out := t.TempDir()
	runner := &fakeRunner{err: errors.New("executable file not found")}
	var log bytes.Buffer
	inv := NewInvoker(runner, tools, out, &log, nil)

	wl := collect.Worklists{
		AsciiDoc: []types.SourceFile{adocSource(t, "about", "a"), adocSource(t, "guides", "b")},
		HTML:     []types.SourceFile{htmlSource(t, "reference", "c")},
	}
	result, err := inv.ConvertAll(context.Background(), wl)
	if err == nil {
		t.Fatal("expected error")
	}
	if result.Total() != 0 {
		t.Errorf("result = %+v, want nothing converted", result)
	}
	if len(runner.calls) != 1 {
		t.Errorf("got %d calls, want 1", len(runner.calls))
	}
}

func TestConvertAll_RecorderFailureAborts(t *testing.T) {
	out := t.TempDir()
	rec := &fakeRecorder{err: errors.New("database is locked")}
	var log bytes.Buffer
	inv := NewInvoker(&fakeRunner{}, tools, out, &log, rec)

	wl := collect.Worklists{HTML: []types.SourceFile{htmlSource(t, "api", "x")}}
	if _, err := inv.ConvertAll(context.Background(), wl); err == nil {
		t.Fatal("expected recorder error")
	}
}
