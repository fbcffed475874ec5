package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/pdiddy/docs2org/internal/collect"
	"github.com/pdiddy/docs2org/internal/toolchain"
	"github.com/pdiddy/docs2org/pkg/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	setDefaults()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ContentDir != "content" || cfg.OutputDir != "." || cfg.Cheatsheet != "api/cheatsheet.org" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if strings.Join(cfg.Categories, ",") != "about,guides,reference,api" {
		t.Errorf("categories = %v", cfg.Categories)
	}
	if cfg.Journal != "" {
		t.Errorf("journal should be disabled by default, got %q", cfg.Journal)
	}
}

func TestLoadConfigOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	setDefaults()
	viper.Set("tools.pandoc", "/opt/pandoc/bin/pandoc")
	viper.Set("categories", []string{"guides"})

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Tools.Pandoc != "/opt/pandoc/bin/pandoc" {
		t.Errorf("pandoc = %q", cfg.Tools.Pandoc)
	}
	if len(cfg.Categories) != 1 || cfg.Categories[0] != "guides" {
		t.Errorf("categories = %v", cfg.Categories)
	}

	viper.Set("raw_begin", "")
	if _, err := loadConfig(); err == nil {
		t.Error("expected validation error for empty raw_begin")
	}
}

func TestPrintWorklists(t *testing.T) {
	var buf bytes.Buffer
	if err := printWorklists(&buf, collect.Worklists{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No documents found.") {
		t.Errorf("got %q", buf.String())
	}

	buf.Reset()
	wl := collect.Worklists{
		AsciiDoc: []types.SourceFile{{Path: "/s/content/guides/a.adoc", RelDir: "guides", BaseName: "a", Kind: types.KindAsciiDoc}},
		HTML:     []types.SourceFile{{Path: "/s/content/api/b.html", RelDir: "api", BaseName: "b", Kind: types.KindHTML}},
	}
	if err := printWorklists(&buf, wl); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"/s/content/guides/a.adoc", "/s/content/api/b.html", "1 AsciiDoc, 1 HTML"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintToolStatus(t *testing.T) {
	var buf bytes.Buffer
	err := printToolStatus(&buf, []toolchain.Status{
		{Bin: "asciidoctor", Err: errors.New("not found")},
		{Bin: "pandoc", Path: "/usr/bin/pandoc"},
	})
	if err == nil {
		t.Fatal("expected error for missing tool")
	}
	if !strings.Contains(buf.String(), "missing") || !strings.Contains(buf.String(), "/usr/bin/pandoc") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestWriteTablePlainOutput(t *testing.T) {
	var buf bytes.Buffer
	writeTable(&buf, []string{"Name", "N"}, [][]string{{"a", "1"}, {"bbbb", "22"}}, 2)

	out := buf.String()
	if strings.ContainsRune(out, '╭') {
		t.Errorf("non-terminal output should not use rounded borders:\n%s", out)
	}
	for _, want := range []string{"+------+----+", "| NAME | N  |", "| a    |  1 |", "| bbbb | 22 |"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("output should end with a newline: %q", out)
	}
}
