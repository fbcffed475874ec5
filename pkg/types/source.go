// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"time"
)

// File extensions recognized by the collector and produced by the converters.
const (
	ExtAsciiDoc = ".adoc"
	ExtHTML     = ".html"
	ExtDocBook  = ".xml"
	ExtOrg      = ".org"
)

// SourceKind identifies which converter chain handles a source document.
type SourceKind string

const (
	KindAsciiDoc SourceKind = "asciidoc"
	KindHTML     SourceKind = "html"
)

// SourceFile is one document found under a category directory of the
// content root. It is built once by the collector and never modified.
type SourceFile struct {
	// Path is the absolute path of the source document.
	Path string `json:"path" yaml:"path"`

	// RelDir is the directory holding the document, relative to the content
	// root (e.g. "guides/install"). It includes the category name.
	RelDir string `json:"rel_dir" yaml:"rel_dir"`

	// BaseName is the file name without its extension.
	BaseName string `json:"base_name" yaml:"base_name"`

	// Kind selects the converter chain.
	Kind SourceKind `json:"kind" yaml:"kind"`
}

// OutputPath returns outRoot/RelDir/BaseName+ext, the location that mirrors
// the source under an output root.
func (s SourceFile) OutputPath(outRoot, ext string) string {
	return filepath.Join(outRoot, s.RelDir, s.BaseName+ext)
}

// ConversionRecord is a single external tool invocation as stored in the
// run journal.
type ConversionRecord struct {
	RunID       string        `json:"run_id" yaml:"run_id"`
	Kind        SourceKind    `json:"kind" yaml:"kind"`
	Tool        string        `json:"tool" yaml:"tool"`
	Source      string        `json:"source" yaml:"source"`
	Output      string        `json:"output" yaml:"output"`
	ExitCode    int           `json:"exit_code" yaml:"exit_code"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
	ConvertedAt time.Time     `json:"converted_at" yaml:"converted_at"`
}
