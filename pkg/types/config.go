package types

import (
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Defaults match the layout of the documentation site this tool was written for.
const (
	DefaultContentDir  = "content"
	DefaultAsciidoctor = "asciidoctor"
	DefaultPandoc      = "pandoc"
	DefaultCheatsheet  = "api/cheatsheet.org"
	DefaultRawBegin    = "#+BEGIN_HTML"
	DefaultRawEnd      = "#+END_HTML"
)

// DefaultCategories lists the top-level content groupings that are scanned.
var DefaultCategories = []string{"about", "guides", "reference", "api"}

// ToolConfig names the external converter binaries.
type ToolConfig struct {
	// Asciidoctor converts AsciiDoc to DocBook 5 XML.
	Asciidoctor string `json:"asciidoctor" yaml:"asciidoctor"`

	// Pandoc converts DocBook XML and HTML to Org.
	Pandoc string `json:"pandoc" yaml:"pandoc"`
}

// Config holds the settings for one conversion run.
type Config struct {
	// ContentDir is the directory under the site root that holds the categories.
	ContentDir string `json:"content_dir" yaml:"content_dir"`

	// Categories are the subdirectories of ContentDir that are walked.
	Categories []string `json:"categories" yaml:"categories"`

	// OutputDir is where the mirrored .org tree is written (default: working directory).
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	Tools ToolConfig `json:"tools" yaml:"tools"`

	// Cheatsheet is the output-relative path of the file cleaned after conversion.
	Cheatsheet string `json:"cheatsheet" yaml:"cheatsheet"`

	// RawBegin and RawEnd delimit raw HTML blocks removed from the cheatsheet.
	RawBegin string `json:"raw_begin" yaml:"raw_begin"`
	RawEnd   string `json:"raw_end" yaml:"raw_end"`

	// Journal is the path of the SQLite run journal. Empty disables it.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		ContentDir: DefaultContentDir,
		Categories: append([]string(nil), DefaultCategories...),
		OutputDir:  ".",
		Tools: ToolConfig{
			Asciidoctor: DefaultAsciidoctor,
			Pandoc:      DefaultPandoc,
		},
		Cheatsheet: DefaultCheatsheet,
		RawBegin:   DefaultRawBegin,
		RawEnd:     DefaultRawEnd,
	}
}

// Validate checks that every setting needed by a run is present.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ContentDir, validation.Required),
		validation.Field(&c.Categories, validation.Required, validation.Each(validation.Required, validation.By(relativeName))),
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.Tools),
		validation.Field(&c.Cheatsheet, validation.Required, validation.By(relativeName)),
		validation.Field(&c.RawBegin, validation.Required),
		validation.Field(&c.RawEnd, validation.Required),
	)
}

// Validate checks that both converter binaries are named.
func (t ToolConfig) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Asciidoctor, validation.Required),
		validation.Field(&t.Pandoc, validation.Required),
	)
}

func relativeName(value any) error {
	s, _ := value.(string)
	if filepath.IsAbs(s) || strings.HasPrefix(filepath.Clean(s), "..") {
		return validation.NewError("docs2org.path_not_relative", "must be a relative path inside the tree")
	}
	return nil
}
