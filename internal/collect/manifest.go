// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"fmt"
	"io"
	"time"

	"go.yaml.in/yaml/v3"
)

// Manifest is the YAML form of a collection pass. It lets the user see what a
// conversion run would touch without invoking any converter.
type Manifest struct {
	ContentRoot string       `yaml:"content_root"`
	Categories  []string     `yaml:"categories"`
	Worklists   Worklists    `yaml:"worklists"`
	Summary     ManifestInfo `yaml:"summary"`
}

// ManifestInfo stores counts and the time of the walk.
type ManifestInfo struct {
	AsciiDoc  int       `yaml:"asciidoc"`
	HTML      int       `yaml:"html"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteManifest encodes the worklists for contentRoot as YAML to w.
func WriteManifest(w io.Writer, contentRoot string, categories []string, wl Worklists) error {
	m := Manifest{
		ContentRoot: contentRoot,
		Categories:  categories,
		Worklists:   wl,
		Summary: ManifestInfo{
			AsciiDoc:  len(wl.AsciiDoc),
			HTML:      len(wl.HTML),
			Timestamp: time.Now().UTC(),
		},
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&m); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return enc.Close()
}
