// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collect walks the category directories of a content tree and sorts
// the documents it finds into per-converter worklists.
package collect

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/pdiddy/docs2org/pkg/types"
)

// Worklists holds the documents found by a walk, partitioned by converter.
type Worklists struct {
	AsciiDoc []types.SourceFile `yaml:"asciidoc"`
	HTML     []types.SourceFile `yaml:"html"`
}

// Total returns the number of documents in both worklists.
func (w Worklists) Total() int {
	return len(w.AsciiDoc) + len(w.HTML)
}

// CollectDir walks the categories under contentRoot on the local disk.
// contentRoot may be relative; it is resolved against the working directory
// so that every SourceFile carries an absolute path.
func CollectDir(contentRoot string, categories []string) (Worklists, error) {
	abs, err := filepath.Abs(contentRoot)
	if err != nil {
		return Worklists{}, fmt.Errorf("resolving content root %s: %w", contentRoot, err)
	}
	return collect(osfs.New(abs), abs, categories)
}

// Collect walks the categories of fsys, whose root is the content root.
// Paths in the returned records are rooted at fsys.Root().
func Collect(fsys billy.Filesystem, categories []string) (Worklists, error) {
	return collect(fsys, fsys.Root(), categories)
}

func collect(fsys billy.Filesystem, absRoot string, categories []string) (Worklists, error) {
	var wl Worklists
	visit := func(path string, info os.FileInfo, err error) error {
		// Missing categories and unreadable directories contribute nothing.
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}

		name := info.Name()
		var kind types.SourceKind
		switch {
		case strings.HasSuffix(name, types.ExtAsciiDoc):
			kind = types.KindAsciiDoc
		case strings.HasSuffix(name, types.ExtHTML):
			kind = types.KindHTML
		default:
			return nil
		}

		sf := types.SourceFile{
			Path:     filepath.Join(absRoot, path),
			RelDir:   filepath.Dir(path),
			BaseName: strings.TrimSuffix(name, filepath.Ext(name)),
			Kind:     kind,
		}
		if kind == types.KindAsciiDoc {
			wl.AsciiDoc = append(wl.AsciiDoc, sf)
		} else {
			wl.HTML = append(wl.HTML, sf)
		}
		return nil
	}

	for _, category := range categories {
		for _, root := range categoryRoots(fsys, category) {
			if err := util.Walk(fsys, root, visit); err != nil {
				return Worklists{}, fmt.Errorf("walking %s: %w", category, err)
			}
		}
	}
	return wl, nil
}

// categoryRoots returns the paths to walk for category. util.Walk does not
// follow a symlinked root, so a category that links to a directory is
// replaced by its entries. Links below the category are not followed.
// A category that is not a directory yields nothing.
func categoryRoots(fsys billy.Filesystem, category string) []string {
	info, err := fsys.Lstat(category)
	if err != nil {
		return nil
	}
	if info.IsDir() {
		return []string{category}
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return nil
	}

	target, err := fsys.Stat(category)
	if err != nil || !target.IsDir() {
		return nil
	}
	entries, err := fsys.ReadDir(category)
	if err != nil {
		return nil
	}
	roots := make([]string, 0, len(entries))
	for _, e := range entries {
		roots = append(roots, filepath.Join(category, e.Name()))
	}
	return roots
}
