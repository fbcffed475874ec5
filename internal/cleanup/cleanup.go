// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cleanup tidies a generated Org file: it drops blank lines and the
// bodies of raw HTML blocks that pandoc leaves behind.
package cleanup

import (
	"fmt"
	"os"
	"strings"
)

// Clean filters lines. Blank lines are always dropped. A line equal to begin
// is kept if no block is open and then opens one; lines inside an open block
// are dropped, except a line equal to end, which is kept and closes the block.
// An unterminated block is not an error.
//
// Lines are compared without their trailing line terminator, so Clean works on
// both bare lines and the output of strings.SplitAfter.
func Clean(lines []string, begin, end string) []string {
	out := make([]string, 0, len(lines))
	suppressed := false
	for _, line := range lines {
		text := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}

		switch {
		case text == begin:
			if !suppressed {
				out = append(out, line)
			}
			suppressed = true
		case text == end && suppressed:
			out = append(out, line)
			suppressed = false
		case !suppressed:
			out = append(out, line)
		}
	}
	return out
}

// CleanFile reads path, applies Clean to its lines and rewrites it in place.
// Line terminators and the file mode are preserved. A missing file is an
// error.
func CleanFile(path, begin, end string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cleaning %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	kept := Clean(strings.SplitAfter(string(data), "\n"), begin, end)

	if err := os.WriteFile(path, []byte(strings.Join(kept, "")), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
