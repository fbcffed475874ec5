package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docs2org/internal/cleanup"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file.org>...",
	Short: "Strip blank lines and raw HTML blocks from Org files in place",
	Long: `Clean applies the cheatsheet post-processing to arbitrary files: blank
lines are removed, and the lines between the raw block markers (by default
#+BEGIN_HTML and #+END_HTML) are dropped while the markers themselves are
kept.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	for _, path := range args {
		if err := cleanup.CleanFile(path, cfg.RawBegin, cfg.RawEnd); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "cleaned: %s\n", path)
	}
	return nil
}
