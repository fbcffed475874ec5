package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docs2org/internal/collect"
	"github.com/pdiddy/docs2org/internal/pipeline"
	"github.com/pdiddy/docs2org/pkg/types"
)

var collectCmd = &cobra.Command{
	Use:   "collect <site-root>",
	Short: "List the documents a conversion run would process",
	Long: `Collect walks the category directories of <site-root>/content and prints
the AsciiDoc and HTML worklists without running any converter. Use --yaml to
get a machine-readable manifest.`,
	Args: cobra.ExactArgs(1),
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().Bool("yaml", false, "print the worklists as a YAML manifest")

	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	contentRoot := pipeline.ContentRoot(args[0], cfg)
	wl, err := collect.CollectDir(contentRoot, cfg.Categories)
	if err != nil {
		return err
	}

	asYAML, _ := cmd.Flags().GetBool("yaml")
	if asYAML {
		return collect.WriteManifest(os.Stdout, contentRoot, cfg.Categories, wl)
	}
	return printWorklists(os.Stdout, wl)
}

func printWorklists(w io.Writer, wl collect.Worklists) error {
	if wl.Total() == 0 {
		_, err := fmt.Fprintln(w, "No documents found.")
		return err
	}

	rows := make([][]string, 0, wl.Total())
	add := func(files []types.SourceFile) {
		for _, f := range files {
			rows = append(rows, []string{string(f.Kind), f.RelDir, f.BaseName, f.Path})
		}
	}
	add(wl.AsciiDoc)
	add(wl.HTML)

	writeTable(w, []string{"Kind", "Directory", "Name", "Source"}, rows)
	_, err := fmt.Fprintf(w, "%d AsciiDoc, %d HTML\n", len(wl.AsciiDoc), len(wl.HTML))
	return err
}
