package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docs2org/internal/journal"
	"github.com/pdiddy/docs2org/internal/pipeline"
	"github.com/pdiddy/docs2org/internal/toolchain"
)

var convertCmd = &cobra.Command{
	Use:   "convert <site-root>",
	Short: "Convert every AsciiDoc and HTML page under <site-root>/content to Org",
	Long: `Convert collects the documents under each category of <site-root>/content,
converts AsciiDoc files first and HTML files second, then cleans the
cheatsheet. The first failure aborts the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	opts := pipeline.Options{
		SiteRoot: args[0],
		Config:   cfg,
		Runner:   toolchain.New(os.Stdout, os.Stderr),
		Out:      os.Stdout,
	}

	var (
		j     *journal.Journal
		runID string
	)
	if cfg.Journal != "" {
		j, err = journal.Open(cfg.Journal)
		if err != nil {
			return err
		}
		defer j.Close()

		runID, err = j.BeginRun(ctx, args[0])
		if err != nil {
			return err
		}
		opts.Recorder = j.Recorder(runID)
	}

	summary, runErr := pipeline.Run(ctx, opts)
	if j != nil {
		if err := j.FinishRun(ctx, runID, summary.AsciiDoc, summary.HTML, runErr); err != nil && runErr == nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(os.Stdout, "\nConverted %d AsciiDoc and %d HTML document(s); cleaned %s\n",
		summary.AsciiDoc, summary.HTML, summary.Cheatsheet)
	if summary.NonZero > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d converter invocation(s) exited with a non-zero status\n", summary.NonZero)
	}
	return nil
}
