package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docs2org/internal/journal"
	"github.com/pdiddy/docs2org/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent conversions from the run journal",
	Long: `History reads the SQLite run journal (set with --journal or the journal
config key) and prints the most recent converter invocations, or the most
recent runs with --runs.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries to show")
	historyCmd.Flags().Bool("runs", false, "list runs instead of individual conversions")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Journal == "" {
		return fmt.Errorf("no journal configured: pass --journal or set journal in the config file")
	}

	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return err
	}
	defer j.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	showRuns, _ := cmd.Flags().GetBool("runs")

	if showRuns {
		runs, err := j.Runs(cmd.Context(), limit)
		if err != nil {
			return err
		}
		printRuns(os.Stdout, runs)
		return nil
	}

	convs, err := j.RecentConversions(cmd.Context(), limit)
	if err != nil {
		return err
	}
	printConversions(os.Stdout, convs)
	return nil
}

func printRuns(w io.Writer, runs []journal.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID,
			r.StartedAt.Local().Format(time.DateTime),
			r.Status,
			strconv.Itoa(r.AsciiDoc),
			strconv.Itoa(r.HTML),
			r.SiteRoot,
			r.Error,
		})
	}
	writeTable(w, []string{"Run", "Started", "Status", "AsciiDoc", "HTML", "Site", "Error"}, rows, 4, 5)
}

func printConversions(w io.Writer, convs []types.ConversionRecord) {
	if len(convs) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return
	}
	rows := make([][]string, 0, len(convs))
	for _, c := range convs {
		rows = append(rows, []string{
			c.ConvertedAt.Local().Format(time.DateTime),
			c.Tool,
			strconv.Itoa(c.ExitCode),
			c.Duration.Round(time.Millisecond).String(),
			c.Source,
			c.Output,
		})
	}
	writeTable(w, []string{"When", "Tool", "Exit", "Took", "Source", "Output"}, rows, 3, 4)
}
