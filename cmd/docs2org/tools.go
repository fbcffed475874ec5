package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docs2org/internal/toolchain"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Check that asciidoctor and pandoc are installed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return printToolStatus(os.Stdout, toolchain.Check(cfg.Tools.Asciidoctor, cfg.Tools.Pandoc))
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

func printToolStatus(w io.Writer, statuses []toolchain.Status) error {
	rows := make([][]string, 0, len(statuses))
	missing := 0
	for _, s := range statuses {
		state := "ok"
		if !s.Available() {
			state = "missing"
			missing++
		}
		rows = append(rows, []string{s.Bin, state, s.Path})
	}
	writeTable(w, []string{"Tool", "Status", "Path"}, rows)

	if missing > 0 {
		return fmt.Errorf("%d converter(s) not found on PATH", missing)
	}
	return nil
}
