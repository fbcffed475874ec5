// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docs2org CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docs2org/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the docs2org CLI. Invoked with a single
// site root it behaves like "docs2org convert <site-root>".
var rootCmd = &cobra.Command{
	Use:   "docs2org <site-root>",
	Short: "Convert a documentation site's AsciiDoc and HTML pages to Org files",
	Long: `docs2org walks <site-root>/content/{about,guides,reference,api}, converts
every .adoc file with asciidoctor (DocBook 5) and pandoc, converts every .html
file with pandoc, and writes the resulting .org files into the current
directory, mirroring the content layout. Finally it strips blank lines and raw
HTML blocks from api/cheatsheet.org.

Converter exit codes are not checked. A missing converter binary or an
unwritable output path stops the run.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docs2org.yaml or ~/.config/docs2org/docs2org.yaml)")
	rootCmd.PersistentFlags().String("out", "", "output directory for .org files (default: current directory)")
	rootCmd.PersistentFlags().String("journal", "", "SQLite run journal path (disabled when empty)")

	_ = viper.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("out"))
	_ = viper.BindPFlag("journal", rootCmd.PersistentFlags().Lookup("journal"))
}

func initConfig() {
	setDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docs2org")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docs2org"))
		}
	}

	viper.SetEnvPrefix("DOCS2ORG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setDefaults() {
	d := types.DefaultConfig()
	viper.SetDefault("content_dir", d.ContentDir)
	viper.SetDefault("categories", d.Categories)
	viper.SetDefault("output_dir", d.OutputDir)
	viper.SetDefault("tools.asciidoctor", d.Tools.Asciidoctor)
	viper.SetDefault("tools.pandoc", d.Tools.Pandoc)
	viper.SetDefault("cheatsheet", d.Cheatsheet)
	viper.SetDefault("raw_begin", d.RawBegin)
	viper.SetDefault("raw_end", d.RawEnd)
	viper.SetDefault("journal", d.Journal)
}

// loadConfig assembles the run configuration from defaults, the config
// file, DOCS2ORG_* environment variables and flags.
func loadConfig() (types.Config, error) {
	cfg := types.Config{
		ContentDir: viper.GetString("content_dir"),
		Categories: viper.GetStringSlice("categories"),
		OutputDir:  viper.GetString("output_dir"),
		Tools: types.ToolConfig{
			Asciidoctor: viper.GetString("tools.asciidoctor"),
			Pandoc:      viper.GetString("tools.pandoc"),
		},
		Cheatsheet: viper.GetString("cheatsheet"),
		RawBegin:   viper.GetString("raw_begin"),
		RawEnd:     viper.GetString("raw_end"),
		Journal:    viper.GetString("journal"),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
