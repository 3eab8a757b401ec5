package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jwesterfield/jobdigest/internal/review"
)

var reviewFile string

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Browse a saved shortlist",
	Long:  "Opens an interactive browser over the shortlist JSON written by a digest run.",
	RunE:  runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.Flags().StringVar(&reviewFile, "file", "", "shortlist JSON to browse (default: output.file from config)")
}

func runReview(cmd *cobra.Command, args []string) error {
	path := reviewFile
	if path == "" {
		cfg, err := loadConfig(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		path = cfg.Output.File
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "no shortlist file: pass --file or set output.file in config")
		os.Exit(1)
	}

	shortlist, err := review.LoadShortlist(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	return review.Run(shortlist)
}
