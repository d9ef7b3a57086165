// Package main provides recruitctl, a command line companion to the API for
// inspecting resume parsing and scoring without a database.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/recruitment-ranker/internal/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "recruitctl",
	Short: "Recruitment ranking tools",
	Long:  "recruitctl extracts text and skills from resumes, scores them against a skill list, and mints API tokens for local testing.",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log extraction details to stdout")
}

// newLogger is silent unless --verbose is set, so command output stays parseable.
func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return logger.New(false, true)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
