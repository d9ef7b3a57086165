package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/recruitment-ranker/internal/services"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Print the plain text of a resume",
	Long:  "Extracts plain text from a .pdf or .txt resume the same way the apply flow does. Unsupported or unreadable files print nothing.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var extractSkills bool

func init() {
	extractCmd.Flags().BoolVar(&extractSkills, "skills", false, "Print extracted skill tokens instead of text")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	text := services.NewTextExtractor(log).ExtractText(args[0])

	if extractSkills {
		for _, skill := range services.NewSkillExtractor(services.DefaultSkillRules(), log).ExtractSkills(text) {
			fmt.Fprintln(cmd.OutOrStdout(), skill)
		}
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), services.CleanText(text))
	return nil
}
