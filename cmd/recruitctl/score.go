package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"alfredoptarigan/recruitment-ranker/internal/services"
)

var scoreCmd = &cobra.Command{
	Use:   "score <file>",
	Short: "Score a resume against a skill list",
	Long:  "Parses a resume into skill tokens and prints its cosine score and explanation against the given vacancy skills as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

var scoreSkills []string

func init() {
	scoreCmd.Flags().StringSliceVarP(&scoreSkills, "skills", "s", nil, "Comma separated vacancy skills (required)")

	if err := scoreCmd.MarkFlagRequired("skills"); err != nil {
		panic(fmt.Sprintf("failed to mark skills flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

type scoreOutput struct {
	File        string               `json:"file"`
	Tokens      []string             `json:"tokens"`
	Score       float64              `json:"score"`
	Explanation services.Explanation `json:"explanation"`
}

func runScore(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	text := services.NewTextExtractor(log).ExtractText(args[0])
	tokens := services.NewSkillExtractor(services.DefaultSkillRules(), log).ExtractSkills(text)

	skills := make([]string, 0, len(scoreSkills))
	for _, s := range scoreSkills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}

	vacancy := services.NewVacancyVector(skills)
	candidate := services.NewCandidateVector(tokens)

	out, err := json.MarshalIndent(scoreOutput{
		File:        args[0],
		Tokens:      tokens,
		Score:       services.CosineSimilarity(vacancy, candidate),
		Explanation: services.Explain(vacancy, candidate),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal score to JSON: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
