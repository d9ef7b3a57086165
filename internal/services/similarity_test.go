package services

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name      string
		vacancy   []string
		candidate []string
		want      float64
	}{
		{"perfect match", []string{"python", "docker"}, []string{"docker", "python"}, 1},
		{"no overlap", []string{"python"}, []string{"java"}, 0},
		{"partial", []string{"python", "docker", "aws"}, []string{"python", "java"}, 1 / math.Sqrt(6)},
		{"empty vacancy", nil, []string{"python"}, 0},
		{"empty candidate", []string{"python"}, nil, 0},
		{"both empty", nil, nil, 0},
		{"case insensitive", []string{"Python"}, []string{"python"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(NewVacancyVector(tt.vacancy), NewCandidateVector(tt.candidate))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCosineSimilarity_Symmetric(t *testing.T) {
	a := NewVacancyVector([]string{"go", "go", "sql", "docker"})
	b := NewCandidateVector([]string{"go", "sql", "kafka"})
	assert.InDelta(t, CosineSimilarity(a, b), CosineSimilarity(b, a), 1e-12)
}

func TestCosineSimilarity_Bounded(t *testing.T) {
	sets := [][]string{
		{"go"},
		{"go", "go", "go"},
		{"go", "sql", "sql"},
		{"a", "b", "c", "d", "e"},
		{"", " "},
	}
	for _, x := range sets {
		for _, y := range sets {
			score := CosineSimilarity(NewVacancyVector(x), NewCandidateVector(y))
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	}
}

func TestExplain_Partial(t *testing.T) {
	vacancy := NewVacancyVector([]string{"python", "docker", "aws"})
	candidate := NewCandidateVector([]string{"python", "java"})

	exp := Explain(vacancy, candidate)
	assert.Equal(t, []string{"python"}, exp.Overlap)
	require.Len(t, exp.Contributions, 1)
	assert.Equal(t, Contribution{Token: "python", VacancyWeight: 1, CandidateWeight: 1, Product: 1}, exp.Contributions[0])
	assert.Equal(t, 3, exp.VacancyTokens)
	assert.Equal(t, 2, exp.CandidateTokens)
}

func TestExplain_NoOverlap(t *testing.T) {
	exp := Explain(NewVacancyVector([]string{"python"}), NewCandidateVector([]string{"java"}))
	assert.NotNil(t, exp.Overlap)
	assert.Empty(t, exp.Overlap)
	assert.NotNil(t, exp.Contributions)
	assert.Empty(t, exp.Contributions)
}

func TestExplain_OrderAndCap(t *testing.T) {
	var tokens []string
	for i := 0; i < 20; i++ {
		tokens = append(tokens, fmt.Sprintf("skill%02d", i))
	}
	// skill19 is weighted twice on the candidate side.
	candidateTokens := append([]string{}, tokens...)
	candidateTokens = append(candidateTokens, "skill19")

	exp := Explain(NewVacancyVector(tokens), NewCandidateVector(candidateTokens))

	assert.Len(t, exp.Overlap, 20)
	assert.Equal(t, "skill00", exp.Overlap[0])
	require.Len(t, exp.Contributions, MaxContributions)
	assert.Equal(t, "skill19", exp.Contributions[0].Token)
	assert.Equal(t, 2, exp.Contributions[0].Product)
	// Equal products keep candidate order.
	assert.Equal(t, "skill00", exp.Contributions[1].Token)
	assert.Equal(t, "skill13", exp.Contributions[MaxContributions-1].Token)
}
