package services

import (
	"math"
	"strings"
)

// VectorSource records which token source a TermVector was built from.
type VectorSource string

const (
	SourceVacancySkills   VectorSource = "vacancy_skills"
	SourceCandidateTokens VectorSource = "candidate_tokens"
)

// TermVector is a bag-of-words term-frequency vector over normalized tokens.
// It is built from exactly one source and has no way to absorb another.
type TermVector struct {
	source VectorSource
	counts map[string]int
	order  []string
}

// NewVacancyVector builds the vector from a vacancy's HR-authored skill list.
func NewVacancyVector(skills []string) TermVector {
	return buildVector(SourceVacancySkills, skills)
}

// NewCandidateVector builds the vector from a candidate's persisted parsed words.
func NewCandidateVector(parsedWords []string) TermVector {
	return buildVector(SourceCandidateTokens, parsedWords)
}

func buildVector(source VectorSource, tokens []string) TermVector {
	v := TermVector{source: source, counts: make(map[string]int, len(tokens))}
	for _, raw := range tokens {
		t := NormalizeToken(raw)
		if t == "" {
			continue
		}
		if v.counts[t] == 0 {
			v.order = append(v.order, t)
		}
		v.counts[t]++
	}
	return v
}

// NormalizeToken lowercases and trims a token. Inner spacing and punctuation
// are preserved, so "Ruby on Rails" and "ruby-on-rails" stay distinct.
func NormalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (v TermVector) Source() VectorSource {
	return v.source
}

// Weight returns the frequency of token, or 0 when absent.
func (v TermVector) Weight(token string) int {
	return v.counts[token]
}

func (v TermVector) Has(token string) bool {
	return v.counts[token] > 0
}

// Len is the number of distinct tokens.
func (v TermVector) Len() int {
	return len(v.order)
}

// Tokens returns the distinct tokens in first-seen order.
func (v TermVector) Tokens() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

func (v TermVector) Magnitude() float64 {
	var sum float64
	for _, c := range v.counts {
		sum += float64(c) * float64(c)
	}
	return math.Sqrt(sum)
}
