package services

import (
	"sort"
)

// MaxContributions caps the explanation's contribution list.
const MaxContributions = 15

type Contribution struct {
	Token           string `json:"token"`
	VacancyWeight   int    `json:"vacancyWeight"`
	CandidateWeight int    `json:"candidateWeight"`
	Product         int    `json:"product"`
}

type Explanation struct {
	Overlap         []string       `json:"overlap"`
	Contributions   []Contribution `json:"contributions"`
	VacancyTokens   int            `json:"vacancyTokens"`
	CandidateTokens int            `json:"candidateTokens"`
}

// CosineSimilarity returns the cosine of the angle between a and b, in [0, 1].
// Zero-magnitude vectors score 0.
func CosineSimilarity(a, b TermVector) float64 {
	magA, magB := a.Magnitude(), b.Magnitude()
	if magA == 0 || magB == 0 {
		return 0
	}

	// Keys absent from one side contribute nothing to the dot product.
	small, large := a, b
	if small.Len() > large.Len() {
		small, large = large, small
	}
	var dot float64
	for _, t := range small.order {
		dot += float64(small.counts[t]) * float64(large.counts[t])
	}

	score := dot / (magA * magB)
	if score > 1 {
		score = 1
	}
	return score
}

// Explain lists the tokens shared by vacancy and candidate, in candidate
// order, and the top contributions by descending weight product.
func Explain(vacancy, candidate TermVector) Explanation {
	overlap := make([]string, 0)
	contributions := make([]Contribution, 0)
	for _, t := range candidate.order {
		if !vacancy.Has(t) {
			continue
		}
		overlap = append(overlap, t)
		vw, cw := vacancy.Weight(t), candidate.Weight(t)
		contributions = append(contributions, Contribution{
			Token:           t,
			VacancyWeight:   vw,
			CandidateWeight: cw,
			Product:         vw * cw,
		})
	}

	sort.SliceStable(contributions, func(i, j int) bool {
		return contributions[i].Product > contributions[j].Product
	})
	if len(contributions) > MaxContributions {
		contributions = contributions[:MaxContributions]
	}

	return Explanation{
		Overlap:         overlap,
		Contributions:   contributions,
		VacancyTokens:   vacancy.Len(),
		CandidateTokens: candidate.Len(),
	}
}
