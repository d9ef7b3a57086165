package services

// MaxDiffTokens caps each side of a reported skills diff.
const MaxDiffTokens = 10

type SkillDiffs struct {
	Added   []string `json:"added"`
	Missing []string `json:"missing"`
}

// Inconsistency compares one application's tokens against the union of the
// same applicant's other applications.
type Inconsistency struct {
	Inconsistent bool
	// Diffs is nil unless Inconsistent is set.
	Diffs *SkillDiffs
}

// Baseline accumulates the union of token sets from other applications.
type Baseline struct {
	set *tokenSet
}

func NewBaseline() *Baseline {
	return &Baseline{set: newTokenSet()}
}

func (b *Baseline) Add(tokens []string) {
	for _, t := range tokens {
		b.set.add(NormalizeToken(t))
	}
}

func (b *Baseline) Len() int {
	if b == nil {
		return 0
	}
	return b.set.size()
}

// DetectInconsistency reports tokens added to or missing from current
// relative to baseline. Without a baseline nothing is ever flagged. Neither
// input is modified.
func DetectInconsistency(current []string, baseline *Baseline) Inconsistency {
	if baseline.Len() == 0 {
		return Inconsistency{}
	}

	cur := newTokenSet()
	for _, t := range current {
		cur.add(NormalizeToken(t))
	}

	added := make([]string, 0)
	for _, t := range cur.order {
		if !baseline.set.has(t) {
			added = append(added, t)
		}
	}
	missing := make([]string, 0)
	for _, t := range baseline.set.order {
		if !cur.has(t) {
			missing = append(missing, t)
		}
	}

	if len(added) == 0 && len(missing) == 0 {
		return Inconsistency{}
	}

	return Inconsistency{
		Inconsistent: true,
		Diffs: &SkillDiffs{
			Added:   capTokens(added, MaxDiffTokens),
			Missing: capTokens(missing, MaxDiffTokens),
		},
	}
}

func capTokens(tokens []string, limit int) []string {
	if len(tokens) > limit {
		return tokens[:limit]
	}
	return tokens
}
