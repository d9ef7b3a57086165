package services

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// SkillExtractor turns raw resume text into a deduplicated set of lowercase
// skill tokens. The returned slice is in first-seen order.
type SkillExtractor interface {
	ExtractSkills(text string) []string
}

type skillExtractor struct {
	rules      SkillRules
	categories []*regexp.Regexp
	keywords   map[string]bool
	log        *zap.Logger
}

var (
	emailPattern    = regexp.MustCompile(`[\w.+-]+@\w+\.[\w.-]+`)
	nonAlnumPattern = regexp.MustCompile(`[^a-z0-9\s]`)
)

func NewSkillExtractor(rules SkillRules, log *zap.Logger) SkillExtractor {
	categories := make([]*regexp.Regexp, 0, len(rules.Categories))
	for _, c := range rules.Categories {
		if len(c.Terms) == 0 {
			continue
		}
		categories = append(categories, compileCategory(c.Terms))
	}

	keywords := make(map[string]bool, len(rules.Keywords))
	for _, k := range rules.Keywords {
		keywords[k] = true
	}

	return &skillExtractor{
		rules:      rules,
		categories: categories,
		keywords:   keywords,
		log:        log,
	}
}

// ExtractSkills implements SkillExtractor.
func (s *skillExtractor) ExtractSkills(text string) []string {
	found := newTokenSet()
	if strings.TrimSpace(text) == "" {
		return found.list()
	}

	section, located := s.findSkillsSection(text)
	s.log.Debug("skills section", zap.Bool("header", located), zap.Int("section_chars", len(section)), zap.Int("text_chars", len(text)))

	for _, source := range []string{section, text} {
		for _, re := range s.categories {
			for _, m := range re.FindAllString(source, -1) {
				found.add(normalizeMatch(m))
			}
		}
	}

	for _, word := range tokenizeWords(section) {
		if s.keywords[word] {
			found.add(word)
		}
	}

	if found.size() == 0 {
		lower := strings.ToLower(text)
		for _, term := range s.rules.FallbackKeywords {
			if strings.Contains(lower, term) {
				found.add(term)
			}
		}
		s.log.Debug("fallback skill scan", zap.Int("skills", found.size()))
	}

	return found.list()
}

// findSkillsSection returns the body of the first matching skills header.
// Without a header it returns the line windows around technology keywords,
// and the whole text when there are none. located reports a header match.
func (s *skillExtractor) findSkillsSection(text string) (section string, located bool) {
	for _, header := range s.rules.SectionHeaders {
		loc := header.FindStringIndex(text)
		if loc == nil {
			continue
		}
		start := loc[1]
		end := len(text)
		if s.rules.NextSection != nil {
			if next := s.rules.NextSection.FindStringIndex(text[start:]); next != nil {
				end = start + next[0]
			}
		}
		return text[start:end], true
	}

	lines := strings.Split(text, "\n")
	var window []string
	for i, line := range lines {
		lower := strings.ToLower(line)
		if !containsAny(lower, s.rules.WindowKeywords) {
			continue
		}
		from := max(0, i-s.rules.WindowBefore)
		to := min(len(lines), i+s.rules.WindowAfter)
		window = append(window, lines[from:to]...)
	}
	if len(window) > 0 {
		return strings.Join(window, "\n"), false
	}
	return text, false
}

// tokenizeWords lowercases text, strips emails and punctuation, and keeps
// words longer than two characters.
func tokenizeWords(text string) []string {
	cleaned := emailPattern.ReplaceAllString(text, " ")
	cleaned = nonAlnumPattern.ReplaceAllString(strings.ToLower(cleaned), " ")

	var words []string
	for _, w := range strings.Fields(cleaned) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}

func normalizeMatch(m string) string {
	return strings.Join(strings.Fields(strings.ToLower(m)), " ")
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// tokenSet is an insertion-ordered set of strings.
type tokenSet struct {
	seen  map[string]bool
	order []string
}

func newTokenSet() *tokenSet {
	return &tokenSet{seen: make(map[string]bool)}
}

func (t *tokenSet) add(token string) {
	if token == "" || t.seen[token] {
		return
	}
	t.seen[token] = true
	t.order = append(t.order, token)
}

func (t *tokenSet) has(token string) bool {
	return t.seen[token]
}

func (t *tokenSet) size() int {
	return len(t.order)
}

func (t *tokenSet) list() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}
