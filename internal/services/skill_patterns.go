package services

import (
	"regexp"
	"strings"
)

// SkillCategory is one row of the technology table. Terms are literal,
// case-insensitive; a space inside a term matches any run of whitespace.
type SkillCategory struct {
	Name  string
	Terms []string
}

// SkillRules is the complete data table consumed by the skill extractor.
type SkillRules struct {
	// SectionHeaders are tried in order; the first that matches anywhere wins.
	SectionHeaders []*regexp.Regexp
	// NextSection ends a located section.
	NextSection *regexp.Regexp

	// WindowKeywords trigger line windows when no header is found. A hit on
	// line i contributes lines [i-WindowBefore, i+WindowAfter).
	WindowKeywords []string
	WindowBefore   int
	WindowAfter    int

	Categories []SkillCategory

	// Keywords are matched as whole words against the tokenized section.
	Keywords []string

	// FallbackKeywords are matched as substrings of the whole text, only when
	// nothing else matched.
	FallbackKeywords []string
}

var defaultSectionHeaders = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:^|\n)\s*(?:tech\s+)?skills?\s*:?\s*\n`),
	regexp.MustCompile(`(?i)(?:^|\n)\s*technical\s+skills?\s*:?\s*\n`),
	regexp.MustCompile(`(?i)(?:^|\n)\s*technologies?\s*:?\s*\n`),
	regexp.MustCompile(`(?i)(?:^|\n)\s*programming\s+languages?\s*:?\s*\n`),
	regexp.MustCompile(`(?i)(?:^|\n)\s*tools?\s+and\s+technologies?\s*:?\s*\n`),
	regexp.MustCompile(`(?i)(?:^|\n)\s*competencies?\s*:?\s*\n`),
	regexp.MustCompile(`(?i)(?:^|\n)\s*expertise\s*:?\s*\n`),
}

// An all-caps header of at least four characters followed by a colon.
var defaultNextSection = regexp.MustCompile(`\n\s*[A-Z][A-Z\s]{3,}:\s*\n`)

var defaultCategories = []SkillCategory{
	{Name: "languages", Terms: []string{
		"java", "python", "javascript", "typescript", "go", "rust", "c++", "c#", "php", "ruby",
		"swift", "kotlin", "scala", "r", "matlab", "perl", "bash", "shell", "powershell",
	}},
	{Name: "frameworks", Terms: []string{
		"react", "vue", "angular", "svelte", "next.js", "nuxt", "express", "nest", "fastapi",
		"django", "flask", "spring", "hibernate", "laravel", "symfony", "rails", "asp.net",
	}},
	{Name: "databases", Terms: []string{
		"postgresql", "mysql", "mongodb", "redis", "cassandra", "elasticsearch", "dynamodb",
		"oracle", "sql server", "sqlite", "neo4j",
	}},
	{Name: "cloud_devops", Terms: []string{
		"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "gitlab", "github", "ci/cd",
		"terraform", "ansible", "chef", "puppet",
	}},
	{Name: "testing", Terms: []string{
		"selenium", "playwright", "cypress", "jest", "mocha", "junit", "testng", "pytest",
		"rspec", "allure", "postman", "soapui",
	}},
	{Name: "build_tools", Terms: []string{
		"maven", "gradle", "npm", "yarn", "webpack", "vite", "gulp", "grunt",
	}},
	{Name: "vcs", Terms: []string{
		"git", "svn", "mercurial", "perforce",
	}},
	{Name: "protocols", Terms: []string{
		"rest", "graphql", "grpc", "microservices", "api", "http", "https", "tcp", "udp", "websocket",
	}},
	{Name: "os", Terms: []string{
		"linux", "unix", "windows", "macos", "ios", "android",
	}},
	{Name: "frontend", Terms: []string{
		"html", "css", "sass", "less", "bootstrap", "tailwind", "material-ui",
	}},
}

var defaultWindowKeywords = []string{
	"java", "python", "javascript", "typescript", "react", "node", "sql", "postgresql", "mongodb",
	"docker", "kubernetes", "aws", "azure", "git", "selenium", "playwright", "jest", "maven", "gradle",
}

var defaultKeywords = []string{
	"java", "python", "javascript", "typescript", "react", "node", "sql", "git",
	"docker", "kubernetes", "aws", "azure", "selenium", "playwright", "jest",
	"maven", "gradle", "npm", "yarn", "postgresql", "mongodb", "redis",
	"express", "django", "flask", "spring", "laravel", "rails", "vue", "angular",
}

var defaultFallbackKeywords = []string{
	"java", "python", "javascript", "typescript", "react", "vue", "angular", "node",
	"express", "django", "flask", "spring", "laravel", "rails", "kotlin", "swift",
	"postgresql", "mysql", "mongodb", "redis", "sql", "nosql",
	"docker", "kubernetes", "aws", "azure", "gcp", "jenkins", "gitlab", "github",
	"selenium", "playwright", "cypress", "jest", "mocha", "junit", "testng", "pytest",
	"maven", "gradle", "npm", "yarn", "webpack", "vite",
	"git", "html", "css", "sass", "less", "bootstrap", "tailwind",
	"rest", "graphql", "grpc", "api", "http", "https",
	"linux", "unix", "windows", "macos", "ios", "android",
	"allure", "postman", "soapui", "charles", "testflight",
}

// DefaultSkillRules returns the built-in technology tables.
func DefaultSkillRules() SkillRules {
	return SkillRules{
		SectionHeaders:   defaultSectionHeaders,
		NextSection:      defaultNextSection,
		WindowKeywords:   defaultWindowKeywords,
		WindowBefore:     2,
		WindowAfter:      5,
		Categories:       defaultCategories,
		Keywords:         defaultKeywords,
		FallbackKeywords: defaultFallbackKeywords,
	}
}

// compileCategory builds one case-insensitive alternation for the terms.
// Terms ending in a non-word character ("c++", "c#") cannot be closed with
// \b, so they are closed with \B instead.
func compileCategory(terms []string) *regexp.Regexp {
	alts := make([]string, 0, len(terms))
	for _, term := range terms {
		parts := strings.Fields(term)
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		alt := strings.Join(parts, `\s+`)
		if isWordByte(term[len(term)-1]) {
			alt += `\b`
		} else {
			alt += `\B`
		}
		alts = append(alts, alt)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)`)
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
