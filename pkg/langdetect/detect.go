// Package langdetect names the language of fenced code blocks.
//
// Fences that carry an info string are normalized through the go-enry alias
// table; fences without one are guessed from their content.
package langdetect

import (
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when no language can be named with confidence.
const Unknown = ""

// classifierCandidates bounds the enry classifier to languages commonly
// pasted into notes.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "Kotlin", "SQL",
	"JSON", "YAML", "HTML", "CSS", "Dockerfile",
}

// rule recognizes a language from distinctive content.
type rule struct {
	lang  string
	match func(code string) bool
}

var (
	reGoPackage = regexp.MustCompile(`(?m)^package [a-z_][a-z0-9_]*\s*$`)
	rePythonDef = regexp.MustCompile(`(?m)^\s*(def|class) \w+.*:\s*$`)
	reKotlinFun = regexp.MustCompile(`(?m)^\s*(fun|val|var) \w+`)
	reSQL       = regexp.MustCompile(`(?i)^\s*(select|insert|update|delete|create)\s`)
	reYAMLKey   = regexp.MustCompile(`^[\w.-]+:(\s|$)`)
)

var rules = []rule{
	{"go", reGoPackage.MatchString},
	{"python", func(code string) bool {
		return rePythonDef.MatchString(code) || strings.Contains(code, "__name__")
	}},
	{"kotlin", func(code string) bool {
		return reKotlinFun.MatchString(code) && !strings.Contains(code, ";")
	}},
	{"html", func(code string) bool {
		lower := strings.ToLower(code)
		return strings.Contains(lower, "<!doctype html") || strings.Contains(lower, "<html")
	}},
	{"json", func(code string) bool {
		trimmed := strings.TrimSpace(code)
		return (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) &&
			strings.Contains(trimmed, `"`) && !strings.Contains(trimmed, ";")
	}},
	{"dockerfile", func(code string) bool {
		return strings.HasPrefix(strings.TrimSpace(code), "FROM ")
	}},
	{"sql", reSQL.MatchString},
	{"rust", func(code string) bool {
		return strings.Contains(code, "fn main()") || strings.Contains(code, "println!")
	}},
	{"javascript", func(code string) bool {
		return strings.Contains(code, "console.log") || strings.Contains(code, "=>")
	}},
	{"yaml", isYAML},
}

// Detect guesses the language of fence content. It returns Unknown when
// nothing matches.
func Detect(code string) string {
	if strings.TrimSpace(code) == "" {
		return Unknown
	}

	if lang, safe := enry.GetLanguageByShebang([]byte(code)); safe {
		return fenceTag(lang)
	}

	for _, r := range rules {
		if r.match(code) {
			return r.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier([]byte(code), classifierCandidates); safe && lang != "" {
		return fenceTag(lang)
	}

	return Unknown
}

// Normalize maps a fence info word such as "golang" or "sh" to the tag used
// for display. Words enry does not know are returned lower-cased.
func Normalize(info string) string {
	word := strings.ToLower(strings.TrimSpace(info))
	if word == "" {
		return Unknown
	}

	if lang, ok := enry.GetLanguageByAlias(word); ok {
		return fenceTag(lang)
	}
	return word
}

// isYAML counts "key: value" and "- item" lines.
func isYAML(code string) bool {
	keys := 0
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "", strings.HasPrefix(line, "#"):
		case strings.HasPrefix(line, "- "), reYAMLKey.MatchString(line):
			keys++
		case strings.ContainsAny(line, "(){};"):
			return false
		}
	}
	return keys >= 2
}

func fenceTag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
