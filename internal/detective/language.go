// In file: internal/detective/language.go

// Package detective is the deterministic "Code Detective" analyzer used when the
// LLM is unavailable. Every function here is pure: identical input always
// produces an identical result, and no input can make it fail.
package detective

import (
	"regexp"
	"strings"
)

// Language is the tag reported in language_detected when the caller did not declare one.
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageCPP        Language = "cpp"
	LanguageCSharp     Language = "csharp"
	LanguageUnknown    Language = "unknown"
)

// languageRule maps a pattern to the language it identifies.
type languageRule struct {
	pattern  *regexp.Regexp
	language Language
}

// languageRules is evaluated top to bottom and the first match wins.
// Python rules are line-anchored and accept Unicode identifiers; the rest
// match anywhere in the text.
var languageRules = []languageRule{
	{regexp.MustCompile(`(?m)^[\s\v]*def[\s\v]+[\p{L}\p{N}_]+\(.*\)[\s\v]*:`), LanguagePython},
	{regexp.MustCompile(`(?m)^[\s\v]*(import|from)[\s\v]+[\p{L}\p{N}_]`), LanguagePython},
	{regexp.MustCompile(`(?m)^\s*print\s*\(`), LanguagePython},
	{regexp.MustCompile(`\bfunction\b|=>|\bconsole\.log\b|\bconst\b|\blet\b`), LanguageJavaScript},
	{regexp.MustCompile(`#include\s*<|\bstd::\b`), LanguageCPP},
	{regexp.MustCompile(`\busing\s+System\b|\bnamespace\b`), LanguageCSharp},
}

// DetectLanguage infers the language of a snippet, returning LanguageUnknown
// when no rule matches.
func DetectLanguage(code string) Language {
	c := strings.TrimSpace(code)
	for _, rule := range languageRules {
		if rule.pattern.MatchString(c) {
			return rule.language
		}
	}
	return LanguageUnknown
}

// ResolveLanguage returns the declared language trimmed and lowercased, or the
// detected one when nothing usable was declared.
func ResolveLanguage(code, declared string) string {
	if lang := strings.ToLower(strings.TrimSpace(declared)); lang != "" {
		return lang
	}
	return string(DetectLanguage(code))
}
