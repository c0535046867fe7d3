// In file: internal/detective/signals.go
package detective

import (
	"regexp"
	"strings"
)

// SignalKind identifies one lexical cue the extractor looks for.
type SignalKind int

const (
	SignalLoop SignalKind = iota
	SignalReturn
	SignalBranch
	SignalTodo
	SignalKeyAccess
)

// MaxBadges caps the badges list in a result.
const MaxBadges = 5

// LowSignalClue is the only clue reported when no signal fires.
const LowSignalClue = "Low signal code → needs context to be confident"

var (
	loopRegex   = regexp.MustCompile(`\bfor\b|\bwhile\b`)
	returnRegex = regexp.MustCompile(`\breturn\b`)
	branchRegex = regexp.MustCompile(`\bif\b`)
)

// signalRule describes how one cue is detected and what it contributes.
// An empty badge means the cue produces a clue only.
type signalRule struct {
	kind    SignalKind
	matches func(code string) bool
	clue    string
	badge   string
}

// signalRules is in clue order. The first three clues fill the numbered signal slots.
var signalRules = []signalRule{
	{SignalLoop, loopRegex.MatchString, "Loop detected → iterating over data", "Looping Logic"},
	{SignalReturn, returnRegex.MatchString, "Return detected → computing a result", ""},
	{SignalBranch, branchRegex.MatchString, "Branching detected → conditional logic", "Branching"},
	{SignalTodo, hasTodo, "TODO/FIXME found → unfinished logic", "Incomplete"},
	{SignalKeyAccess, hasKeyAccess, "Direct key access detected → possible missing key crash", "Risk: Missing Key"},
}

// badgeOrder is the order badges are emitted in. Key access leads so the
// riskiest badge is always shown first.
var badgeOrder = []SignalKind{SignalKeyAccess, SignalLoop, SignalBranch, SignalTodo}

// Signals is the outcome of scanning a snippet once.
type Signals struct {
	Clues  []string
	Badges []string
	found  map[SignalKind]bool
}

// Has reports whether the given cue was detected.
func (s Signals) Has(kind SignalKind) bool {
	return s.found[kind]
}

// Scan runs every signal rule against the full text.
func Scan(code string) Signals {
	s := Signals{found: make(map[SignalKind]bool, len(signalRules))}
	badges := make(map[SignalKind]string, len(signalRules))

	for _, rule := range signalRules {
		if !rule.matches(code) {
			continue
		}
		s.found[rule.kind] = true
		s.Clues = append(s.Clues, rule.clue)
		if rule.badge != "" {
			badges[rule.kind] = rule.badge
		}
	}
	if len(s.Clues) == 0 {
		s.Clues = []string{LowSignalClue}
	}

	s.Badges = []string{}
	for _, kind := range badgeOrder {
		if badge, ok := badges[kind]; ok && len(s.Badges) < MaxBadges {
			s.Badges = append(s.Badges, badge)
		}
	}
	return s
}

// ExtractClues returns the human-readable clues for a snippet, in priority order.
func ExtractClues(code string) []string {
	return Scan(code).Clues
}

// ExtractBadges returns at most MaxBadges category labels for a snippet.
func ExtractBadges(code string) []string {
	return Scan(code).Badges
}

func hasTodo(code string) bool {
	return strings.Contains(code, "TODO") || strings.Contains(code, "FIXME")
}

// hasKeyAccess matches indexing with a quoted string key, e.g. item["x"] or item['x'].
func hasKeyAccess(code string) bool {
	return strings.Contains(code, `["`) || strings.Contains(code, `['`)
}
