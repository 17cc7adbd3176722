package query

import (
	"regexp"
	"strings"
)

var (
	orSplit    = regexp.MustCompile(`\s*\|{1,2}\s*`)
	andSplit   = regexp.MustCompile(`\s*&{1,2}\s*`)
	tokenSplit = regexp.MustCompile(`[ ,+]+`)
)

// StationGroup is one OR alternative: every token must be present. A group
// without tokens matches when Text occurs in the haystack.
type StationGroup struct {
	Tokens []string
	Text   string
}

// StationExpr is a parsed station value: OR of groups, each an AND of tokens.
type StationExpr struct {
	Groups []StationGroup
	always bool
}

// ParseStationExpr parses the value of a stations clause.
//
//	"Hb & Ke"      both Hb and Ke
//	"Hb | Ke"      either
//	"Hb Ke | Wz"   (Hb and Ke) or Wz
//	"Hb Ke"        both, with no operators tokens are ANDed
func ParseStationExpr(text string) StationExpr {
	text = strings.TrimSpace(text)
	if text == "" {
		return StationExpr{always: true}
	}
	if !strings.ContainsAny(text, "|&") {
		return StationExpr{Groups: []StationGroup{{Tokens: splitTokens(tokenSplit, text)}}}
	}

	var expr StationExpr
	for _, part := range orSplit.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var tokens []string
		for _, chunk := range andSplit.Split(part, -1) {
			tokens = append(tokens, splitTokens(tokenSplit, chunk)...)
		}
		expr.Groups = append(expr.Groups, StationGroup{Tokens: tokens, Text: part})
	}
	return expr
}

// Match reports whether hay satisfies the expression. Matching is case-sensitive.
func (e StationExpr) Match(hay string) bool {
	if e.always {
		return true
	}
	for _, g := range e.Groups {
		if g.match(hay) {
			return true
		}
	}
	return false
}

// Tokens returns every token of every group in order of appearance.
func (e StationExpr) Tokens() []string {
	var out []string
	for _, g := range e.Groups {
		out = append(out, g.Tokens...)
	}
	return out
}

func (g StationGroup) match(hay string) bool {
	if len(g.Tokens) == 0 {
		return strings.Contains(hay, g.Text)
	}
	for _, tok := range g.Tokens {
		if !strings.Contains(hay, tok) {
			return false
		}
	}
	return true
}

func splitTokens(re *regexp.Regexp, s string) []string {
	var out []string
	for _, tok := range re.Split(strings.TrimSpace(s), -1) {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
