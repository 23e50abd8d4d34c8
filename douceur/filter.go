// Package douceur implements htmlcut.StyleFilter using the douceur CSS parser.
package douceur

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/fwojciec/htmlcut"
)

// Ensure StyleFilter implements htmlcut.StyleFilter at compile time.
var _ htmlcut.StyleFilter = (*StyleFilter)(nil)

// conditionalAtRules hold nested rule blocks that are filtered recursively.
// Every other at-rule (@font-face, @keyframes, @import, ...) is kept as is.
var conditionalAtRules = map[string]bool{
	"@media":    true,
	"@supports": true,
	"@document": true,
}

// StyleFilter drops CSS rules that cannot apply to the extracted subtree.
//
// A qualified rule is kept when one of its selectors references a class or
// id token of the subtree, or references no class or id at all (element,
// :root and attribute selectors may still apply). Selectors such as
// ".theme-dark .x" are kept as soon as one token matches, because ancestors
// outside the subtree are not known here.
type StyleFilter struct{}

// NewStyleFilter creates a new StyleFilter.
func NewStyleFilter() *StyleFilter {
	return &StyleFilter{}
}

// Filter returns text reduced to the rules relevant to tokens.
func (f *StyleFilter) Filter(text string, tokens map[string]bool) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	sheet, err := parser.Parse(text)
	if err != nil {
		return "", htmlcut.Errorf(htmlcut.EPARSE, "failed to parse CSS: %v", err)
	}

	out := &css.Stylesheet{Rules: filterRules(sheet.Rules, tokens)}
	return out.String(), nil
}

func filterRules(rules []*css.Rule, tokens map[string]bool) []*css.Rule {
	var kept []*css.Rule
	for _, r := range rules {
		switch {
		case r.Kind == css.QualifiedRule:
			if relevant(r.Selectors, tokens) {
				kept = append(kept, r)
			}
		case conditionalAtRules[strings.ToLower(r.Name)]:
			r.Rules = filterRules(r.Rules, tokens)
			if len(r.Rules) > 0 {
				kept = append(kept, r)
			}
		default:
			kept = append(kept, r)
		}
	}
	return kept
}

func relevant(selectors []string, tokens map[string]bool) bool {
	for _, sel := range selectors {
		refs := selectorTokens(sel)
		if len(refs) == 0 {
			return true
		}
		for _, ref := range refs {
			if tokens[ref] {
				return true
			}
		}
	}
	return false
}

// selectorTokens returns the class (".x") and id ("#y") references of a
// selector, skipping attribute brackets and quoted strings. Tokens inside
// :not(...) are skipped too: they name what the element must lack. CSS
// escapes are resolved to the escaped character.
func selectorTokens(sel string) []string {
	var (
		refs    []string
		bracket int
		quote   rune
	)
	runes := []rune(sel)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			if r == '\\' {
				i++
			} else if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '[':
			bracket++
		case r == ']':
			if bracket > 0 {
				bracket--
			}
		case bracket > 0:
		case r == ':' && hasPrefixFold(runes[i+1:], "not("):
			i = closingParen(runes, i+len(":not("))
		case r == '.' || r == '#':
			var b strings.Builder
			j := i + 1
			for j < len(runes) {
				c := runes[j]
				if c == '\\' && j+1 < len(runes) {
					b.WriteRune(runes[j+1])
					j += 2
					continue
				}
				if !isIdentRune(c) {
					break
				}
				b.WriteRune(c)
				j++
			}
			if b.Len() > 0 {
				refs = append(refs, string(r)+b.String())
			}
			i = j - 1
		}
	}
	return refs
}

// closingParen returns the index of the parenthesis closing the group whose
// content starts at start, or the last index when the group is unterminated.
func closingParen(runes []rune, start int) int {
	depth := 1
	var quote rune
	for i := start; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			if r == '\\' {
				i++
			} else if r == quote {
				quote = 0
			}
		case r == '\\':
			i++
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(runes) - 1
}

func hasPrefixFold(runes []rune, prefix string) bool {
	if len(runes) < len(prefix) {
		return false
	}
	return strings.EqualFold(string(runes[:len(prefix)]), prefix)
}

func isIdentRune(c rune) bool {
	return c == '-' || c == '_' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
