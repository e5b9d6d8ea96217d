package caption

import (
	"regexp"
	"strings"
)

// GlossaryMode selects how tweak rules are matched.
type GlossaryMode int

const (
	// GlossaryExact matches whole tokens case-insensitively.
	GlossaryExact GlossaryMode = iota
	// GlossaryRegex treats patterns as regular expressions applied globally
	// to assembled caption text, in rule order.
	GlossaryRegex
)

// tweakRule is one compiled regex-mode substitution.
type tweakRule struct {
	re          *regexp.Regexp
	replacement string
}

// Glossary is a find/replace table of user-supplied corrections for
// recognizer mistakes, built from "pattern=replacement" lines.
type Glossary struct {
	mode  GlossaryMode
	exact map[string]string
	rules []tweakRule
}

// BuildGlossary parses tweak lines into a Glossary. Lines without exactly
// one "=" are discarded; the source is user-editable free text and stray
// lines are expected. In regex mode, patterns that fail to compile are
// discarded the same way.
func BuildGlossary(lines []string, mode GlossaryMode) *Glossary {
	g := &Glossary{
		mode:  mode,
		exact: make(map[string]string),
	}

	for _, line := range lines {
		parts := strings.Split(line, "=")
		if len(parts) != 2 {
			continue
		}
		pattern := strings.TrimSpace(parts[0])
		replacement := strings.TrimSpace(parts[1])
		if pattern == "" {
			continue
		}

		switch mode {
		case GlossaryExact:
			g.exact[strings.ToLower(pattern)] = replacement
		case GlossaryRegex:
			re, err := regexp.Compile(pattern)
			if err != nil {
				continue
			}
			g.rules = append(g.rules, tweakRule{re: re, replacement: replacement})
		}
	}

	return g
}

// Mode reports the matching mode the glossary was built with.
func (g *Glossary) Mode() GlossaryMode { return g.mode }

// Len reports the number of usable rules.
func (g *Glossary) Len() int {
	if g.mode == GlossaryRegex {
		return len(g.rules)
	}
	return len(g.exact)
}

// Resolve returns the display text for a raw token: the replacement when the
// lowercased token matches a rule, the token unchanged otherwise. Only
// meaningful in exact mode.
func (g *Glossary) Resolve(raw string) string {
	if repl, ok := g.exact[strings.ToLower(raw)]; ok {
		return repl
	}
	return raw
}

// ApplyToText runs all regex rules over assembled caption text in original
// rule order; later rules see the output of earlier ones.
func (g *Glossary) ApplyToText(text string) string {
	for _, r := range g.rules {
		text = r.re.ReplaceAllString(text, r.replacement)
	}
	return text
}
