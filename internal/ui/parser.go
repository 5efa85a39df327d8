package ui

import (
	"errors"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseCSS parses a small CSS subset: selectors built from an optional element type, .classes
// and one #id (e.g. "button", ".panel", "button.toggle.on", "#catalog"), comma-separated selector
// lists, and blocks of "key: value;". Rules with combinators or pseudo-classes are skipped, as is
// everything inside @-rules. Property names are lowercased.
// Malformed declarations are skipped and reported in the returned error; the stylesheet always
// holds every rule that did parse.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	p := css.NewParser(parse.NewInputString(content), false)
	var (
		selectors []Selector
		props     map[string]string
		atDepth   int
		order     int
		errs      []error
	)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if p.HasParseError() {
				errs = append(errs, p.Err())
				continue
			}
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				errs = append(errs, err)
			}
			return sheet, errors.Join(errs...)
		case css.BeginAtRuleGrammar:
			atDepth++
		case css.EndAtRuleGrammar:
			atDepth--
		case css.BeginRulesetGrammar:
			selectors, props = nil, make(map[string]string)
			if atDepth > 0 {
				continue
			}
			for _, raw := range strings.Split(joinTokens(p.Values()), ",") {
				if sel, ok := ParseSelector(raw); ok {
					selectors = append(selectors, sel)
				}
			}
		case css.DeclarationGrammar:
			if props != nil {
				props[string(data)] = strings.TrimSpace(joinTokens(p.Values()))
			}
		case css.EndRulesetGrammar:
			for _, sel := range selectors {
				sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: props, Order: order})
				order++
			}
			selectors, props = nil, nil
		}
	}
}

func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return b.String()
}

// ParseSelector parses one compound selector. It rejects empty input and anything with combinators.
func ParseSelector(raw string) (Selector, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, " >+~:[*") {
		return Selector{}, false
	}
	var sel Selector
	i := 0
	for i < len(raw) && raw[i] != '.' && raw[i] != '#' {
		i++
	}
	sel.Type = raw[:i]
	for i < len(raw) {
		kind := raw[i]
		j := i + 1
		for j < len(raw) && raw[j] != '.' && raw[j] != '#' {
			j++
		}
		name := raw[i+1 : j]
		if name == "" {
			return Selector{}, false
		}
		if kind == '#' {
			if sel.ID != "" {
				return Selector{}, false
			}
			sel.ID = name
		} else {
			sel.Classes = append(sel.Classes, name)
		}
		i = j
	}
	return sel, true
}
