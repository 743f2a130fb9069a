package pinger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// nonStandardPseudos are cascadia extensions that goquery understands but
// the browser's querySelector rejects.
var nonStandardPseudos = map[string]struct{}{
	"contains":    {},
	"containsown": {},
	"matches":     {},
	"matchesown":  {},
	"haschild":    {},
	"input":       {},
}

// pseudoClasses returns the lowercased pseudo-class names used in sel,
// ignoring colons inside quoted strings and attribute brackets.
func pseudoClasses(sel string) []string {
	var names []string
	var quote byte
	depth := 0
	for i := 0; i < len(sel); i++ {
		c := sel[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			depth++
		case c == ']' && depth > 0:
			depth--
		case c == ':' && depth == 0:
			j := i + 1
			for j < len(sel) && (sel[j] == '-' || sel[j] == '_' ||
				sel[j] >= 'a' && sel[j] <= 'z' || sel[j] >= 'A' && sel[j] <= 'Z' || sel[j] >= '0' && sel[j] <= '9') {
				j++
			}
			if j > i+1 {
				names = append(names, strings.ToLower(sel[i+1:j]))
			}
			i = j - 1
		}
	}
	return names
}

// ValidateSelectors rejects an empty list and any selector that does not
// parse as CSS. Selectors are matched by both goquery and the browser, so
// only standard CSS is accepted: cascadia-only pseudo-classes such as
// :contains() are rejected.
func ValidateSelectors(selectors []string) error {
	if len(selectors) == 0 {
		return errors.New("no wake selectors configured")
	}
	for i, sel := range selectors {
		if strings.TrimSpace(sel) == "" {
			return fmt.Errorf("wake selector %d is empty", i)
		}
		if _, err := cascadia.ParseGroup(sel); err != nil {
			return fmt.Errorf("wake selector %q: %w", sel, err)
		}
		for _, name := range pseudoClasses(sel) {
			if _, bad := nonStandardPseudos[name]; bad {
				return fmt.Errorf("wake selector %q: :%s is not supported by browsers", sel, name)
			}
		}
	}
	return nil
}

// FindWakeControl looks for the first element in document order matching
// any selector and returns the selector that matched it. Clicking that
// selector in the browser hits the same element, since no earlier element
// matches it.
func FindWakeControl(html string, selectors []string) (string, bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false, fmt.Errorf("parse page: %w", err)
	}

	first := doc.Find(strings.Join(selectors, ", ")).First()
	if first.Length() == 0 {
		return "", false, nil
	}
	for _, sel := range selectors {
		if first.Is(sel) {
			return sel, true, nil
		}
	}
	return "", false, nil
}
