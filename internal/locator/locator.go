// Package locator holds the page-object catalog of the portal: every element a
// scenario touches is declared here once as a strategy and an expression.
package locator

import (
	"fmt"
	"strings"
)

// Strategy is how an expression is resolved against the DOM.
type Strategy string

const (
	ByID        Strategy = "id"
	ByLinkText  Strategy = "link text"
	ByXPath     Strategy = "xpath"
	ByClassName Strategy = "class name"
)

// Entry is an immutable strategy and expression pair.
type Entry struct {
	Strategy   Strategy
	Expression string
}

func id(v string) Entry        { return Entry{Strategy: ByID, Expression: v} }
func linkText(v string) Entry  { return Entry{Strategy: ByLinkText, Expression: v} }
func xpath(v string) Entry     { return Entry{Strategy: ByXPath, Expression: v} }
func className(v string) Entry { return Entry{Strategy: ByClassName, Expression: v} }

// String renders the entry for error messages and logs.
func (e Entry) String() string {
	return fmt.Sprintf("%s=%s", e.Strategy, e.Expression)
}

// XPath translates the entry into an equivalent XPath 1.0 expression so
// every browser backend can resolve all strategies the same way.
func (e Entry) XPath() string {
	switch e.Strategy {
	case ByID:
		return fmt.Sprintf("//*[@id=%s]", quote(e.Expression))
	case ByLinkText:
		return fmt.Sprintf("//a[normalize-space(.)=%s]", quote(e.Expression))
	case ByClassName:
		return fmt.Sprintf("//*[contains(concat(' ', normalize-space(@class), ' '), %s)]", quote(" "+e.Expression+" "))
	default:
		return e.Expression
	}
}

// quote produces an XPath string literal, falling back to concat() when the
// value holds both quote kinds.
func quote(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+p+"'")
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
