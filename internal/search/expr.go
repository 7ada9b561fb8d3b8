// Package search finds list items by a small query language: words match
// fuzzily, "quoted text" matches exactly, status:<id>, is:header,
// is:hidden, is:visible and has:detail filter, -term negates and | separates
// alternatives.
package search

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pstuifzand/tui-smartlist/internal/model"
)

// FilterExpr represents a filter expression that can match items
type FilterExpr interface {
	Matches(item *model.ListItem) bool
	String() string // For debug output
}

func searchable(item *model.ListItem) string {
	if item.Description == "" {
		return item.Text
	}
	return item.Text + " " + item.Description
}

// TextExpr matches items whose text or description contains the term (case-insensitive)
type TextExpr struct {
	term string
}

func NewTextExpr(term string) *TextExpr {
	return &TextExpr{term: strings.ToLower(term)}
}

func (e *TextExpr) Matches(item *model.ListItem) bool {
	return strings.Contains(strings.ToLower(searchable(item)), e.term)
}

func (e *TextExpr) String() string {
	return fmt.Sprintf("text(%q)", e.term)
}

// FuzzyExpr matches items whose text or description fuzzy-matches the term (case-insensitive)
type FuzzyExpr struct {
	term string
}

func NewFuzzyExpr(term string) *FuzzyExpr {
	return &FuzzyExpr{term: term}
}

func (e *FuzzyExpr) Matches(item *model.ListItem) bool {
	return fuzzy.MatchFold(e.term, searchable(item))
}

func (e *FuzzyExpr) String() string {
	return fmt.Sprintf("fuzzy(%q)", e.term)
}

// StatusExpr matches items whose primary icon is one of the given ids.
// "none" matches items without a primary icon.
type StatusExpr struct {
	statuses []string
}

func NewStatusExpr(statuses ...string) *StatusExpr {
	return &StatusExpr{statuses: statuses}
}

func (e *StatusExpr) Matches(item *model.ListItem) bool {
	status := item.Status()
	for _, s := range e.statuses {
		if s == status || (s == "none" && status == "") {
			return true
		}
	}
	return false
}

func (e *StatusExpr) String() string {
	return fmt.Sprintf("status(%s)", strings.Join(e.statuses, ","))
}

// KindExpr matches on item flags
type KindExpr struct {
	kind string
}

func (e *KindExpr) Matches(item *model.ListItem) bool {
	switch e.kind {
	case "header":
		return item.IsHeader
	case "item":
		return !item.IsHeader
	case "hidden":
		return !item.IsVisible()
	case "visible":
		return item.IsVisible()
	case "detail":
		return item.HasDetail()
	case "children":
		return item.HasChildren()
	}
	return false
}

func (e *KindExpr) String() string {
	return fmt.Sprintf("is(%s)", e.kind)
}

// NotExpr negates an expression
type NotExpr struct {
	expr FilterExpr
}

func (e *NotExpr) Matches(item *model.ListItem) bool {
	return !e.expr.Matches(item)
}

func (e *NotExpr) String() string {
	return fmt.Sprintf("not(%s)", e.expr)
}

// AndExpr matches when every part matches
type AndExpr struct {
	exprs []FilterExpr
}

func (e *AndExpr) Matches(item *model.ListItem) bool {
	for _, expr := range e.exprs {
		if !expr.Matches(item) {
			return false
		}
	}
	return true
}

func (e *AndExpr) String() string {
	return joinExprs("and", e.exprs)
}

// OrExpr matches when any part matches
type OrExpr struct {
	exprs []FilterExpr
}

func (e *OrExpr) Matches(item *model.ListItem) bool {
	for _, expr := range e.exprs {
		if expr.Matches(item) {
			return true
		}
	}
	return false
}

func (e *OrExpr) String() string {
	return joinExprs("or", e.exprs)
}

// allExpr matches everything, for the empty query
type allExpr struct{}

func (allExpr) Matches(*model.ListItem) bool { return true }
func (allExpr) String() string               { return "all" }

func joinExprs(op string, exprs []FilterExpr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return fmt.Sprintf("%s(%s)", op, strings.Join(parts, ", "))
}
