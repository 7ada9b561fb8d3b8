package search

import (
	"fmt"
	"strings"

	"github.com/pstuifzand/tui-smartlist/internal/model"
)

// ParseQuery turns a query string into an expression
func ParseQuery(query string) (FilterExpr, error) {
	tokens, err := tokenize(query)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return allExpr{}, nil
	}

	var alternatives []FilterExpr
	var current []FilterExpr
	flush := func() error {
		if len(current) == 0 {
			return fmt.Errorf("empty alternative in %q", query)
		}
		alternatives = append(alternatives, single("and", current))
		current = nil
		return nil
	}

	for _, tok := range tokens {
		if tok.text == "|" && !tok.quoted {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		expr, err := parseTerm(tok)
		if err != nil {
			return nil, err
		}
		current = append(current, expr)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return single("or", alternatives), nil
}

func single(op string, exprs []FilterExpr) FilterExpr {
	if len(exprs) == 1 {
		return exprs[0]
	}
	if op == "or" {
		return &OrExpr{exprs: exprs}
	}
	return &AndExpr{exprs: exprs}
}

type token struct {
	text   string
	quoted bool
	negate bool
}

// tokenize splits on whitespace; double quotes group words and a leading
// minus negates the token
func tokenize(query string) ([]token, error) {
	var tokens []token
	runes := []rune(query)
	for i := 0; i < len(runes); {
		if runes[i] == ' ' || runes[i] == '\t' {
			i++
			continue
		}
		var tok token
		if runes[i] == '-' && i+1 < len(runes) && runes[i+1] != ' ' {
			tok.negate = true
			i++
		}
		if runes[i] == '"' {
			end := i + 1
			for end < len(runes) && runes[end] != '"' {
				end++
			}
			if end >= len(runes) {
				return nil, fmt.Errorf("unterminated quote in %q", query)
			}
			tok.text = string(runes[i+1 : end])
			tok.quoted = true
			i = end + 1
		} else {
			start := i
			for i < len(runes) && runes[i] != ' ' && runes[i] != '\t' {
				i++
			}
			tok.text = string(runes[start:i])
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func parseTerm(tok token) (FilterExpr, error) {
	expr, err := termExpr(tok)
	if err != nil {
		return nil, err
	}
	if tok.negate {
		return &NotExpr{expr: expr}, nil
	}
	return expr, nil
}

func termExpr(tok token) (FilterExpr, error) {
	if tok.quoted {
		return NewTextExpr(tok.text), nil
	}

	key, value, ok := strings.Cut(tok.text, ":")
	if !ok || value == "" {
		return NewFuzzyExpr(tok.text), nil
	}

	switch key {
	case "status", "s":
		return NewStatusExpr(strings.Split(value, ",")...), nil
	case "is", "has":
		switch value {
		case "header", "item", "hidden", "visible", "detail", "children":
			return &KindExpr{kind: value}, nil
		}
		return nil, fmt.Errorf("unknown filter %s:%s", key, value)
	}
	return NewFuzzyExpr(tok.text), nil
}

// Find returns the items of the tree matching expr in document order,
// collapsed and hidden subtrees included
func Find(items []*model.ListItem, expr FilterExpr) []*model.ListItem {
	var out []*model.ListItem
	model.Walk(items, func(item *model.ListItem, _ int) bool {
		if expr.Matches(item) {
			out = append(out, item)
		}
		return true
	})
	return out
}
