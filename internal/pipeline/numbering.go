package pipeline

import (
	"strconv"
	"strings"

	"github.com/pstuifzand/tui-smartlist/internal/model"
)

// childFallback derives the nested format from the top-level one
var childFallback = map[model.NumberingFormat]model.NumberingFormat{
	model.NumberDecimalDot:    model.NumberAlphaParen,
	model.NumberDecimalParen:  model.NumberAlphaParen,
	model.NumberDecimalWrap:   model.NumberAlphaParen,
	model.NumberAlphaParen:    model.NumberRomanDot,
	model.NumberAlphaDot:      model.NumberRomanDot,
	model.NumberUpperAlphaDot: model.NumberDecimalDot,
	model.NumberRomanDot:      model.NumberAlphaParen,
	model.NumberUpperRomanDot: model.NumberUpperAlphaDot,
}

// ChildFormat returns the format used below depth 0
func ChildFormat(cfg model.Config) model.NumberingFormat {
	if cfg.ChildNumberingFormat.Valid() {
		return cfg.ChildNumberingFormat
	}
	top := cfg.NumberingFormat
	if !top.Valid() {
		top = model.NumberDecimalDot
	}
	return childFallback[top]
}

// FormatForDepth returns the numbering format for items at depth
func FormatForDepth(cfg model.Config, depth int) model.NumberingFormat {
	if depth == 0 {
		if cfg.NumberingFormat.Valid() {
			return cfg.NumberingFormat
		}
		return model.NumberDecimalDot
	}
	return ChildFormat(cfg)
}

// FormatNumber renders the 1-based counter n in format f
func FormatNumber(f model.NumberingFormat, n int) string {
	if n < 1 {
		return ""
	}
	switch f {
	case model.NumberDecimalDot:
		return strconv.Itoa(n) + "."
	case model.NumberDecimalParen:
		return strconv.Itoa(n) + ")"
	case model.NumberDecimalWrap:
		return "(" + strconv.Itoa(n) + ")"
	case model.NumberAlphaParen:
		return alpha(n) + ")"
	case model.NumberAlphaDot:
		return alpha(n) + "."
	case model.NumberUpperAlphaDot:
		return strings.ToUpper(alpha(n)) + "."
	case model.NumberRomanDot:
		return roman(n) + "."
	case model.NumberUpperRomanDot:
		return strings.ToUpper(roman(n)) + "."
	}
	return strconv.Itoa(n) + "."
}

// alpha converts n to a, b, ... z, aa, ab, ...
func alpha(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('a' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

func roman(n int) string {
	var sb strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			sb.WriteString(r.symbol)
			n -= r.value
		}
	}
	return sb.String()
}
