package theme

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pstuifzand/tui-smartlist/internal/model"
)

// HexToColor converts a hex color string (#RRGGBB or #RGB) to tcell.Color
func HexToColor(hexColor string) tcell.Color {
	hexColor = strings.TrimPrefix(hexColor, "#")

	if len(hexColor) == 3 {
		hexColor = string(hexColor[0]) + string(hexColor[0]) +
			string(hexColor[1]) + string(hexColor[1]) +
			string(hexColor[2]) + string(hexColor[2])
	}
	if len(hexColor) != 6 {
		return tcell.ColorDefault
	}

	c, err := colorful.Hex("#" + hexColor)
	if err != nil {
		return tcell.ColorDefault
	}

	return fromColorful(c)
}

func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// toColorful converts an RGB tcell color. Palette and default colors have
// no fixed value and report false.
func toColorful(c tcell.Color) (colorful.Color, bool) {
	if c == tcell.ColorDefault || !c.Valid() {
		return colorful.Color{}, false
	}
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}, false
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, true
}

// Blend mixes fg into bg; t=0 gives bg and t=1 gives fg. Colors without a
// fixed RGB value return fallback.
func Blend(bg, fg tcell.Color, t float64, fallback tcell.Color) tcell.Color {
	b, ok1 := toColorful(bg)
	f, ok2 := toColorful(fg)
	if !ok1 || !ok2 {
		return fallback
	}
	return fromColorful(b.BlendLab(f, t))
}

// Fade draws fg at the given opacity over bg. Without a blendable background
// anything below full opacity uses faded.
func Fade(fg, bg tcell.Color, opacity float64, faded tcell.Color) tcell.Color {
	if opacity >= 1 {
		return fg
	}
	return Blend(bg, fg, opacity, faded)
}

// tintAmount is how much of the status color a conditionally formatted row
// takes for each intensity
var tintAmount = map[model.Intensity]float64{
	model.IntensitySubtle: 0.12,
	model.IntensityMedium: 0.25,
	model.IntensityStrong: 0.45,
}

// StatusTint returns the row background for an icon color under
// conditional formatting. ok is false when there is nothing to tint with.
func StatusTint(bg tcell.Color, iconHex string, intensity model.Intensity) (tcell.Color, bool) {
	if iconHex == "" {
		return bg, false
	}
	amount, ok := tintAmount[intensity]
	if !ok {
		amount = tintAmount[model.IntensityMedium]
	}
	tint := Blend(bg, HexToColor(iconHex), amount, tcell.ColorDefault)
	if tint == tcell.ColorDefault {
		return bg, false
	}
	return tint, true
}

// RGBToColor converts RGB values to tcell.Color
func RGBToColor(r, g, b int) tcell.Color {
	if r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// ParseColorString handles multiple color formats: #RRGGBB, #RGB, or rgb(r,g,b)
func ParseColorString(colorStr string) tcell.Color {
	colorStr = strings.TrimSpace(colorStr)

	// Handle hex colors
	if strings.HasPrefix(colorStr, "#") {
		return HexToColor(colorStr)
	}

	// Handle rgb(r,g,b) format
	if strings.HasPrefix(colorStr, "rgb(") && strings.HasSuffix(colorStr, ")") {
		innerStr := strings.TrimPrefix(colorStr, "rgb(")
		innerStr = strings.TrimSuffix(innerStr, ")")
		parts := strings.Split(innerStr, ",")
		if len(parts) != 3 {
			return tcell.ColorDefault
		}

		r, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		g, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		b, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))

		if err1 == nil && err2 == nil && err3 == nil {
			return RGBToColor(r, g, b)
		}
	}

	return tcell.ColorDefault
}

// ColorPairToStyle creates a style with specific foreground and background colors
func ColorPairToStyle(fgColor, bgColor tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fgColor).Background(bgColor)
}
