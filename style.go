package zedit

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2/widget"
	"github.com/lucasb-eyer/go-colorful"
)

// Highlight is the opaque style tag of a HighlightRange. The document never
// looks inside it; renderers type-switch on it, e.g. to *Style.
type Highlight interface {
	Name() string
}

// Style is a Highlight carrying colors. A nil color leaves the color of
// the text below unchanged.
type Style struct {
	name             string
	FGColor, BGColor color.Color
}

// NewStyle creates a style from hex colors such as "#ff8800". An empty string
// means no color.
func NewStyle(name, fg, bg string) (*Style, error) {
	s := &Style{name: name}
	var err error
	if s.FGColor, err = parseHexColor(fg); err != nil {
		return nil, fmt.Errorf("style %s foreground: %w", name, err)
	}
	if s.BGColor, err = parseHexColor(bg); err != nil {
		return nil, fmt.Errorf("style %s background: %w", name, err)
	}
	return s, nil
}

func parseHexColor(s string) (color.Color, error) {
	if s == "" {
		return nil, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", err, ErrArgument)
	}
	return c, nil
}

func (s *Style) Name() string {
	return s.name
}

func (s *Style) String() string {
	return fmt.Sprintf("%s(fg=%s bg=%s)", s.name, hexOf(s.FGColor), hexOf(s.BGColor))
}

func hexOf(c color.Color) string {
	if c == nil {
		return "-"
	}
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}

// ToTextGridStyle converts the style for use in a fyne TextGrid.
func (s *Style) ToTextGridStyle() widget.TextGridStyle {
	if s == nil {
		return nil
	}
	return &widget.CustomTextGridStyle{FGColor: s.FGColor, BGColor: s.BGColor}
}

// ComposeStyles stacks layers on top of base, blending colors with the modes
// of config. Layers that are not a *Style are ignored. The result is nil if
// neither base nor any layer has a color.
func ComposeStyles(config *Config, base *Style, layers ...Highlight) *Style {
	var fg, bg color.Color
	if base != nil {
		fg, bg = base.FGColor, base.BGColor
	}
	name := ""
	for _, l := range layers {
		s, ok := l.(*Style)
		if !ok || s == nil {
			continue
		}
		if name != "" {
			name += "+"
		}
		name += s.name
		fg = blendOver(config.BlendFG, config.BlendFGSwitched, fg, s.FGColor)
		bg = blendOver(config.BlendBG, config.BlendBGSwitched, bg, s.BGColor)
	}
	if fg == nil && bg == nil {
		return nil
	}
	return &Style{name: name, FGColor: fg, BGColor: bg}
}

func blendOver(mode BlendMode, switched bool, below, above color.Color) color.Color {
	switch {
	case above == nil:
		return below
	case below == nil:
		return above
	}
	return BlendColors(mode, switched, below, above)
}
