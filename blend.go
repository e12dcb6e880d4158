package zedit

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/phrozen/blend"
)

// BlendMode determines how the colors of overlapping highlights are composited.
type BlendMode int

const (
	BlendColor BlendMode = iota + 1
	BlendColorBurn
	BlendColorDodge
	BlendDarken
	BlendDarkerColor
	BlendDifference
	BlendDivide
	BlendExclusion
	BlendHardLight
	BlendHardMix
	BlendHue
	BlendLighten
	BlendLighterColor
	BlendLinearBurn
	BlendLinearDodge
	BlendLinearLight
	BlendLuminosity
	BlendMultiply
	BlendOverlay
	BlendPhoenix
	BlendPinLight
	BlendReflex
	BlendSaturation
	BlendScreen
	BlendSoftLight
	BlendSubstract
	BlendVividLight
)

type blender struct {
	name string
	fn   func(dst, src color.Color) color.Color
}

var blenders = map[BlendMode]blender{
	BlendColor:        {"color", func(a, b color.Color) color.Color { return blend.Color(a, b) }},
	BlendColorBurn:    {"color-burn", func(a, b color.Color) color.Color { return blend.ColorBurn(a, b) }},
	BlendColorDodge:   {"color-dodge", func(a, b color.Color) color.Color { return blend.ColorDodge(a, b) }},
	BlendDarken:       {"darken", func(a, b color.Color) color.Color { return blend.Darken(a, b) }},
	BlendDarkerColor:  {"darker-color", func(a, b color.Color) color.Color { return blend.DarkerColor(a, b) }},
	BlendDifference:   {"difference", func(a, b color.Color) color.Color { return blend.Difference(a, b) }},
	BlendDivide:       {"divide", func(a, b color.Color) color.Color { return blend.Divide(a, b) }},
	BlendExclusion:    {"exclusion", func(a, b color.Color) color.Color { return blend.Exclusion(a, b) }},
	BlendHardLight:    {"hard-light", func(a, b color.Color) color.Color { return blend.HardLight(a, b) }},
	BlendHardMix:      {"hard-mix", func(a, b color.Color) color.Color { return blend.HardMix(a, b) }},
	BlendHue:          {"hue", func(a, b color.Color) color.Color { return blend.Hue(a, b) }},
	BlendLighten:      {"lighten", func(a, b color.Color) color.Color { return blend.Lighten(a, b) }},
	BlendLighterColor: {"lighter-color", func(a, b color.Color) color.Color { return blend.LighterColor(a, b) }},
	BlendLinearBurn:   {"linear-burn", func(a, b color.Color) color.Color { return blend.LinearBurn(a, b) }},
	BlendLinearDodge:  {"linear-dodge", func(a, b color.Color) color.Color { return blend.LinearDodge(a, b) }},
	BlendLinearLight:  {"linear-light", func(a, b color.Color) color.Color { return blend.LinearLight(a, b) }},
	BlendLuminosity:   {"luminosity", func(a, b color.Color) color.Color { return blend.Luminosity(a, b) }},
	BlendMultiply:     {"multiply", func(a, b color.Color) color.Color { return blend.Multiply(a, b) }},
	BlendOverlay:      {"overlay", func(a, b color.Color) color.Color { return blend.Overlay(a, b) }},
	BlendPhoenix:      {"phoenix", func(a, b color.Color) color.Color { return blend.Phoenix(a, b) }},
	BlendPinLight:     {"pin-light", func(a, b color.Color) color.Color { return blend.PinLight(a, b) }},
	BlendReflex:       {"reflex", func(a, b color.Color) color.Color { return blend.Reflex(a, b) }},
	BlendSaturation:   {"saturation", func(a, b color.Color) color.Color { return blend.Saturation(a, b) }},
	BlendScreen:       {"screen", func(a, b color.Color) color.Color { return blend.Screen(a, b) }},
	BlendSoftLight:    {"soft-light", func(a, b color.Color) color.Color { return blend.SoftLight(a, b) }},
	BlendSubstract:    {"substract", func(a, b color.Color) color.Color { return blend.Substract(a, b) }},
	BlendVividLight:   {"vivid-light", func(a, b color.Color) color.Color { return blend.VividLight(a, b) }},
}

func (m BlendMode) String() string {
	if b, ok := blenders[m]; ok {
		return b.name
	}
	return fmt.Sprintf("BlendMode(%d)", int(m))
}

// ParseBlendMode returns the mode with the given name, e.g. "overlay".
func ParseBlendMode(name string) (BlendMode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m, b := range blenders {
		if b.name == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("blend mode %q: %w", name, ErrArgument)
}

// BlendColors composites c2 over c1. Unknown modes fall back to BlendColor.
// If switched is true, the operands are swapped.
func BlendColors(blending BlendMode, switched bool, c1, c2 color.Color) color.Color {
	if switched {
		c1, c2 = c2, c1
	}
	b, ok := blenders[blending]
	if !ok {
		b = blenders[BlendColor]
	}
	return b.fn(c2, c1)
}
