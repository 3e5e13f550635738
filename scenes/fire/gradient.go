package fire

import (
	"math"

	"github.com/phanxgames/showcase"
)

// gradient interpolates between two colors in linear light and converts the
// result back to sRGB.
type gradient struct {
	from, to showcase.Color
}

func newGradient(fromHex, toHex uint32) gradient {
	return gradient{
		from: toLinear(showcase.ColorHex(fromHex)),
		to:   toLinear(showcase.ColorHex(toHex)),
	}
}

// At returns the color at t, clamped to [0, 1].
func (g gradient) At(t float64) showcase.Color {
	return toSRGB(showcase.LerpColor(g.from, g.to, t))
}

func toLinear(c showcase.Color) showcase.Color {
	return showcase.Color{R: srgbToLinear(c.R), G: srgbToLinear(c.G), B: srgbToLinear(c.B), A: c.A}
}

func toSRGB(c showcase.Color) showcase.Color {
	return showcase.Color{R: linearToSRGB(c.R), G: linearToSRGB(c.G), B: linearToSRGB(c.B), A: c.A}
}

func srgbToLinear(u float64) float64 {
	if u <= 0.04045 {
		return u / 12.92
	}
	return math.Pow((u+0.055)/1.055, 2.4)
}

func linearToSRGB(u float64) float64 {
	u = math.Max(0, math.Min(1, u))
	if u <= 0.0031308 {
		return 12.92 * u
	}
	return 1.055*math.Pow(u, 1/2.4) - 0.055
}
