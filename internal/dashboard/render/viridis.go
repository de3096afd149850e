package render

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/shopspring/decimal"
)

// viridisStops samples the matplotlib viridis map at t = 0, 0.1, ..., 1.
var viridisStops = []colorful.Color{
	mustHex("#440154"),
	mustHex("#482475"),
	mustHex("#414487"),
	mustHex("#355f8d"),
	mustHex("#2a788e"),
	mustHex("#21918c"),
	mustHex("#22a884"),
	mustHex("#44bf70"),
	mustHex("#7ad151"),
	mustHex("#bddf26"),
	mustHex("#fde725"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Viridis returns the hex color at position t in [0, 1]; t is clamped.
func Viridis(t float64) string {
	switch {
	case t <= 0:
		return viridisStops[0].Hex()
	case t >= 1:
		return viridisStops[len(viridisStops)-1].Hex()
	}
	scaled := t * float64(len(viridisStops)-1)
	i := int(scaled)
	return viridisStops[i].BlendRgb(viridisStops[i+1], scaled-float64(i)).Clamped().Hex()
}

// colorScale maps a value onto the ramp linearly over [min, max].
type colorScale struct {
	min, max decimal.Decimal
}

func newColorScale(values []decimal.Decimal) colorScale {
	if len(values) == 0 {
		return colorScale{}
	}
	scale := colorScale{min: values[0], max: values[0]}
	for _, v := range values[1:] {
		scale.min = decimal.Min(scale.min, v)
		scale.max = decimal.Max(scale.max, v)
	}
	return scale
}

// Color maps v to a hex color. A single-valued domain lands on the midpoint.
func (s colorScale) Color(v decimal.Decimal) string {
	span := s.max.Sub(s.min)
	if span.IsZero() {
		return Viridis(0.5)
	}
	t, _ := v.Sub(s.min).Div(span).Float64()
	return Viridis(t)
}

func (s colorScale) Domain() [2]float64 {
	lo, _ := s.min.Float64()
	hi, _ := s.max.Float64()
	return [2]float64{lo, hi}
}
