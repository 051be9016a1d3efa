package render

// Off-state intensities, applied per channel to the configured on-colour.
const (
	LEDOffRatio     = 0.325
	SegmentOffRatio = 0.4
)

var (
	White  = Colour{R: 1, G: 1, B: 1}
	Black  = Colour{}
	Red    = Colour{R: 1}
	Accent = Colour{R: 0.7, G: 0.2, B: 0.0}
)

// Colour is an RGB colour with channels in [0, 1].
type Colour struct {
	R float64
	G float64
	B float64
}

// Scale multiplies each channel by f, clamping the result to [0, 1].
func (c Colour) Scale(f float64) Colour {
	return Colour{R: clampUnit(c.R * f), G: clampUnit(c.G * f), B: clampUnit(c.B * f)}
}

// LED returns the colour of an indicator that is lit when on is true and
// dimmed by ratio otherwise.
func (c Colour) LED(on bool, ratio float64) Colour {
	if on {
		return c.Scale(1)
	}
	return c.Scale(ratio)
}

func (c Colour) ptr() *Colour {
	return &c
}

func clampUnit(v float64) float64 {
	// NaN compares false against both bounds, so it is mapped to 0 explicitly.
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
