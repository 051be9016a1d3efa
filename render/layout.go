package render

import "math"

const fullTurn = 2 * math.Pi

// dialPadding keeps the dial clear of the surface edges.
const dialPadding = 5

// dialLayout is computed once per paint and passed to every drawing step of
// the analogue renderer.
type dialLayout struct {
	center Point
	radius float64
}

func newDialLayout(b Bounds) dialLayout {
	radius := math.Min(b.Width/2, b.Height/2) - dialPadding
	if radius < 0 || math.IsNaN(radius) {
		radius = 0
	}
	return dialLayout{
		center: Point{X: b.Width / 2, Y: b.Height / 2},
		radius: radius,
	}
}

// along returns the point at distance length from the centre in the
// direction of angle, where 0 points up and angles grow clockwise.
func (l dialLayout) along(angle, length float64) Point {
	return Point{
		X: l.center.X + length*math.Sin(angle),
		Y: l.center.Y - length*math.Cos(angle),
	}
}

// gridLayout maps a fixed design canvas onto the surface. Without fitting,
// design units are surface units and the origin is the top-left corner.
type gridLayout struct {
	origin Point
	scale  float64
}

func newGridLayout(design, b Bounds, fit bool) gridLayout {
	if !fit {
		return gridLayout{scale: 1}
	}

	scale := math.Min(b.Width/design.Width, b.Height/design.Height)
	if scale <= 0 || math.IsNaN(scale) {
		return gridLayout{scale: 0}
	}
	return gridLayout{
		origin: Point{
			X: (b.Width - design.Width*scale) / 2,
			Y: (b.Height - design.Height*scale) / 2,
		},
		scale: scale,
	}
}

func (l gridLayout) point(x, y float64) Point {
	return Point{X: l.origin.X + x*l.scale, Y: l.origin.Y + y*l.scale}
}

func (l gridLayout) length(v float64) float64 {
	return v * l.scale
}

// degenerate reports whether every shape would have non-positive extent.
func (l gridLayout) degenerate() bool {
	return l.scale <= 0
}
