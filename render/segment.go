package render

import "fmt"

// Segment labels a..g of a seven-segment digit.
type Segment int

const (
	SegA Segment = iota
	SegB
	SegC
	SegD
	SegE
	SegF
	SegG
	SegmentCount
)

func (s Segment) String() string {
	return string(rune('a' + int(s)))
}

// Glyph is the on/off state of each segment, indexed by Segment.
type Glyph [SegmentCount]bool

// On returns the lit segments in label order.
func (g Glyph) On() []Segment {
	var on []Segment
	for s, lit := range g {
		if lit {
			on = append(on, Segment(s))
		}
	}
	return on
}

var glyphs = [10]Glyph{
	// Segments a to g.
	{true, true, true, true, true, true, false},     // 0
	{false, true, true, false, false, false, false}, // 1
	{true, true, false, true, true, false, true},    // 2
	{true, true, true, true, false, false, true},    // 3
	{false, true, true, false, false, true, true},   // 4
	{true, false, true, true, false, true, true},    // 5
	{true, false, true, true, true, true, true},     // 6
	{true, true, true, false, false, false, false},  // 7
	{true, true, true, true, true, true, true},      // 8
	{true, true, true, true, false, true, true},     // 9
}

// GlyphFor returns the segment pattern of a decimal digit.
func GlyphFor(digit int) (Glyph, error) {
	if digit < 0 || digit > 9 {
		return Glyph{}, fmt.Errorf("GlyphFor() expected digit between 0 and 9; got %d", digit)
	}
	return glyphs[digit], nil
}

// SplitDigits splits a two-digit value into its tens and units.
func SplitDigits(v int) (tens, units int) {
	return v / 10, v % 10
}

type orientation int

const (
	horizontal orientation = iota
	vertical
)

const (
	segmentLength = 60
	// segmentThickness is the width of a segment across its long axis.
	segmentThickness = 16
	// segmentGap separates neighbouring segments at the corners.
	segmentGap = 2
	dotRadius  = 10
)

// segmentPlacement locates a segment relative to the top-left corner of its
// digit: horizontal segments start at (dx, dy) and run right, vertical ones
// start there and run down.
type segmentPlacement struct {
	orientation orientation
	dx, dy      float64
}

var segmentPlacements = [SegmentCount]segmentPlacement{
	SegA: {horizontal, 0, 0},
	SegB: {vertical, segmentLength, 0},
	SegC: {vertical, segmentLength, segmentLength},
	SegD: {horizontal, 0, 2 * segmentLength},
	SegE: {vertical, 0, segmentLength},
	SegF: {vertical, 0, 0},
	SegG: {horizontal, 0, segmentLength},
}

var (
	// digitOrigins are the x positions of HH, MM and SS digits on the fixed
	// canvas.
	digitOrigins = [6]float64{28, 124, 280, 376, 532, 628}
	separatorX   = [2]float64{232, 484}
	digitTop     = 28.0
	separatorY   = [2]float64{digitTop + segmentLength/2, digitTop + 3*segmentLength/2}

	segmentCanvas = Bounds{Width: 716, Height: 176}
)

// SevenSegmentOptions configures a SevenSegmentRenderer.
type SevenSegmentOptions struct {
	Colour Colour
	Fit    bool
}

// SevenSegmentRenderer draws HH:MM:SS with seven-segment digits.
type SevenSegmentRenderer struct {
	colour Colour
	fit    bool
}

func NewSevenSegment(opts SevenSegmentOptions) *SevenSegmentRenderer {
	return &SevenSegmentRenderer{colour: opts.Colour, fit: opts.Fit}
}

// Digits returns the six displayed digits, tens first, for ts.
func Digits(ts Timestamp) [6]int {
	var digits [6]int
	for i, v := range [3]int{ts.Hour, ts.Minute, ts.Second} {
		digits[2*i], digits[2*i+1] = SplitDigits(v)
	}
	return digits
}

func (r *SevenSegmentRenderer) Render(ts Timestamp, b Bounds) []Primitive {
	l := newGridLayout(segmentCanvas, b, r.fit)
	if l.degenerate() {
		return nil
	}

	prims := []Primitive{LineWidth{Value: l.length(1)}}
	for i, digit := range Digits(ts) {
		// Digits of a valid Timestamp are always 0-9.
		glyph, _ := GlyphFor(digit)
		prims = r.appendDigit(prims, l, digitOrigins[i], glyph)
	}

	for _, x := range separatorX {
		for _, y := range separatorY {
			prims = append(prims, Circle(l.point(x, y), l.length(dotRadius), r.colour.ptr(), Black.ptr()))
		}
	}
	return prims
}

func (r *SevenSegmentRenderer) appendDigit(prims []Primitive, l gridLayout, x float64, glyph Glyph) []Primitive {
	for s, p := range segmentPlacements {
		prims = append(prims, FilledPolygon{
			Points: segmentPoints(l, p.orientation, x+p.dx, digitTop+p.dy),
			Fill:   r.colour.LED(glyph[s], SegmentOffRatio),
			Stroke: Black,
		})
	}
	return prims
}

// segmentPoints returns the flattened hexagon of one segment, pointed at
// both ends.
func segmentPoints(l gridLayout, o orientation, x, y float64) []Point {
	const (
		half = segmentThickness / 2
		lo   = segmentGap
		hi   = segmentLength - segmentGap
	)

	var pts [6][2]float64
	if o == horizontal {
		pts = [6][2]float64{
			{x + lo, y}, {x + lo + half, y - half}, {x + hi - half, y - half},
			{x + hi, y}, {x + hi - half, y + half}, {x + lo + half, y + half},
		}
	} else {
		pts = [6][2]float64{
			{x, y + lo}, {x + half, y + lo + half}, {x + half, y + hi - half},
			{x, y + hi}, {x - half, y + hi - half}, {x - half, y + lo + half},
		}
	}

	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = l.point(p[0], p[1])
	}
	return out
}
