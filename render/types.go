package render

import "time"

// Timestamp is an immutable snapshot of the wall-clock fields a renderer
// needs. A new Timestamp replaces the old one on every tick.
type Timestamp struct {
	Year   int
	Month  int // 1-12
	Day    int // 1-31
	Hour   int // 0-23
	Minute int // 0-59
	Second int // 0-59
}

// TimestampOf converts a time.Time into a Timestamp in t's location.
func TimestampOf(t time.Time) Timestamp {
	return Timestamp{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// Bounds is the size of the drawing surface for a single paint.
type Bounds struct {
	Width  float64
	Height float64
}

// Point is a surface coordinate. Y grows downwards.
type Point struct {
	X float64
	Y float64
}

// Primitive is a single vector-drawing instruction. The set of primitives is
// closed: Arc, LineSegment, FilledPolygon and LineWidth.
type Primitive interface {
	primitive()
}

// Arc is a circular arc from Start to End radians, measured clockwise from
// the positive X axis in screen space. A nil Fill or Stroke skips that pass;
// the fill pass always runs before the stroke pass.
type Arc struct {
	Center Point
	Radius float64
	Start  float64
	End    float64
	Fill   *Colour
	Stroke *Colour
}

// LineSegment is stroked with the current line width.
type LineSegment struct {
	From   Point
	To     Point
	Colour Colour
}

// FilledPolygon is a closed polygon filled with Fill and then outlined with
// Stroke.
type FilledPolygon struct {
	Points []Point
	Fill   Colour
	Stroke Colour
}

// LineWidth sets the stroke width for every following primitive.
type LineWidth struct {
	Value float64
}

func (Arc) primitive()           {}
func (LineSegment) primitive()   {}
func (FilledPolygon) primitive() {}
func (LineWidth) primitive()     {}

// Circle returns a full-turn Arc.
func Circle(center Point, radius float64, fill, stroke *Colour) Arc {
	return Arc{Center: center, Radius: radius, Start: 0, End: fullTurn, Fill: fill, Stroke: stroke}
}
