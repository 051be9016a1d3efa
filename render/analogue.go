package render

import "math"

const (
	hourTicks = 12
	// Ticks at 12, 3, 6 and 9 o'clock are accented.
	accentEvery = 3

	accentTickWidth = 4 * DefaultLineWidth
	hourHandWidth   = 2.5 * DefaultLineWidth

	accentTickInset = 0.2
	tickInset       = 0.1

	hourHandLength   = 0.5
	minuteHandLength = 0.75
	secondHandLength = 0.75

	pivotRadius = 5
)

// AnalogueRenderer draws a dial with hour ticks and hour, minute and second
// hands.
type AnalogueRenderer struct{}

func NewAnalogue() *AnalogueRenderer {
	return &AnalogueRenderer{}
}

// HourHandAngle returns the hour hand angle in degrees. The hand advances
// half a degree per minute so it moves smoothly between hour marks.
func HourHandAngle(ts Timestamp) float64 {
	return float64(ts.Hour%12)*30 + float64(ts.Minute)*0.5
}

// MinuteHandAngle returns the minute hand angle in degrees.
func MinuteHandAngle(ts Timestamp) float64 {
	return float64(ts.Minute) * 6
}

// SecondHandAngle returns the second hand angle in degrees.
func SecondHandAngle(ts Timestamp) float64 {
	return float64(ts.Second) * 6
}

func (r *AnalogueRenderer) Render(ts Timestamp, b Bounds) []Primitive {
	l := newDialLayout(b)

	prims := []Primitive{LineWidth{Value: DefaultLineWidth}}
	if l.radius > 0 {
		prims = appendFace(prims, l)
		prims = appendHands(prims, l, ts)
	}

	// The pivot dot covers the point where the hands meet.
	return append(prims, Circle(l.center, pivotRadius, Red.ptr(), Red.ptr()))
}

func appendFace(prims []Primitive, l dialLayout) []Primitive {
	prims = append(prims, Circle(l.center, l.radius, White.ptr(), Black.ptr()))

	for tick := 0; tick < hourTicks; tick++ {
		angle := float64(tick) * fullTurn / hourTicks
		if tick%accentEvery == 0 {
			prims = append(prims,
				LineWidth{Value: accentTickWidth},
				LineSegment{
					From:   l.along(angle, l.radius*(1-accentTickInset)),
					To:     l.along(angle, l.radius),
					Colour: Accent,
				},
				LineWidth{Value: DefaultLineWidth},
			)
			continue
		}
		prims = append(prims, LineSegment{
			From:   l.along(angle, l.radius*(1-tickInset)),
			To:     l.along(angle, l.radius),
			Colour: Black,
		})
	}

	return prims
}

func appendHands(prims []Primitive, l dialLayout, ts Timestamp) []Primitive {
	return append(prims,
		LineWidth{Value: hourHandWidth},
		LineSegment{From: l.center, To: l.along(radians(HourHandAngle(ts)), l.radius*hourHandLength), Colour: Black},
		LineWidth{Value: DefaultLineWidth},
		LineSegment{From: l.center, To: l.along(radians(MinuteHandAngle(ts)), l.radius*minuteHandLength), Colour: Black},
		LineSegment{From: l.center, To: l.along(radians(SecondHandAngle(ts)), l.radius*secondHandLength), Colour: Red},
	)
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
