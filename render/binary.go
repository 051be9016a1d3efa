package render

import (
	"errors"
	"fmt"
	"math/bits"
)

// Row indexes the components shown by the binary face, top to bottom.
type Row int

const (
	YearRow Row = iota
	MonthRow
	DayRow
	HourRow
	MinuteRow
	SecondRow
	RowCount
)

func (r Row) String() string {
	switch r {
	case YearRow:
		return "year"
	case MonthRow:
		return "month"
	case DayRow:
		return "day"
	case HourRow:
		return "hour"
	case MinuteRow:
		return "minute"
	case SecondRow:
		return "second"
	default:
		return fmt.Sprintf("Row(%d)", int(r))
	}
}

// DefaultRowWidths leaves the year unpadded and pads every other row to 11
// bits. A width of zero means the value's natural width.
var DefaultRowWidths = [RowCount]int{0, 11, 11, 11, 11, 11}

const (
	ledRadius = 10
	// ledPitch is the horizontal distance between LED centres.
	ledPitch = 4 * ledRadius
	// maxRowWidth bounds the configurable width so a row fits an int.
	maxRowWidth = 63
)

var rowOffsets = [RowCount]float64{20, 60, 100, 140, 180, 220}

var binaryCanvas = Bounds{Width: 11 * ledPitch, Height: 240}

// BinaryOptions configures a BinaryRenderer.
type BinaryOptions struct {
	Colour    Colour
	RowWidths [RowCount]int
	Fit       bool
}

// BinaryRenderer draws one row of LEDs per date and time component.
type BinaryRenderer struct {
	colour    Colour
	rowWidths [RowCount]int
	fit       bool
}

func NewBinary(opts BinaryOptions) (*BinaryRenderer, error) {
	for row, width := range opts.RowWidths {
		if width < 0 || width > maxRowWidth {
			return nil, fmt.Errorf("NewBinary() expected %s row width between 0 and %d; got %d", Row(row), maxRowWidth, width)
		}
	}

	return &BinaryRenderer{
		colour:    opts.Colour,
		rowWidths: opts.RowWidths,
		fit:       opts.Fit,
	}, nil
}

// EncodeBits returns v in unsigned binary, most significant bit first,
// left-padded with zeros to width. Values that need more than width bits are
// never truncated. Negative values encode as zero.
func EncodeBits(v int, width int) []bool {
	if v < 0 {
		v = 0
	}
	n := bits.Len(uint(v))
	if n == 0 {
		n = 1
	}
	if width > n {
		n = width
	}

	out := make([]bool, n)
	for i := range out {
		out[n-1-i] = v&(1<<uint(i)) != 0
	}
	return out
}

// DecodeBits reads an MSB-first bit pattern back into an unsigned value.
func DecodeBits(pattern []bool) (int, error) {
	if len(pattern) > maxRowWidth {
		return 0, errors.New("DecodeBits() pattern is wider than an int")
	}

	v := 0
	for _, on := range pattern {
		v <<= 1
		if on {
			v |= 1
		}
	}
	return v, nil
}

// Rows returns the bit pattern for every row of ts.
func (r *BinaryRenderer) Rows(ts Timestamp) [RowCount][]bool {
	values := [RowCount]int{ts.Year, ts.Month, ts.Day, ts.Hour, ts.Minute, ts.Second}

	var rows [RowCount][]bool
	for i, v := range values {
		rows[i] = EncodeBits(v, r.rowWidths[i])
	}
	return rows
}

func (r *BinaryRenderer) Render(ts Timestamp, b Bounds) []Primitive {
	l := newGridLayout(binaryCanvas, b, r.fit)
	if l.degenerate() {
		return nil
	}

	prims := []Primitive{LineWidth{Value: l.length(1)}}
	for row, pattern := range r.Rows(ts) {
		for n, on := range pattern {
			x := float64(n)*ledPitch + 2*ledRadius
			prims = append(prims, Circle(
				l.point(x, rowOffsets[row]),
				l.length(ledRadius),
				r.colour.LED(on, LEDOffRatio).ptr(),
				Black.ptr(),
			))
		}
	}
	return prims
}
