// Package render converts a Timestamp into an ordered sequence of vector
// drawing primitives for the analogue, binary and seven-segment clock faces.
// Renderers are stateless: each call is a pure function of its arguments.
package render

import (
	"fmt"
	"strings"
)

// DefaultLineWidth is the stroke width in effect when a paint begins.
const DefaultLineWidth = 2.0

// Renderer produces the primitives for one clock face.
type Renderer interface {
	Render(ts Timestamp, b Bounds) []Primitive
}

// Kind selects a Renderer variant.
type Kind int

const (
	Analogue Kind = iota
	Binary
	Digital
)

func (k Kind) String() string {
	switch k {
	case Analogue:
		return "analogue"
	case Binary:
		return "binary"
	case Digital:
		return "digital"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Title is the human readable name of the clock face.
func (k Kind) Title() string {
	switch k {
	case Analogue:
		return "Analogue PyClock"
	case Binary:
		return "Binary PyClock"
	case Digital:
		return "Digital PyClock"
	default:
		return fmt.Sprintf("Kind(%d) PyClock", int(k))
	}
}

// ParseKind maps an --interface value onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "analogue", "analog":
		return Analogue, nil
	case "binary":
		return Binary, nil
	case "digital":
		return Digital, nil
	default:
		return 0, fmt.Errorf("ParseKind() expected one of {analogue|binary|digital}; got %q", s)
	}
}

// Options configures the renderer selected by New.
type Options struct {
	// Colour is the on-colour of LEDs and segments. The analogue face ignores
	// it.
	Colour Colour
	// Fit scales the fixed binary and digital canvases to the surface.
	Fit bool
	// RowWidths is the bit width of each binary row, see BinaryOptions.
	RowWidths [RowCount]int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{Colour: Red, RowWidths: DefaultRowWidths}
}

// New constructs the renderer for kind. It is called once per display mode
// selection and the result is reused for every paint.
func New(kind Kind, opts Options) (Renderer, error) {
	switch kind {
	case Analogue:
		return NewAnalogue(), nil
	case Binary:
		return NewBinary(BinaryOptions{Colour: opts.Colour, RowWidths: opts.RowWidths, Fit: opts.Fit})
	case Digital:
		return NewSevenSegment(SevenSegmentOptions{Colour: opts.Colour, Fit: opts.Fit}), nil
	default:
		return nil, fmt.Errorf("New() got unknown renderer kind %d", kind)
	}
}

// DefaultBounds is the surface size each face is designed for.
func DefaultBounds(kind Kind) Bounds {
	switch kind {
	case Binary:
		return binaryCanvas
	case Digital:
		return segmentCanvas
	default:
		return Bounds{Width: 230, Height: 230}
	}
}
