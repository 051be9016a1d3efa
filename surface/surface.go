// Package surface executes render primitives against a gonum vg.Canvas and
// encodes the result as PNG or SVG.
package surface

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/kcz17/clockface/render"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ContentType is the MIME type of an encoded frame.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case PNG:
		return PNG, nil
	case SVG:
		return SVG, nil
	default:
		return "", fmt.Errorf("ParseFormat() expected one of {png|svg}; got %q", s)
	}
}

// ErrEmptySurface is returned when asked to encode a surface smaller than a
// single unit in either direction.
var ErrEmptySurface = errors.New("surface has no drawable area")

// Draw executes prims in order against c. Primitives use screen coordinates
// with Y growing downwards; vg.Canvas has Y growing upwards, so every
// coordinate is flipped about the surface height.
func Draw(c vg.Canvas, b render.Bounds, prims []render.Primitive) {
	flip := flipper{height: b.Height}
	c.SetLineWidth(vg.Length(render.DefaultLineWidth))

	for _, p := range prims {
		switch p := p.(type) {
		case render.LineWidth:
			c.SetLineWidth(vg.Length(p.Value))
		case render.LineSegment:
			var path vg.Path
			path.Move(flip.point(p.From))
			path.Line(flip.point(p.To))
			c.SetColor(toColor(p.Colour))
			c.Stroke(path)
		case render.Arc:
			if p.Radius <= 0 {
				continue
			}
			var path vg.Path
			// Clockwise on screen is counter-clockwise once flipped.
			path.Arc(flip.point(p.Center), vg.Length(p.Radius), -p.Start, -(p.End - p.Start))
			path.Close()
			fillThenStroke(c, path, p.Fill, p.Stroke)
		case render.FilledPolygon:
			if len(p.Points) < 3 {
				continue
			}
			var path vg.Path
			path.Move(flip.point(p.Points[0]))
			for _, pt := range p.Points[1:] {
				path.Line(flip.point(pt))
			}
			path.Close()
			fill, stroke := p.Fill, p.Stroke
			fillThenStroke(c, path, &fill, &stroke)
		}
	}
}

// Encode draws prims on a fresh canvas of size b, filled with background
// first, and writes it to w in format f. One surface unit is one pixel.
func Encode(w io.Writer, f Format, b render.Bounds, background render.Colour, prims []render.Primitive) error {
	if b.Width < 1 || b.Height < 1 || math.IsNaN(b.Width) || math.IsNaN(b.Height) {
		return ErrEmptySurface
	}
	width, height := vg.Length(b.Width), vg.Length(b.Height)

	switch f {
	case PNG:
		c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(72), vgimg.UseBackgroundColor(toColor(background)))
		Draw(c, b, prims)
		if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
			return fmt.Errorf("Encode() could not write png: %w", err)
		}
	case SVG:
		c := vgsvg.New(width, height)
		fillBackground(c, b, background)
		Draw(c, b, prims)
		if _, err := c.WriteTo(w); err != nil {
			return fmt.Errorf("Encode() could not write svg: %w", err)
		}
	default:
		return fmt.Errorf("Encode() got unsupported format %q", f)
	}
	return nil
}

func fillBackground(c vg.Canvas, b render.Bounds, background render.Colour) {
	var path vg.Path
	path.Move(vg.Point{})
	path.Line(vg.Point{X: vg.Length(b.Width)})
	path.Line(vg.Point{X: vg.Length(b.Width), Y: vg.Length(b.Height)})
	path.Line(vg.Point{Y: vg.Length(b.Height)})
	path.Close()
	c.SetColor(toColor(background))
	c.Fill(path)
}

func fillThenStroke(c vg.Canvas, path vg.Path, fill, stroke *render.Colour) {
	if fill != nil {
		c.SetColor(toColor(*fill))
		c.Fill(path)
	}
	if stroke != nil {
		c.SetColor(toColor(*stroke))
		c.Stroke(path)
	}
}

type flipper struct {
	height float64
}

func (f flipper) point(p render.Point) vg.Point {
	return vg.Point{X: vg.Length(p.X), Y: vg.Length(f.height - p.Y)}
}

func toColor(c render.Colour) color.NRGBA {
	return color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: 0xff}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 0xff))
}
