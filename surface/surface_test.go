package surface

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/kcz17/clockface/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/recorder"
)

func rgb(r, g, b uint8) [3]uint8 { return [3]uint8{r, g, b} }

func pixel(t *testing.T, data []byte, x, y int) [3]uint8 {
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	r, g, b, _ := img.At(x, y).RGBA()
	return rgb(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

func TestDraw_FillsBeforeStroking(t *testing.T) {
	c := &recorder.Canvas{}
	red := render.Red
	Draw(c, render.Bounds{Width: 100, Height: 100}, []render.Primitive{
		render.FilledPolygon{
			Points: []render.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
			Fill:   render.White,
			Stroke: render.Black,
		},
		render.Circle(render.Point{X: 50, Y: 50}, 5, &red, nil),
	})

	var calls []string
	for _, a := range c.Actions {
		switch a.(type) {
		case *recorder.Fill:
			calls = append(calls, "fill")
		case *recorder.Stroke:
			calls = append(calls, "stroke")
		}
	}
	assert.Equal(t, []string{"fill", "stroke", "fill"}, calls)
}

func TestDraw_FlipsYAndSetsWidth(t *testing.T) {
	c := &recorder.Canvas{}
	Draw(c, render.Bounds{Width: 100, Height: 80}, []render.Primitive{
		render.LineWidth{Value: 7},
		render.LineSegment{From: render.Point{X: 10, Y: 0}, To: render.Point{X: 10, Y: 30}, Colour: render.Black},
	})

	var widths []vg.Length
	var stroke *recorder.Stroke
	for _, a := range c.Actions {
		switch a := a.(type) {
		case *recorder.SetLineWidth:
			widths = append(widths, a.Width)
		case *recorder.Stroke:
			stroke = a
		}
	}
	assert.Equal(t, []vg.Length{render.DefaultLineWidth, 7}, widths)
	require.NotNil(t, stroke)
	require.Len(t, stroke.Path, 2)
	assert.Equal(t, vg.Point{X: 10, Y: 80}, stroke.Path[0].Pos)
	assert.Equal(t, vg.Point{X: 10, Y: 50}, stroke.Path[1].Pos)
}

func TestDraw_SkipsDegenerateShapes(t *testing.T) {
	c := &recorder.Canvas{}
	red := render.Red
	Draw(c, render.Bounds{Width: 5, Height: 5}, []render.Primitive{
		render.Circle(render.Point{}, 0, &red, &red),
		render.FilledPolygon{Points: []render.Point{{X: 1, Y: 1}}},
	})
	for _, a := range c.Actions {
		assert.IsType(t, &recorder.SetLineWidth{}, a)
	}
}

func TestEncode_PNG(t *testing.T) {
	prims := render.NewAnalogue().Render(render.Timestamp{Hour: 12}, render.Bounds{Width: 230, Height: 230})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, PNG, render.Bounds{Width: 230, Height: 230}, render.Black, prims))

	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 230, img.Bounds().Dx())
	assert.Equal(t, 230, img.Bounds().Dy())

	assert.Equal(t, rgb(0, 0, 0), pixel(t, buf.Bytes(), 2, 2), "corner shows the background")
	assert.Equal(t, rgb(255, 255, 255), pixel(t, buf.Bytes(), 165, 115), "dial face is white")
	assert.Equal(t, rgb(255, 0, 0), pixel(t, buf.Bytes(), 115, 115), "pivot is red")
}

func TestEncode_PNGKeepsScreenOrientation(t *testing.T) {
	r, err := render.NewBinary(render.BinaryOptions{Colour: render.Red, RowWidths: render.DefaultRowWidths})
	require.NoError(t, err)
	b := render.DefaultBounds(render.Binary)
	// Year 2020 starts with a lit bit; second 0 is all dim.
	prims := r.Render(render.Timestamp{Year: 2020, Month: 1, Day: 1}, b)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, PNG, b, render.White, prims))
	assert.Equal(t, rgb(255, 0, 0), pixel(t, buf.Bytes(), 20, 20))
	assert.Equal(t, rgb(83, 0, 0), pixel(t, buf.Bytes(), 20, 220))
}

func TestEncode_SVG(t *testing.T) {
	prims := render.NewSevenSegment(render.SevenSegmentOptions{Colour: render.Red}).
		Render(render.Timestamp{Hour: 1, Minute: 2, Second: 3}, render.DefaultBounds(render.Digital))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, SVG, render.DefaultBounds(render.Digital), render.White, prims))
	assert.True(t, strings.Contains(buf.String(), "<svg"))
}

func TestEncode_RejectsEmptySurface(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, PNG, render.Bounds{Width: 0.5, Height: 100}, render.White, nil)
	assert.ErrorIs(t, err, ErrEmptySurface)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("SVG")
	require.NoError(t, err)
	assert.Equal(t, SVG, f)
	assert.Equal(t, "image/svg+xml", f.ContentType())
	assert.Equal(t, "image/png", PNG.ContentType())

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}
