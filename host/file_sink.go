package host

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kcz17/clockface/render"
	"github.com/kcz17/clockface/surface"
)

// FileSink writes every redraw to an image file. The frame is written to a
// temporary file first and renamed into place so readers never see a
// partial image.
type FileSink struct {
	Path       string
	Format     surface.Format
	Background render.Colour
}

func NewFileSink(path string, format surface.Format, background render.Colour) *FileSink {
	return &FileSink{Path: path, Format: format, Background: background}
}

func (s *FileSink) Name() string {
	return "file"
}

func (s *FileSink) Present(kind render.Kind, b render.Bounds, prims []render.Primitive) error {
	var buf bytes.Buffer
	if err := surface.Encode(&buf, s.Format, b, s.Background, prims); err != nil {
		return fmt.Errorf("FileSink.Present() could not encode %s frame: %w", kind, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), "."+filepath.Base(s.Path)+"-*")
	if err != nil {
		return fmt.Errorf("FileSink.Present() could not create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("FileSink.Present() could not write frame: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("FileSink.Present() could not close frame: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("FileSink.Present() could not move frame into place: %w", err)
	}
	return nil
}
