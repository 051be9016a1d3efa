package colour

import (
	"errors"
	"testing"

	"github.com/kcz17/clockface/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want render.Colour
	}{
		{name: "Default red", spec: "red", want: render.Colour{R: 1}},
		{name: "Name is case insensitive", spec: " Blue ", want: render.Colour{B: 1}},
		{name: "Name with spaces", spec: "dark orange", want: render.Colour{R: 1, G: 140.0 / 255}},
		{name: "Long hex", spec: "#00ff00", want: render.Colour{G: 1}},
		{name: "Short hex", spec: "#fff", want: render.Colour{R: 1, G: 1, B: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.spec)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.R, got.R, 1e-9)
			assert.InDelta(t, tt.want.G, got.G, 1e-9)
			assert.InDelta(t, tt.want.B, got.B, 1e-9)
		})
	}
}

func TestParse_ConfigurationError(t *testing.T) {
	for _, spec := range []string{"", "notacolour", "#12", "#gggggg"} {
		_, err := Parse(spec)
		var cfgErr *ConfigurationError
		require.Truef(t, errors.As(err, &cfgErr), "expected ConfigurationError for %q; got %v", spec, err)
		assert.Equal(t, spec, cfgErr.Value)
	}
}
