// Package colour parses the --led-colour option.
package colour

import (
	"fmt"
	"strings"

	"github.com/kcz17/clockface/render"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ConfigurationError reports a colour specification that cannot be used.
// It is fatal at startup.
type ConfigurationError struct {
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid LED colour %q: %s", e.Value, e.Reason)
}

// Parse accepts an SVG/X11 colour name such as "red" or "darkorange", or a
// hex specification in #rgb or #rrggbb form.
func Parse(spec string) (render.Colour, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" {
		return render.Colour{}, &ConfigurationError{Value: spec, Reason: "empty colour"}
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return render.Colour{}, &ConfigurationError{Value: spec, Reason: "expected #rgb or #rrggbb"}
		}
		return render.Colour{R: c.R, G: c.G, B: c.B}, nil
	}

	named, ok := colornames.Map[strings.ReplaceAll(s, " ", "")]
	if !ok {
		return render.Colour{}, &ConfigurationError{Value: spec, Reason: "unknown colour name"}
	}
	c, _ := colorful.MakeColor(named)
	return render.Colour{R: c.R, G: c.G, B: c.B}, nil
}
