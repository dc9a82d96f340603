package shapes

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/ironsheep/draw-tools-mcp/internal/errkind"
)

// ResolveColor turns a stored color string into RGB.
//
// Accepted forms are SVG/X11 color names ("black", "blue", "red", ...) and
// hex ("#RGB" or "#RRGGBB"). An empty string means "no color" and returns
// ok == false with a nil error.
func ResolveColor(name string) (c colorful.Color, ok bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return colorful.Color{}, false, nil
	}
	if named, found := colornames.Map[strings.ToLower(name)]; found {
		c, _ = colorful.MakeColor(named)
		return c, true, nil
	}
	if strings.HasPrefix(name, "#") {
		c, err = colorful.Hex(name)
		if err == nil {
			return c, true, nil
		}
	}
	return colorful.Color{}, false, fmt.Errorf("%w: color %q", errkind.ErrInvalidArgument, name)
}
