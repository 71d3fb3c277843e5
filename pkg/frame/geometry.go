package frame

import (
	"fmt"

	"github.com/tauraamui/photoframed/pkg/configdef"
)

// Geometry describes the logical panel target a frame is being
// composed for. Width and height are always swapped together
// when the orientation changes.
type Geometry struct {
	Width       int
	Height      int
	Orientation configdef.Orientation
	Inverse     bool
}

// GeometryFor derives the logical geometry from the panel's
// physical portrait dimensions and the configured orientation.
func GeometryFor(orientation configdef.Orientation, inverse bool, panelWidth, panelHeight int) Geometry {
	g := Geometry{
		Width:       panelWidth,
		Height:      panelHeight,
		Orientation: orientation,
		Inverse:     inverse,
	}
	if orientation == configdef.OrientationLandscape {
		g.Width, g.Height = panelHeight, panelWidth
	}
	return g
}

// Canvas returns the physical portrait-shaped canvas frames are
// composed onto. For landscape targets the content is rotated to
// match the panel wiring before scaling, so the canvas stays the
// portrait shape rather than the logical landscape one.
func (g Geometry) Canvas() (int, int) {
	if g.Orientation == configdef.OrientationLandscape {
		return g.Height, g.Width
	}
	return g.Width, g.Height
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d/%s/inv=%t", g.Width, g.Height, g.Orientation, g.Inverse)
}
