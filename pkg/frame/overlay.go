package frame

import (
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/tauraamui/photoframed/pkg/configdef"
	"github.com/tauraamui/photoframed/pkg/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
)

const (
	minFontSize     = 16
	fontSizeBonus   = 11
	minMargin       = 8
	minPadding      = 6
	maxCornerRadius = 12
	overlayNudge    = 1
)

// Clock formats the wall clock line shown on every frame.
var Clock = func() string {
	return time.Now().Format("15:04")
}

type lineMetric struct {
	text   string
	width  float64
	height float64
}

// ApplyOverlay composites the given text lines onto the frame
// inside a semi-transparent rounded label. Lines are stacked
// bottom to top, first line bottom-most. For landscape targets
// the label is rendered standalone, rotated 270 degrees and
// anchored to the bottom-left corner so it reads horizontally
// on the physically rotated panel. With no lines the frame is
// returned untouched. Never fails; a missing scalable font
// falls back to the builtin fixed face.
func ApplyOverlay(frame image.Image, lines []string, orientation configdef.Orientation) image.Image {
	if len(lines) == 0 {
		return frame
	}

	w, h := frame.Bounds().Dx(), frame.Bounds().Dy()
	short := w
	if h < short {
		short = h
	}

	fontSize := short * 4 / 100
	if fontSize < minFontSize {
		fontSize = minFontSize
	}
	fontSize += fontSizeBonus

	margin := short * 2 / 100
	if margin < minMargin {
		margin = minMargin
	}

	spacing := margin / 2

	padding := fontSize / 3
	if padding < minPadding {
		padding = minPadding
	}
	padding += 6

	cornerRadius := padding
	if cornerRadius > maxCornerRadius {
		cornerRadius = maxCornerRadius
	}

	shadowOffset := fontSize * 8 / 100
	if shadowOffset < 1 {
		shadowOffset = 1
	}

	face := loadFace(fontSize)

	// Measure every line up front to size the label's backing box.
	measure := gg.NewContext(1, 1)
	measure.SetFontFace(face)

	metrics := make([]lineMetric, 0, len(lines))
	var totalH, maxW float64
	for _, txt := range lines {
		lw, lh := measure.MeasureString(txt)
		metrics = append(metrics, lineMetric{text: txt, width: lw, height: lh})
		totalH += lh + float64(spacing)
		if lw > maxW {
			maxW = lw
		}
	}
	totalH -= float64(spacing)

	overlay := gg.NewContext(w, h)
	overlay.SetFontFace(face)

	if orientation == configdef.OrientationLandscape {
		pasteRotatedLabel(overlay, face, metrics, maxW, totalH, padding, spacing, cornerRadius, shadowOffset, h)
	} else {
		drawPortraitLabel(overlay, metrics, maxW, totalH, w, h, margin, padding, spacing, cornerRadius, shadowOffset)
	}

	base := imaging.Clone(frame)
	return imaging.Overlay(base, overlay.Image(), image.Pt(0, 0), 1.0)
}

// drawPortraitLabel draws the rounded label anchored to the
// bottom-right corner directly onto the overlay layer.
func drawPortraitLabel(overlay *gg.Context, metrics []lineMetric, maxW, totalH float64, w, h, margin, padding, spacing, cornerRadius, shadowOffset int) {
	rectRight := float64(w - margin + padding)
	rectLeft := float64(w-margin-padding) - maxW
	rectBottom := float64(h - margin + padding - overlayNudge)
	rectTop := rectBottom - totalH - float64(padding)

	overlay.SetRGBA255(0, 0, 0, 200)
	overlay.DrawRoundedRectangle(rectLeft, rectTop, rectRight-rectLeft, rectBottom-rectTop, float64(cornerRadius))
	overlay.Fill()

	y := rectBottom - float64(padding)
	for _, m := range metrics {
		x := float64(w-margin) - m.width
		overlay.SetRGBA255(0, 0, 0, 200)
		overlay.DrawString(m.text, x+float64(shadowOffset), y+float64(shadowOffset))
		overlay.SetRGBA255(255, 255, 255, 255)
		overlay.DrawString(m.text, x, y)
		y -= m.height + float64(spacing)
	}
}

// pasteRotatedLabel renders the label into its own box, rotates
// the box 270 degrees and pastes it bottom-left onto the overlay
// layer.
func pasteRotatedLabel(overlay *gg.Context, face font.Face, metrics []lineMetric, maxW, totalH float64, padding, spacing, cornerRadius, shadowOffset, frameH int) {
	boxW := int(maxW) + padding*2
	boxH := int(totalH) + padding*2

	box := gg.NewContext(boxW, boxH)
	box.SetFontFace(face)
	box.SetRGBA255(0, 0, 0, 200)
	box.DrawRoundedRectangle(0, 0, float64(boxW), float64(boxH), float64(cornerRadius))
	box.Fill()

	y := float64(boxH - padding)
	for _, m := range metrics {
		x := (float64(boxW) - m.width) / 2
		box.SetRGBA255(0, 0, 0, 200)
		box.DrawString(m.text, x+float64(shadowOffset), y+float64(shadowOffset))
		box.SetRGBA255(255, 255, 255, 255)
		box.DrawString(m.text, x, y)
		y -= m.height + float64(spacing)
	}

	rotated := imaging.Rotate270(box.Image())

	posY := frameH - rotated.Bounds().Dy() - overlayNudge
	if posY < 0 {
		posY = 0
	}
	overlay.DrawImage(rotated, 0, posY)
}

func loadFace(size int) font.Face {
	f, err := truetype.Parse(gobold.TTF)
	if err != nil {
		log.Warn("unable to parse builtin bold font, using fixed face: %v", err)
		return basicfont.Face7x13
	}
	return truetype.NewFace(f, &truetype.Options{Size: float64(size)})
}
