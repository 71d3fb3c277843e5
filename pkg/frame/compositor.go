package frame

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/spf13/afero"
	"github.com/tauraamui/photoframed/internal/xerror"
	"github.com/tauraamui/photoframed/pkg/configdef"
	"github.com/tauraamui/photoframed/pkg/log"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var fs = afero.NewOsFs()

// Compose loads the image at path and produces a frame of
// exactly the geometry's canvas size:
//
//  1. decode and apply EXIF corrective rotation
//  2. rotate to match the panel orientation
//  3. scale onto the canvas (letterboxed for portrait when
//     preserveAspect is set, force stretched for landscape)
//  4. flip 180 degrees when the inverse flag is set
//  5. flatten to opaque RGB over black
//
// When any compose stage fails the decoded source is plainly
// resized to the canvas instead; only a decode failure is
// surfaced to the caller.
func Compose(path string, g Geometry, preserveAspect bool) (image.Image, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, xerror.Errorf("unable to read image %s: %w", path, err).ToError()
	}

	src, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, xerror.Errorf("unable to decode image %s: %w", path, err).ToError()
	}

	src = exifCorrect(raw, src)

	canvasW, canvasH := g.Canvas()
	composed, err := compose(src, g, canvasW, canvasH, preserveAspect)
	if err != nil {
		log.Error("compose failed for %s, falling back to plain resize: %v", path, err)
		composed = imaging.Resize(src, canvasW, canvasH, imaging.Lanczos)
		if g.Inverse {
			composed = imaging.Rotate180(composed)
		}
	}

	return flatten(composed, canvasW, canvasH), nil
}

// exifCorrect undoes camera rotation recorded in the EXIF
// orientation tag. Unreadable or absent EXIF data leaves the
// image untouched.
func exifCorrect(raw []byte, src image.Image) image.Image {
	meta, err := exif.Decode(bytes.NewReader(raw))
	if err != nil {
		return src
	}

	tag, err := meta.Get(exif.Orientation)
	if err != nil {
		return src
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return src
	}

	switch orientation {
	case 3:
		return imaging.Rotate180(src)
	case 6:
		return imaging.Rotate270(src)
	case 8:
		return imaging.Rotate90(src)
	}
	return src
}

func compose(src image.Image, g Geometry, canvasW, canvasH int, preserveAspect bool) (*image.NRGBA, error) {
	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, xerror.New("source image has no pixels").ToError()
	}

	img := rotateForPanel(src, g)

	var out *image.NRGBA
	switch {
	case g.Orientation == configdef.OrientationLandscape:
		// The rotation above already reoriented the content for the
		// physical wiring, so landscape frames stretch straight onto
		// the portrait shaped canvas.
		out = imaging.Resize(img, canvasW, canvasH, imaging.Lanczos)
	case preserveAspect:
		out = letterbox(img, canvasW, canvasH)
	default:
		out = imaging.Resize(img, canvasW, canvasH, imaging.Lanczos)
	}

	if g.Inverse {
		out = imaging.Rotate180(out)
	}

	return out, nil
}

func rotateForPanel(img image.Image, g Geometry) *image.NRGBA {
	if g.Orientation == configdef.OrientationLandscape {
		// Fixed physical wiring: landscape content always turns 270.
		return imaging.Rotate270(img)
	}
	if img.Bounds().Dx() > img.Bounds().Dy() {
		return imaging.Rotate90(img)
	}
	return imaging.Clone(img)
}

// letterbox scales the image uniformly to fit inside the canvas
// and centres it over black.
func letterbox(img *image.NRGBA, canvasW, canvasH int) *image.NRGBA {
	srcW, srcH := img.Bounds().Dx(), img.Bounds().Dy()

	scale := float64(canvasW) / float64(srcW)
	if hs := float64(canvasH) / float64(srcH); hs < scale {
		scale = hs
	}

	newW := int(float64(srcW) * scale)
	if newW < 1 {
		newW = 1
	}
	newH := int(float64(srcH) * scale)
	if newH < 1 {
		newH = 1
	}

	resized := imaging.Resize(img, newW, newH, imaging.Lanczos)
	canvas := imaging.New(canvasW, canvasH, color.NRGBA{A: 255})
	return imaging.Paste(canvas, resized, image.Pt((canvasW-newW)/2, (canvasH-newH)/2))
}

// flatten blends any remaining transparency over black and
// guarantees the exact canvas size.
func flatten(img *image.NRGBA, canvasW, canvasH int) *image.NRGBA {
	if img.Bounds().Dx() != canvasW || img.Bounds().Dy() != canvasH {
		img = imaging.Resize(img, canvasW, canvasH, imaging.Lanczos)
	}
	black := imaging.New(canvasW, canvasH, color.NRGBA{A: 255})
	return imaging.Overlay(black, img, image.Pt(0, 0), 1.0)
}
