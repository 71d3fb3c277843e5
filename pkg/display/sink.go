package display

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/tauraamui/photoframed/pkg/log"
)

var fs = afero.NewOsFs()

// Sink is a display endpoint which accepts full frame pixel
// buffers already converted to its wire encoding.
type Sink interface {
	Initialize() error
	DisplayBitmap(buf []byte, width, height int) error
	Width() int
	Height() int
	Encoding() Encoding
	SetBrightness(percent int) error
	Close() error
}

// FileDisplayer is an optional sink capability used as the
// fallback transmission path when sending the in-memory
// buffer fails.
type FileDisplayer interface {
	DisplayFile(path string) error
}

// Transmit encodes the frame for the sink and sends it. If the
// direct send fails and the sink supports file based transmission
// the frame is written to a temporary bitmap, sent from disk once
// and the temporary file removed again.
func Transmit(s Sink, frame image.Image) error {
	bounds := frame.Bounds()
	err := s.DisplayBitmap(Encode(frame, s.Encoding()), bounds.Dx(), bounds.Dy())
	if err == nil {
		return nil
	}

	fd, ok := s.(FileDisplayer)
	if !ok {
		return err
	}

	log.Warn("direct frame transmission failed, retrying via file: %v", err)
	return transmitViaFile(fd, frame)
}

func transmitViaFile(fd FileDisplayer, frame image.Image) error {
	path := filepath.Join(
		os.TempDir(), fmt.Sprintf("photoframed_display_%s.png", uuid.NewString()),
	)

	file, err := fs.Create(path)
	if err != nil {
		return err
	}

	err = png.Encode(file, frame)
	file.Close()
	if err != nil {
		return err
	}

	defer func() {
		if err := fs.Remove(path); err != nil {
			log.Error("unable to remove temp display bitmap %s: %v", path, err)
		}
	}()

	return fd.DisplayFile(path)
}
