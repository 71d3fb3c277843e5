package display

import (
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/tauraamui/photoframed/internal/xerror"
	"go.bug.st/serial"
)

// Turing Smart Screen rev A wire commands. Each command frame
// is 6 bytes: four 10-bit coordinates packed big-endian style
// into the first 5 bytes, the command code in the last.
const (
	cmdReset         = 101
	cmdClear         = 102
	cmdScreenOff     = 108
	cmdScreenOn      = 109
	cmdSetBrightness = 110
	cmdDisplayBitmap = 197
)

const (
	revAWidth  = 320
	revAHeight = 480

	// Payload chunk size for streaming bitmap data to the panel.
	revAChunkSize = 4096
)

var openSerialPort = func(portName string) (serial.Port, error) {
	return serial.Open(portName, &serial.Mode{BaudRate: 115200})
}

// TuringRevA drives the 3.5" rev A panel over its USB serial
// bridge. The panel is physically portrait 320x480 regardless
// of the logical orientation frames are composed for.
type TuringRevA struct {
	portName string
	port     serial.Port
}

func NewTuringRevA(portName string) *TuringRevA {
	return &TuringRevA{portName: portName}
}

func (t *TuringRevA) Initialize() error {
	port, err := openSerialPort(t.portName)
	if err != nil {
		return xerror.Errorf("unable to open serial port %s: %w", t.portName, err).ToError()
	}
	t.port = port

	if err := t.sendCommand(cmdScreenOn, 0, 0, 0, 0); err != nil {
		return err
	}
	return t.sendCommand(cmdClear, 0, 0, 0, 0)
}

func (t *TuringRevA) Width() int  { return revAWidth }
func (t *TuringRevA) Height() int { return revAHeight }

func (t *TuringRevA) Encoding() Encoding { return RGB565LittleEndian }

// SetBrightness accepts a 0-100 percentage. The panel treats 0
// as full backlight so the wire value is inverted.
func (t *TuringRevA) SetBrightness(percent int) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	level := 255 - percent*255/100
	return t.sendCommand(cmdSetBrightness, level, 0, 0, 0)
}

func (t *TuringRevA) DisplayBitmap(buf []byte, width, height int) error {
	if t.port == nil {
		return xerror.New("serial port not initialized").ToError()
	}

	if len(buf) != width*height*t.Encoding().BytesPerPixel() {
		return xerror.Errorf(
			"frame buffer size %d does not match %dx%d", len(buf), width, height,
		).ToError()
	}

	if err := t.sendCommand(cmdDisplayBitmap, 0, 0, width-1, height-1); err != nil {
		return err
	}

	for i := 0; i < len(buf); i += revAChunkSize {
		end := i + revAChunkSize
		if end > len(buf) {
			end = len(buf)
		}
		if _, err := t.port.Write(buf[i:end]); err != nil {
			return xerror.Errorf("unable to write frame chunk: %w", err).ToError()
		}
	}

	return nil
}

// DisplayFile decodes a bitmap from disk and transmits it. Used
// as the fallback transmission path.
func (t *TuringRevA) DisplayFile(path string) error {
	file, err := fs.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return xerror.Errorf("unable to decode bitmap %s: %w", path, err).ToError()
	}

	bounds := img.Bounds()
	return t.DisplayBitmap(Encode(img, t.Encoding()), bounds.Dx(), bounds.Dy())
}

func (t *TuringRevA) Close() error {
	if t.port == nil {
		return nil
	}

	// Best effort blank and power down before dropping the port.
	t.sendCommand(cmdClear, 0, 0, 0, 0)     //nolint
	t.sendCommand(cmdScreenOff, 0, 0, 0, 0) //nolint

	err := t.port.Close()
	t.port = nil
	return err
}

func (t *TuringRevA) sendCommand(cmd byte, x, y, ex, ey int) error {
	if t.port == nil {
		return xerror.New("serial port not initialized").ToError()
	}

	frame := [6]byte{
		byte(x >> 2),
		byte((x&3)<<6 | y>>4),
		byte((y&15)<<4 | ex>>6),
		byte((ex&63)<<2 | ey>>8),
		byte(ey & 255),
		cmd,
	}

	_, err := t.port.Write(frame[:])
	return err
}
