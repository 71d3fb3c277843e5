package display

import (
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

type mockSerialPort struct {
	written []byte
	closed  bool
}

func (m *mockSerialPort) SetMode(mode *serial.Mode) error { return nil }
func (m *mockSerialPort) Read(p []byte) (int, error)      { return 0, nil }

func (m *mockSerialPort) Write(p []byte) (int, error) {
	m.written = append(m.written, p...)
	return len(p), nil
}

func (m *mockSerialPort) ResetInputBuffer() error                        { return nil }
func (m *mockSerialPort) ResetOutputBuffer() error                       { return nil }
func (m *mockSerialPort) SetDTR(dtr bool) error                          { return nil }
func (m *mockSerialPort) SetRTS(rts bool) error                          { return nil }
func (m *mockSerialPort) GetModemStatusBits() (*serial.ModemStatusBits, error) { return nil, nil }
func (m *mockSerialPort) SetReadTimeout(t time.Duration) error           { return nil }
func (m *mockSerialPort) Break(d time.Duration) error                    { return nil }

func (m *mockSerialPort) Close() error {
	m.closed = true
	return nil
}

func overriddenSerialPort(t *testing.T) *mockSerialPort {
	t.Helper()
	port := mockSerialPort{}
	oldOpen := openSerialPort
	openSerialPort = func(portName string) (serial.Port, error) {
		return &port, nil
	}
	t.Cleanup(func() { openSerialPort = oldOpen })
	return &port
}

func TestTuringRevADisplayBitmapCommandHeader(t *testing.T) {
	is := is.New(t)
	port := overriddenSerialPort(t)

	sink := NewTuringRevA("/dev/ttyACM0")
	require.NoError(t, sink.Initialize())

	port.written = nil
	buf := make([]byte, 320*480*2)
	require.NoError(t, sink.DisplayBitmap(buf, 320, 480))

	// 10-bit coords 0,0 -> 319,479 packed into the 6 byte header
	is.Equal(port.written[:6], []byte{0, 0, 4, 253, 223, cmdDisplayBitmap})
	is.Equal(len(port.written), 6+len(buf))
}

func TestTuringRevADisplayBitmapRejectsMismatchedBuffer(t *testing.T) {
	port := overriddenSerialPort(t)

	sink := NewTuringRevA("/dev/ttyACM0")
	require.NoError(t, sink.Initialize())
	_ = port

	require.Error(t, sink.DisplayBitmap(make([]byte, 10), 320, 480))
}

func TestTuringRevABrightnessWireValueIsInverted(t *testing.T) {
	is := is.New(t)
	port := overriddenSerialPort(t)

	sink := NewTuringRevA("/dev/ttyACM0")
	require.NoError(t, sink.Initialize())

	port.written = nil
	require.NoError(t, sink.SetBrightness(100))
	is.Equal(port.written[0], byte(0)) // full brightness is wire zero

	port.written = nil
	require.NoError(t, sink.SetBrightness(0))
	is.Equal(port.written[0], byte(255>>2))
}

func TestTuringRevACloseReleasesPort(t *testing.T) {
	port := overriddenSerialPort(t)

	sink := NewTuringRevA("/dev/ttyACM0")
	require.NoError(t, sink.Initialize())
	require.NoError(t, sink.Close())
	require.True(t, port.closed)

	// double close is a no-op
	require.NoError(t, sink.Close())
}
