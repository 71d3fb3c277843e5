package config

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"
	"github.com/tauraamui/photoframed/pkg/configdef"
)

type LoadConfigTestSuite struct {
	suite.Suite
	oldFs            afero.Fs
	oldUserConfigDir func() (string, error)
}

func TestLoadConfigTestSuite(t *testing.T) {
	suite.Run(t, &LoadConfigTestSuite{})
}

func (suite *LoadConfigTestSuite) SetupTest() {
	suite.oldFs = fs
	fs = afero.NewMemMapFs()

	suite.oldUserConfigDir = userConfigDir
	userConfigDir = func() (string, error) {
		return "/testroot/.config", nil
	}
}

func (suite *LoadConfigTestSuite) TearDownTest() {
	fs = suite.oldFs
	userConfigDir = suite.oldUserConfigDir
	os.Unsetenv("PHOTOFRAMED_CONFIG")
}

func (suite *LoadConfigTestSuite) writeConfig(content string) {
	suite.Require().NoError(afero.WriteFile(
		fs,
		"/testroot/.config/tauraamui/photoframed/config.yaml",
		[]byte(content),
		0o644,
	))
}

func (suite *LoadConfigTestSuite) TestResolveConfigPathUnderUserConfigDir() {
	path, err := resolveConfigPath()
	suite.Require().NoError(err)
	suite.Equal("/testroot/.config/tauraamui/photoframed/config.yaml", path)
}

func (suite *LoadConfigTestSuite) TestResolveConfigPathPrefersEnvOverride() {
	os.Setenv("PHOTOFRAMED_CONFIG", "/elsewhere/config.yaml")

	path, err := resolveConfigPath()
	suite.Require().NoError(err)
	suite.Equal("/elsewhere/config.yaml", path)
}

func (suite *LoadConfigTestSuite) TestLoadPopulatedConfig() {
	suite.writeConfig(`
debug: true
secret: testsecret
slideshow:
  interval: 10
  show_time: true
  show_counter: true
  shuffle: true
photos:
  portrait_folder: /photos/portrait
  landscape_folder: /photos/landscape
  orientation: Landscape
display:
  brightness: 50
  com_port: /dev/ttyACM0
  inverse: true
  pixel_format: rgb565be
`)

	values, err := load()
	suite.Require().NoError(err)

	suite.True(values.Debug)
	suite.Equal("testsecret", values.Secret)
	suite.Equal(10, values.Slideshow.Interval)
	suite.True(values.Slideshow.ShowTime)
	suite.True(values.Slideshow.ShowCounter)
	suite.True(values.Slideshow.Shuffle)
	suite.Equal("/photos/portrait", values.Photos.PortraitFolder)
	suite.Equal("/photos/landscape", values.Photos.LandscapeFolder)
	suite.Equal(configdef.OrientationLandscape, values.Photos.Orientation)
	suite.Equal(50, values.Display.Brightness)
	suite.Equal("/dev/ttyACM0", values.Display.ComPort)
	suite.True(values.Display.Inverse)
	suite.Equal("rgb565be", values.Display.PixelFormat)
}

func (suite *LoadConfigTestSuite) TestLoadBackfillsDefaultsForAbsentValues() {
	suite.writeConfig(`
photos:
  portrait_folder: /photos/portrait
`)

	values, err := load()
	suite.Require().NoError(err)

	suite.Equal(30, values.Slideshow.Interval)
	suite.Equal(configdef.OrientationPortrait, values.Photos.Orientation)
	suite.Equal(80, values.Display.Brightness)
	suite.Equal("rgb565le", values.Display.PixelFormat)
}

func (suite *LoadConfigTestSuite) TestLoadMissingConfigFileReturnsError() {
	_, err := load()
	suite.Error(err)
}

func (suite *LoadConfigTestSuite) TestLoadUnparseableConfigReturnsError() {
	suite.writeConfig("slideshow: [what")

	_, err := load()
	suite.Require().Error(err)
	suite.Contains(err.Error(), "parsing configuration")
}

func (suite *LoadConfigTestSuite) TestLoadInvalidIntervalFailsValidation() {
	suite.writeConfig(`
slideshow:
  interval: -5
`)

	_, err := load()
	suite.Require().Error(err)
	suite.Contains(err.Error(), "validation failed")
}

func (suite *LoadConfigTestSuite) TestLoadUnknownOrientationFailsValidation() {
	suite.writeConfig(`
photos:
  orientation: Sideways
`)

	_, err := load()
	suite.Require().Error(err)
	suite.Contains(err.Error(), "orientation must be")
}

func (suite *LoadConfigTestSuite) TestLoadSurfacesUserConfigDirError() {
	userConfigDir = func() (string, error) {
		return "", os.ErrPermission
	}

	_, err := load()
	suite.Error(err)
}
