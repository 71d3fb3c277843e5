package configdef_test

import (
	"testing"

	"github.com/matryer/is"
	"github.com/tauraamui/photoframed/pkg/configdef"
)

func validValues() configdef.Values {
	return configdef.Values{
		Slideshow: configdef.Slideshow{Interval: 30},
		Photos: configdef.Photos{
			PortraitFolder:  "/photos/portrait",
			LandscapeFolder: "/photos/landscape",
			Orientation:     configdef.OrientationPortrait,
		},
		Display: configdef.Display{Brightness: 80},
	}
}

func TestRunValidateAcceptsSaneValues(t *testing.T) {
	is := is.New(t)
	is.NoErr(validValues().RunValidate())
}

func TestRunValidateRejectsZeroInterval(t *testing.T) {
	is := is.New(t)

	values := validValues()
	values.Slideshow.Interval = 0
	is.True(values.RunValidate() != nil)
}

func TestRunValidateRejectsBrightnessOutOfRange(t *testing.T) {
	is := is.New(t)

	values := validValues()
	values.Display.Brightness = 101
	is.True(values.RunValidate() != nil)

	values.Display.Brightness = -1
	is.True(values.RunValidate() != nil)
}

func TestRunValidateRejectsUnknownOrientation(t *testing.T) {
	is := is.New(t)

	values := validValues()
	values.Photos.Orientation = "Diagonal"
	is.True(values.RunValidate() != nil)
}

func TestOrientationFlipped(t *testing.T) {
	is := is.New(t)

	is.Equal(configdef.OrientationPortrait.Flipped(), configdef.OrientationLandscape)
	is.Equal(configdef.OrientationLandscape.Flipped(), configdef.OrientationPortrait)
}

func TestActiveFolderFollowsOrientation(t *testing.T) {
	is := is.New(t)

	values := validValues()
	is.Equal(values.ActiveFolder(), "/photos/portrait")

	values.Photos.Orientation = configdef.OrientationLandscape
	is.Equal(values.ActiveFolder(), "/photos/landscape")
}
