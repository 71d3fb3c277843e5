package configdef

import (
	"fmt"

	validate "gopkg.in/dealancer/validate.v2"
)

type Orientation string

const (
	OrientationPortrait  Orientation = "Portrait"
	OrientationLandscape Orientation = "Landscape"
)

// Valid reports whether the orientation is one of the two
// values the panel firmware understands.
func (o Orientation) Valid() bool {
	return o == OrientationPortrait || o == OrientationLandscape
}

func (o Orientation) Flipped() Orientation {
	if o == OrientationPortrait {
		return OrientationLandscape
	}
	return OrientationPortrait
}

type Slideshow struct {
	Interval    int  `yaml:"interval" validate:"gte=1"`
	ShowTime    bool `yaml:"show_time"`
	ShowCounter bool `yaml:"show_counter"`
	Shuffle     bool `yaml:"shuffle"`
}

type Photos struct {
	PortraitFolder  string      `yaml:"portrait_folder"`
	LandscapeFolder string      `yaml:"landscape_folder"`
	Orientation     Orientation `yaml:"orientation"`
}

type Display struct {
	Brightness  int    `yaml:"brightness" validate:"gte=0 & lte=100"`
	ComPort     string `yaml:"com_port"`
	Inverse     bool   `yaml:"inverse"`
	PixelFormat string `yaml:"pixel_format"`
}

type Values struct {
	Debug     bool      `yaml:"debug"`
	Secret    string    `yaml:"secret"`
	Slideshow Slideshow `yaml:"slideshow"`
	Photos    Photos    `yaml:"photos"`
	Display   Display   `yaml:"display"`
}

func (v Values) RunValidate() error {
	if err := validate.Validate(&v); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return v.Validate()
}

func (v Values) Validate() error {
	const validationErrorHeader = "validation failed: %s"
	if !v.Photos.Orientation.Valid() {
		return fmt.Errorf(
			validationErrorHeader,
			fmt.Sprintf("orientation must be %q or %q", OrientationPortrait, OrientationLandscape),
		)
	}
	return nil
}

// ActiveFolder resolves the photo folder for the currently
// selected orientation.
func (v Values) ActiveFolder() string {
	if v.Photos.Orientation == OrientationLandscape {
		return v.Photos.LandscapeFolder
	}
	return v.Photos.PortraitFolder
}
