package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/tauraamui/photoframed/pkg/configdef"
	"github.com/tauraamui/photoframed/pkg/log"
	"gopkg.in/yaml.v3"
)

func load() (configdef.Values, error) {
	var values configdef.Values

	configPath, err := resolveConfigPath()
	if err != nil {
		return configdef.Values{}, err
	}

	log.Info("Resolved config file location: %s", configPath)
	file, err := readConfigFile(configPath)
	if err != nil {
		return configdef.Values{}, err
	}

	if err := unmarshal(file, &values); err != nil {
		return configdef.Values{}, err
	}

	loadDefaultsForAbsentValues(&values)

	if err = values.RunValidate(); err != nil {
		return configdef.Values{}, err
	}

	return values, nil
}

// loadDefaultsForAbsentValues backfills settings which the
// config file simply leaves out. YAML decoding leaves the
// zero value behind so each zero is treated as absent.
func loadDefaultsForAbsentValues(values *configdef.Values) {
	if values.Slideshow.Interval == 0 {
		values.Slideshow.Interval = defaultSettings[INTERVAL].(int)
	}
	if len(values.Photos.Orientation) == 0 {
		values.Photos.Orientation = defaultSettings[ORIENTATION].(configdef.Orientation)
	}
	if values.Display.Brightness == 0 {
		values.Display.Brightness = defaultSettings[BRIGHTNESS].(int)
	}
	if len(values.Display.PixelFormat) == 0 {
		values.Display.PixelFormat = defaultSettings[PIXELFORMAT].(string)
	}
}

var readConfigFile = func(path string) ([]byte, error) {
	return afero.ReadFile(fs, path)
}

func unmarshal(content []byte, values *configdef.Values) error {
	err := yaml.Unmarshal(content, values)
	if err != nil {
		return errors.Errorf("parsing configuration error: %v", err)
	}
	return nil
}
