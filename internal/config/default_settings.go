package config

import "github.com/tauraamui/photoframed/pkg/configdef"

type defaultSettingKey uint

const (
	INTERVAL    defaultSettingKey = 0x0
	ORIENTATION defaultSettingKey = 0x1
	BRIGHTNESS  defaultSettingKey = 0x2
	PIXELFORMAT defaultSettingKey = 0x3
)

var defaultSettings = map[defaultSettingKey]interface{}{
	INTERVAL:    30,
	ORIENTATION: configdef.OrientationPortrait,
	BRIGHTNESS:  80,
	PIXELFORMAT: "rgb565le",
}
