package config

import (
	"github.com/tauraamui/photoframed/pkg/configdef"
)

func DefaultDestroyer() configdef.Destroyer {
	return defaultDestroyer{}
}

type defaultDestroyer struct{}

func (d defaultDestroyer) Destroy() error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	return fs.Remove(path)
}
