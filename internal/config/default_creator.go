package config

import (
	"github.com/tauraamui/photoframed/pkg/configdef"
)

func DefaultCreateResolver() configdef.CreateResolver {
	return defaultCreateResolver{}
}

type defaultCreateResolver struct {
	defaultResolver
}

func (d defaultCreateResolver) Create() error {
	return create()
}
