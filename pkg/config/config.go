package config

import (
	"github.com/tauraamui/photoframed/internal/config"
	"github.com/tauraamui/photoframed/pkg/configdef"
)

type CreateResolver interface {
	configdef.CreateResolver
}

func DefaultResolver() configdef.Resolver {
	return config.DefaultResolver()
}

func DefaultCreateResolver() CreateResolver {
	return config.DefaultCreateResolver()
}
