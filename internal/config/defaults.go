package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"database": map[string]interface{}{
			"path": "~/.remindd/remindd.db",
		},
		"notifications": map[string]interface{}{
			"desktop":          true,
			"request_on_start": true,
		},
		"backup": map[string]interface{}{
			"dir": ".",
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}
