package config

import (
	"path/filepath"
	"runtime"

	sharedconfig "github.com/draftea/order-saga/shared/config"
)

type Config = sharedconfig.Config

func ReadConfig() (*Config, error) {
	_, filename, _, _ := runtime.Caller(0)

	return sharedconfig.Load(sharedconfig.Options{
		ServiceName: "product-validation-service",
		EnvPrefix:   "PRODUCT_VALIDATION",
		Port:        "8090",
		ConfigDir:   filepath.Dir(filename),
		Defaults: map[string]interface{}{
			"kafka.group_id": "product-validation-group",
		},
	})
}
