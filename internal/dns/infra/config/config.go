// Package config loads dnsq settings from DNSQ_-prefixed environment
// variables, applies defaults and validates the result.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// Servers optionally overrides the nameservers discovered from the
	// OS. Each entry is host:port.
	Servers []string `koanf:"servers" validate:"omitempty,dive,hostname_port"`

	// TimeoutSeconds bounds each upstream exchange.
	TimeoutSeconds uint `koanf:"timeout_seconds" validate:"required,gte=1,lte=60"`
}

// envLoader loads environment variables with the prefix "DNSQ_",
// lowercasing keys and stripping the prefix. Overridable in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "DNSQ_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "DNSQ_"))
			if key == "servers" {
				return key, strings.Fields(value)
			}
			return key, value
		},
	}), nil)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	k.Load(structs.Provider(AppConfig{
		Env:            "prod",
		LogLevel:       "info",
		TimeoutSeconds: 5,
	}, "koanf"), nil)

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
