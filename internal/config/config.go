// Package config loads the wishctl settings from a YAML file, an optional
// .env file and WISHFORM_* environment variables, in that order of
// precedence (environment wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "WISHFORM_"

// Config holds the settings shared by every wishctl front end.
type Config struct {
	BaseURL      string `yaml:"base_url" validate:"required,url"`
	APIKey       string `yaml:"api_key"`
	LogLevel     string `yaml:"log_level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Listen       string `yaml:"listen" validate:"required,hostname_port"`
	Theme        string `yaml:"theme"`
	Variant      string `yaml:"variant"`
	SilentCreate bool   `yaml:"silent_create"`
	Contract     string `yaml:"contract"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		BaseURL:  "http://localhost:8080",
		LogLevel: "info",
		Listen:   ":8090",
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// empty), the given .env files and the environment. Missing .env files are
// ignored.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: env file %s: %w", file, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, target *string) {
		if value, ok := os.LookupEnv(envPrefix + key); ok {
			*target = strings.TrimSpace(value)
		}
	}
	setString("BASE_URL", &c.BaseURL)
	setString("API_KEY", &c.APIKey)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("LISTEN", &c.Listen)
	setString("THEME", &c.Theme)
	setString("VARIANT", &c.Variant)
	setString("CONTRACT", &c.Contract)

	if value, ok := os.LookupEnv(envPrefix + "SILENT_CREATE"); ok {
		silent, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: %sSILENT_CREATE: %w", envPrefix, err)
		}
		c.SilentCreate = silent
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate reports the first invalid setting by its YAML key.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return fmt.Errorf("config: %w", err)
	}
	fe := validationErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("config: %s is required", fe.Field())
	case "oneof":
		return fmt.Errorf("config: %s must be one of: %s", fe.Field(), fe.Param())
	case "url":
		return fmt.Errorf("config: %s must be an absolute URL", fe.Field())
	case "hostname_port":
		return fmt.Errorf("config: %s must be host:port", fe.Field())
	default:
		return fmt.Errorf("config: %s is invalid", fe.Field())
	}
}
