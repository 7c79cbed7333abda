package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrConfigFormatUnsupported reports a config file that is neither TOML nor YAML.
var ErrConfigFormatUnsupported = errors.New("mediasync config: unsupported file format")

// Format names a config file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor infers the encoding from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrConfigFormatUnsupported, path)
	}
}

// LoadFile reads path over DefaultConfig and validates the result. Keys absent
// from the file keep their defaults.
func LoadFile(path string) (Config, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("mediasync config: read %s: %w", path, err)
	}
	return Decode(data, format)
}

// Decode parses data over DefaultConfig and validates the result.
func Decode(data []byte, format Format) (Config, error) {
	cfg := DefaultConfig()
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("mediasync config: decode toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("mediasync config: decode yaml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrConfigFormatUnsupported, format)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
