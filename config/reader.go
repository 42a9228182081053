package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a config file.
type Format string

// Supported config formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Errorf("unsupported config file extension %q", ext)
	}
}

// Read reads a config from the given file.
func Read(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open config")
	}
	defer func() {
		//nolint:errcheck
		f.Close()
	}()
	cfg, err := FromReader(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read config %q", path)
	}
	return cfg, nil
}

// FromReader decodes a config on top of the defaults and validates it. Unknown keys are rejected.
func FromReader(r io.Reader, format Format) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if len(bytes.TrimSpace(data)) != 0 {
		switch format {
		case FormatJSON:
			dec := json.NewDecoder(bytes.NewReader(data))
			dec.DisallowUnknownFields()
			err = dec.Decode(cfg)
		case FormatYAML:
			dec := yaml.NewDecoder(bytes.NewReader(data))
			dec.KnownFields(true)
			err = dec.Decode(cfg)
		default:
			err = errors.Errorf("unknown config format %q", format)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
