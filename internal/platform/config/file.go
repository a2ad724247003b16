package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	perr "einwurf/internal/platform/errors"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DecodeFile reads path and decodes it into dst, picking the codec by file extension
// (.toml, .yaml, .yml). Unknown keys are ignored. Every failure carries ErrorCodeConfig
func DecodeFile(path string, dst any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return perr.WithOp(perr.Wrapf(err, perr.ErrorCodeConfig, "read config %s", path), "config.decode_file")
	}
	if err := Decode(filepath.Ext(path), b, dst); err != nil {
		return perr.WithOp(err, "config.decode_file")
	}
	return nil
}

// Decode decodes b into dst using the codec registered for ext
func Decode(ext string, b []byte, dst any) error {
	switch strings.ToLower(ext) {
	case ".toml":
		return decodeTOML(b, dst)
	case ".yaml", ".yml":
		return decodeYAML(b, dst)
	default:
		return perr.Configf("unsupported config format %q (want .toml, .yaml or .yml)", ext)
	}
}

func decodeTOML(b []byte, dst any) error {
	if _, err := toml.NewDecoder(bytes.NewReader(b)).Decode(dst); err != nil {
		return perr.Wrap(err, perr.ErrorCodeConfig, "invalid TOML")
	}
	return nil
}

func decodeYAML(b []byte, dst any) error {
	if err := yaml.NewDecoder(bytes.NewReader(b)).Decode(dst); err != nil {
		return perr.Wrap(err, perr.ErrorCodeConfig, "invalid YAML")
	}
	return nil
}
