// Package config loads the optional rc file with default output settings.
// Command-line flags always win over rc values.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultConfigFilename = ".bunyanrc.yaml"

type File struct {
	Output    string `yaml:"output,omitempty"` // long|short|simple|inspect|json|json-N
	Level     string `yaml:"level,omitempty"`  // name or numeric code
	Time      string `yaml:"time,omitempty"`   // utc|local
	Color     *bool  `yaml:"color,omitempty"`
	Strict    bool   `yaml:"strict,omitempty"`
	Condition string `yaml:"condition,omitempty"`
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigFilename
	}
	return filepath.Join(home, DefaultConfigFilename)
}

func LoadFromFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	var cfg File
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config yaml")
	}
	return &cfg, nil
}

func LoadOptional(path string) (*File, error) {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, errors.Wrap(err, "stat config")
	}
	return LoadFromFile(path)
}
