// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"io"
	"os"

	"github.com/aclements/gramgraph/theme"
	"gopkg.in/yaml.v3"
)

// Config is a configuration file. Zero fields are unset.
type Config struct {
	Width   int               `yaml:"width"`
	Height  int               `yaml:"height"`
	Format  string            `yaml:"format"`
	Palette string            `yaml:"palette"`
	Vars    map[string]string `yaml:"vars"`
	// Theme is the path of a YAML theme file, relative to the
	// working directory.
	Theme string `yaml:"theme"`
	// DPIScale is the PNG supersampling factor.
	DPIScale int `yaml:"dpi_scale"`
}

// ReadConfig decodes a YAML configuration. Unknown keys are errors.
func ReadConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Config
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("config: %w", err)
	}
	if c.Width < 0 || c.Height < 0 {
		return nil, fmt.Errorf("config: negative canvas size %dx%d", c.Width, c.Height)
	}
	if c.DPIScale < 0 {
		return nil, fmt.Errorf("config: negative dpi_scale %d", c.DPIScale)
	}
	return &c, nil
}

// LoadConfig reads the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := ReadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadTheme reads the YAML theme file at path.
func LoadTheme(path string) (theme.Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return theme.Sheet{}, err
	}
	defer f.Close()
	s, err := theme.LoadYAML(f)
	if err != nil {
		return theme.Sheet{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
