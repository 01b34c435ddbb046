// Package config reads the optional YAML file that overrides scene and host
// settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"kate/stage"
)

// File is the decoded config file. Fields left out keep their defaults.
type File struct {
	Font    string  `yaml:"font"`
	Seed    uint64  `yaml:"seed"`
	Hz      int     `yaml:"hz"`
	Workers int     `yaml:"workers"`
	Scale   float64 `yaml:"scale"`
	HUD     bool    `yaml:"hud"`

	Window Window `yaml:"window"`

	Scene stage.Params `yaml:"scene"`
}

// Window is the initial desktop window size.
type Window struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default returns the settings used without a config file.
func Default() File {
	f := File{Scene: stage.DefaultParams()}
	f.normalize()
	return f
}

func (f *File) normalize() {
	if f.Hz <= 0 {
		f.Hz = 60
	}
	if f.Workers <= 0 {
		f.Workers = runtime.NumCPU()
	}
	if f.Scale <= 0 {
		f.Scale = 1
	}
	if f.Window.Width <= 0 || f.Window.Height <= 0 {
		f.Window = Window{Width: 960, Height: 540}
	}
}

// Load reads a config file. Unknown keys are errors.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes YAML on top of the defaults and validates the scene.
func Parse(data []byte) (File, error) {
	f := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, err
	}
	f.normalize()
	if err := f.Scene.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}
