package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoLambdasPath = errors.New("config is missing the lambdas path")
	ErrNoSamplesPath = errors.New("config is missing the samples path")
	ErrNoOutputPath  = errors.New("config is missing the output path")
	ErrBadChart      = errors.New("chart requires positive width and height")
)

// Config describes one projection run.
type Config struct {
	// Lambdas is the path to the model description file.
	Lambdas string `yaml:"lambdas" json:"lambdas"`
	// Samples is the path to the predictor CSV, gzipped when it ends in .gz.
	Samples string `yaml:"samples" json:"samples"`
	// Output is the path the prediction CSV is written to, gzipped when it
	// ends in .gz.
	Output string `yaml:"output" json:"output"`

	// NoData overrides the cell token mapped to NaN.
	NoData string `yaml:"nodata" json:"nodata"`
	// Categorical lists the sample columns holding category codes.
	Categorical []string `yaml:"categorical" json:"categorical"`
	// Drop lists the sample columns to ignore, e.g. species and coordinates.
	Drop []string `yaml:"drop" json:"drop"`

	Workers   int `yaml:"workers" json:"workers"`
	BatchSize int `yaml:"batch_size" json:"batch_size"`

	// Chart optionally renders the predictions as an HTML grid.
	Chart struct {
		Path   string `yaml:"path" json:"path"`
		Width  int    `yaml:"width" json:"width"`
		Height int    `yaml:"height" json:"height"`
	} `yaml:"chart" json:"chart"`
}

// LoadFromYAML loads a run configuration from a YAML file.
func LoadFromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config, %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config, %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Lambdas == "" {
		return ErrNoLambdasPath
	}
	if c.Samples == "" {
		return ErrNoSamplesPath
	}
	if c.Output == "" {
		return ErrNoOutputPath
	}
	if c.Chart.Path != "" && (c.Chart.Width <= 0 || c.Chart.Height <= 0) {
		return ErrBadChart
	}
	return nil
}
