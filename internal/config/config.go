package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/mlutils/internal/anim"
	"github.com/san-kum/mlutils/internal/dataset"
)

const (
	DefaultDataDir   = "./data"
	DefaultTestSize  = 0.25
	DefaultChunkSize = 1024
	DefaultTimeout   = 60 * time.Second
	DefaultWidth     = 6.4
	DefaultHeight    = 4.8
	DefaultDPI       = 100
	DefaultColor     = "#e24a33"
)

type Config struct {
	DataDir   string          `yaml:"data_dir"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Animation AnimationConfig `yaml:"animation"`
}

type DatasetConfig struct {
	Mode     string  `yaml:"mode"`
	BaseURL  string  `yaml:"base_url"`
	TestSize float64 `yaml:"test_size"`
	Seed     int64   `yaml:"seed"`
}

type FetchConfig struct {
	ChunkSize    int           `yaml:"chunk_size"`
	Timeout      time.Duration `yaml:"timeout"`
	MetadataPath string        `yaml:"metadata_path"`
}

// AnimationConfig sizes are in inches.
type AnimationConfig struct {
	Kind         string  `yaml:"kind"`
	IntegerTicks bool    `yaml:"integer_ticks"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	DPI          int     `yaml:"dpi"`
	Color        string  `yaml:"color"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir,
		Dataset: DatasetConfig{
			Mode:     "array",
			BaseURL:  dataset.DefaultBaseURL,
			TestSize: DefaultTestSize,
			Seed:     dataset.RandomSeed,
		},
		Fetch: FetchConfig{
			ChunkSize:    DefaultChunkSize,
			Timeout:      DefaultTimeout,
			MetadataPath: "datasets_metadata.json",
		},
		Animation: AnimationConfig{
			Kind:         "line",
			IntegerTicks: true,
			Width:        DefaultWidth,
			Height:       DefaultHeight,
			DPI:          DefaultDPI,
			Color:        DefaultColor,
		},
	}
}

// Load overlays the file at path on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs error
	if c.DataDir == "" {
		errs = multierror.Append(errs, fmt.Errorf("data_dir is empty"))
	}
	if _, err := dataset.ParseMode(c.Dataset.Mode); err != nil {
		errs = multierror.Append(errs, err)
	}
	if !(c.Dataset.TestSize > 0 && c.Dataset.TestSize < 1) {
		errs = multierror.Append(errs, fmt.Errorf("dataset.test_size %v not in (0, 1)", c.Dataset.TestSize))
	}
	if c.Fetch.ChunkSize <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("fetch.chunk_size must be positive"))
	}
	if c.Fetch.Timeout < 0 {
		errs = multierror.Append(errs, fmt.Errorf("fetch.timeout is negative"))
	}
	if _, err := anim.ParsePlotKind(c.Animation.Kind); err != nil {
		errs = multierror.Append(errs, err)
	}
	if c.Animation.Width <= 0 || c.Animation.Height <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("animation size %vx%v must be positive", c.Animation.Width, c.Animation.Height))
	}
	if c.Animation.DPI <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("animation.dpi must be positive"))
	}
	if _, err := colorful.Hex(c.Animation.Color); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("animation.color: %w", err))
	}
	return errs
}

func (c *Config) Mode() (dataset.Mode, error) {
	return dataset.ParseMode(c.Dataset.Mode)
}

func (c *Config) PlotKind() (anim.PlotKind, error) {
	return anim.ParsePlotKind(c.Animation.Kind)
}
