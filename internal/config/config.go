// Package config loads the pydocfmt configuration file and environment
// overrides.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"pydocfmt/internal/docstring"
)

// DefaultPath is the configuration file looked up when --config is not set.
const DefaultPath = ".pydocfmt.yaml"

// Section is the YAML shape of one docstring section.
type Section struct {
	Name        string `yaml:"name"`
	Marker      string `yaml:"marker"`
	Width       int    `yaml:"width"`
	CodeExample *struct {
		StartMarker string `yaml:"start_marker"`
		EndMarker   string `yaml:"end_marker"`
	} `yaml:"code_example"`
}

type Config struct {
	Docstrings struct {
		Sections []Section `yaml:"sections"`
	} `yaml:"docstrings"`
	Black struct {
		Path       string   `yaml:"path"`
		LineLength int      `yaml:"line_length"`
		Args       []string `yaml:"args"`
		Skip       bool     `yaml:"skip"`
	} `yaml:"black"`
	Isort struct {
		Path string   `yaml:"path"`
		Args []string `yaml:"args"`
		Skip bool     `yaml:"skip"`
	} `yaml:"isort"`
	Cache struct {
		Path string `yaml:"path"`
	} `yaml:"cache"`
}

// Load reads the YAML configuration at path. A .env file, when present, is
// loaded first; a few environment variables override the file afterwards.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Black.Path == "" {
		c.Black.Path = "black"
	}
	if c.Isort.Path == "" {
		c.Isort.Path = "isort"
	}
	if c.Cache.Path == "" {
		c.Cache.Path = ".pydocfmt.db"
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PYDOCFMT_BLACK_PATH"); v != "" {
		c.Black.Path = v
	}
	if v := os.Getenv("PYDOCFMT_ISORT_PATH"); v != "" {
		c.Isort.Path = v
	}
	if v := os.Getenv("PYDOCFMT_CACHE_PATH"); v != "" {
		c.Cache.Path = v
	}
}

// Schema converts the configured sections into the core schema, applying the
// default width to sections that omit one.
func (c *Config) Schema() docstring.Schema {
	schema := make(docstring.Schema, 0, len(c.Docstrings.Sections))
	for _, s := range c.Docstrings.Sections {
		spec := docstring.SectionSpec{
			Name:   s.Name,
			Marker: s.Marker,
			Width:  s.Width,
		}
		if spec.Width <= 0 {
			spec.Width = docstring.DefaultWidth
		}
		if s.CodeExample != nil {
			spec.CodeExample = &docstring.CodeExample{
				StartMarker: s.CodeExample.StartMarker,
				EndMarker:   s.CodeExample.EndMarker,
			}
		}
		schema = append(schema, spec)
	}
	return schema
}
