// Package config loads YAML settings shared by the geohash tools
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kass/go-geohash/pkg/geohash"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFile is read first
	DefaultFile = "config.yaml"
	// ExampleFile is read when DefaultFile does not exist
	ExampleFile = "config.yaml.example"
)

// Config structure for YAML configuration
type Config struct {
	Geohash struct {
		Precision int `yaml:"precision"`
	} `yaml:"geohash"`
	Index struct {
		File       string `yaml:"file"`
		Partitions int    `yaml:"partitions"`
	} `yaml:"index"`
	PostGIS PostGIS `yaml:"postgis"`
	Log     struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	// Source is the file the configuration was read from, empty for defaults
	Source string `yaml:"-"`
}

// PostGIS holds the connection settings of the PostGIS cell store
type PostGIS struct {
	Host              string `yaml:"host"`
	Port              int    `yaml:"port"`
	User              string `yaml:"user"`
	Password          string `yaml:"password"`
	Database          string `yaml:"database"`
	SSLMode           string `yaml:"sslmode"`
	MaxConnections    int    `yaml:"max_connections"`
	ConnectionTimeout int    `yaml:"connection_timeout"`
}

// DSN returns the lib/pq connection string
func (p PostGIS) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode, p.ConnectionTimeout)
}

// Default returns the built-in configuration
func Default() Config {
	var c Config
	c.Geohash.Precision = 8
	c.Index.File = "geohash_index.gob"
	c.Index.Partitions = 0
	c.PostGIS = PostGIS{
		Host:              "localhost",
		Port:              5432,
		User:              "postgres",
		Password:          "postgres",
		Database:          "geodb",
		SSLMode:           "disable",
		MaxConnections:    25,
		ConnectionTimeout: 5,
	}
	c.Log.Level = "info"
	c.Log.Format = "text"
	return c
}

// Validate checks values that the tools cannot recover from
func (c Config) Validate() error {
	if c.Geohash.Precision < 1 || c.Geohash.Precision > geohash.MaxLength {
		return fmt.Errorf("geohash.precision must be between 1 and %d, got %d", geohash.MaxLength, c.Geohash.Precision)
	}
	if c.Index.Partitions < 0 {
		return fmt.Errorf("index.partitions must not be negative, got %d", c.Index.Partitions)
	}
	if c.PostGIS.Port <= 0 || c.PostGIS.Port > 65535 {
		return fmt.Errorf("postgis.port out of range: %d", c.PostGIS.Port)
	}
	return nil
}

// LoadFile reads a single YAML file on top of the defaults
func LoadFile(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid config %s: %w", path, err)
	}
	c.Source = path
	return c, nil
}

// Load reads path when given. Otherwise it tries config.yaml, then
// config.yaml.example, and falls back to the defaults when neither exists.
func Load(path string) (Config, error) {
	if path != "" {
		return LoadFile(path)
	}

	for _, candidate := range []string{DefaultFile, ExampleFile} {
		c, err := LoadFile(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return c, err
	}
	return Default(), nil
}
