// Package config provides configuration and path management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application name.
	AppName = "countries"

	// CacheDirName is the cache directory name.
	CacheDirName = ".countries"

	// CacheDirEnv overrides the default cache directory.
	CacheDirEnv = "COUNTRIES_CACHE_DIR"

	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "countries.yaml"

	// VendorDir is the subdirectory of the cache directory the builder writes to.
	VendorDir = "noiselabs/countries"

	// DataFileBase is the base name of every country data file.
	DataFileBase = "country"

	// MetadataFileName is the metadata file name written by the builder.
	MetadataFileName = "metadata.json"

	// DefaultLocale is used when a lookup names no locale.
	DefaultLocale = "en"

	// DefaultFormat is the default data file format.
	DefaultFormat = "json"
)

// Config holds runtime configuration.
type Config struct {
	CacheDir      string   `yaml:"cache_dir"`
	DataDir       string   `yaml:"data_dir"`
	Format        string   `yaml:"format"`
	Locales       []string `yaml:"locales"`
	CountriesFile string   `yaml:"countries_file"`

	// Source is the file the configuration was read from, empty for defaults.
	Source string `yaml:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		CacheDir: DefaultCacheDir(),
		Format:   DefaultFormat,
	}
}

// DefaultCacheDir returns the default cache directory path.
func DefaultCacheDir() string {
	if dir := os.Getenv(CacheDirEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory
		home = "."
	}
	return filepath.Join(home, CacheDirName, "cache")
}

// DefaultDataDir returns the directory the builder writes to by default.
func DefaultDataDir() string {
	return DataDir(DefaultCacheDir())
}

// DataDir returns the country data directory inside a cache directory.
func DataDir(cacheDir string) string {
	return filepath.Join(cacheDir, filepath.FromSlash(VendorDir))
}

// SourceDir returns the directory holding every locale of one source.
func SourceDir(dataDir, source string) string {
	return filepath.Join(dataDir, source)
}

// DataFilePath returns the data file path for a source and locale.
func DataFilePath(dataDir, source, locale, format string) string {
	return filepath.Join(SourceDir(dataDir, source), locale, DataFileBase+"."+format)
}

// MetadataPath returns the metadata file path for a data directory.
func MetadataPath(dataDir string) string {
	return filepath.Join(dataDir, MetadataFileName)
}

// Load reads the configuration file. An explicit path must exist; without
// one the standard locations are searched and defaults are returned when
// nothing is found.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Source = path
	cfg.Format = strings.ToLower(cfg.Format)
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultCacheDir()
	}

	return cfg, nil
}

// ResolvedDataDir returns DataDir, or the data directory inside CacheDir.
func (c *Config) ResolvedDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return DataDir(c.CacheDir)
}

func findConfigFile() string {
	candidates := []string{
		os.Getenv("XDG_CONFIG_HOME"),
		os.Getenv("HOME"),
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		file := filepath.Join(c, ConfigFileName)
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			log.Debugf("using config file: %s", file)
			return file
		}
	}
	return ""
}
