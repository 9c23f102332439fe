package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/mobil-koeln/mvg-tui/internal/state"
)

// Config holds the user settings for the departure board.
type Config struct {
	// RefreshRate is the number of seconds between automatic refreshes.
	RefreshRate int
	// DisplaySeconds shows the seconds-since-refresh counter.
	DisplaySeconds bool
	// DisplaySecondsInterval is the counter granularity in seconds.
	DisplaySecondsInterval int
	// FavStationIdx is the station list index selected at startup.
	FavStationIdx *int
	FavDirections []string
	// Transport is the transport type allow-list; nil shows everything.
	Transport      []string
	DepartureLimit int
	APITimeout     time.Duration
	SearchMinChars int
	BaseURL        string

	// Path is the file the config was read from, empty for defaults.
	Path string
}

const (
	defaultRefreshRate            = 60
	defaultDisplaySecondsInterval = 10
	defaultDepartureLimit         = 40
	defaultAPITimeout             = 10
	defaultSearchMinChars         = 2
	defaultBaseURL                = "https://www.mvg.de"

	configDirName  = "mvg"
	configFileName = "config.toml"
)

// ErrInvalidConfig is matched by every ValidationError.
var ErrInvalidConfig = errors.New("invalid config")

// ValidationError describes a config value outside its allowed range.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s = %v: %s", e.Field, e.Value, e.Reason)
}

// Is allows errors.Is(err, ErrInvalidConfig).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

type rawConfig struct {
	RefreshRate            *int     `toml:"refresh_rate" yaml:"refresh_rate"`
	DisplaySeconds         *bool    `toml:"display_seconds" yaml:"display_seconds"`
	DisplaySecondsInterval *int     `toml:"display_seconds_interval" yaml:"display_seconds_interval"`
	FavStationIdx          *int     `toml:"fav_station_idx" yaml:"fav_station_idx"`
	FavDirections          []string `toml:"fav_directions" yaml:"fav_directions"`
	Transport              []string `toml:"transport" yaml:"transport"`
	DepartureLimit         *int     `toml:"departure_limit" yaml:"departure_limit"`
	APITimeout             *int     `toml:"api_timeout" yaml:"api_timeout"`
	SearchMinChars         *int     `toml:"search_min_chars" yaml:"search_min_chars"`
	BaseURL                string   `toml:"base_url" yaml:"base_url"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		RefreshRate:            defaultRefreshRate,
		DisplaySeconds:         true,
		DisplaySecondsInterval: defaultDisplaySecondsInterval,
		DepartureLimit:         defaultDepartureLimit,
		APITimeout:             defaultAPITimeout * time.Second,
		SearchMinChars:         defaultSearchMinChars,
		BaseURL:                defaultBaseURL,
	}
}

// Load reads the config at path. An empty path searches ./config.toml and
// then the user config directory, falling back to defaults when neither
// exists. An explicit path that does not exist is an error.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) != "" {
		resolved, err := expandPath(path)
		if err != nil {
			return Config{}, err
		}
		return loadFile(resolved)
	}

	for _, candidate := range searchPaths() {
		if _, err := os.Stat(candidate); err == nil {
			return loadFile(candidate)
		}
	}
	return Default(), nil
}

func searchPaths() []string {
	paths := []string{configFileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, configDirName, configFileName))
	}
	return paths
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml", "":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("parse config %s: unsupported format %q", path, ext)
	}

	cfg, err := raw.apply(Default())
	if err != nil {
		return Config{}, err
	}
	cfg.Path = path
	return cfg, nil
}

func (r rawConfig) apply(cfg Config) (Config, error) {
	if r.RefreshRate != nil {
		if *r.RefreshRate <= 0 {
			return Config{}, &ValidationError{Field: "refresh_rate", Value: *r.RefreshRate, Reason: "must be positive"}
		}
		cfg.RefreshRate = *r.RefreshRate
	}
	if r.DisplaySeconds != nil {
		cfg.DisplaySeconds = *r.DisplaySeconds
	}
	if r.DisplaySecondsInterval != nil {
		if *r.DisplaySecondsInterval <= 0 {
			return Config{}, &ValidationError{Field: "display_seconds_interval", Value: *r.DisplaySecondsInterval, Reason: "must be positive"}
		}
		cfg.DisplaySecondsInterval = *r.DisplaySecondsInterval
	}
	if r.FavStationIdx != nil {
		if *r.FavStationIdx < 0 {
			return Config{}, &ValidationError{Field: "fav_station_idx", Value: *r.FavStationIdx, Reason: "must not be negative"}
		}
		idx := *r.FavStationIdx
		cfg.FavStationIdx = &idx
	}
	if r.DepartureLimit != nil {
		if *r.DepartureLimit <= 0 {
			return Config{}, &ValidationError{Field: "departure_limit", Value: *r.DepartureLimit, Reason: "must be positive"}
		}
		cfg.DepartureLimit = *r.DepartureLimit
	}
	if r.APITimeout != nil {
		if *r.APITimeout <= 0 {
			return Config{}, &ValidationError{Field: "api_timeout", Value: *r.APITimeout, Reason: "must be positive"}
		}
		cfg.APITimeout = time.Duration(*r.APITimeout) * time.Second
	}
	if r.SearchMinChars != nil {
		if *r.SearchMinChars <= 0 {
			return Config{}, &ValidationError{Field: "search_min_chars", Value: *r.SearchMinChars, Reason: "must be positive"}
		}
		cfg.SearchMinChars = *r.SearchMinChars
	}
	if base := strings.TrimRight(strings.TrimSpace(r.BaseURL), "/"); base != "" {
		cfg.BaseURL = base
	}

	cfg.FavDirections = trimAll(r.FavDirections)
	if r.Transport != nil {
		cfg.Transport = trimAll(r.Transport)
		if cfg.Transport == nil {
			cfg.Transport = []string{}
		}
	}
	return cfg, nil
}

// Options returns the state machine settings derived from the config.
func (c Config) Options() state.Options {
	return state.Options{
		Transport:      c.Transport,
		FavDirections:  c.FavDirections,
		FavStationIdx:  c.FavStationIdx,
		DisplaySeconds: c.DisplaySeconds,
		RedrawInterval: c.DisplaySecondsInterval,
		SearchMinChars: c.SearchMinChars,
	}
}

// RefreshInterval returns the refresh rate as a duration.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshRate) * time.Second
}

// UnknownTransports returns the configured transport tags that are not in
// known, ignoring case. Unknown tags are kept; they just never match.
func (c Config) UnknownTransports(known []string) []string {
	var unknown []string
	for _, tag := range c.Transport {
		found := false
		for _, k := range known {
			if strings.EqualFold(tag, k) {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, tag)
		}
	}
	return unknown
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
