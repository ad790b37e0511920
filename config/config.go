// Package config loads harmonet settings from an optional TOML file,
// overridden by HARMONET_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jsphweid/harmonet/constants"
	"github.com/jsphweid/harmonet/pitch"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	// Vocab is the chord vocabulary file (.json or .gob). Empty means the
	// built-in diatonic vocabulary over Keys.
	Vocab  string `toml:"vocab"`
	OutDir string `toml:"out_dir"`
	Port   int    `toml:"port"`
	// Seed makes texture choice reproducible when set.
	Seed  *uint64 `toml:"seed"`
	BPM   float64 `toml:"bpm"`
	Watch bool    `toml:"watch"`

	// Keys is the transposition key vocabulary; Intervals the interval
	// classes tried by the selector.
	Keys      []string `toml:"keys"`
	Intervals []string `toml:"intervals"`
}

func Default() Config {
	keys := pitch.DefaultTranspositionKeys()
	tokens := make([]string, len(keys))
	for i, k := range keys {
		tokens[i] = k.String()
	}
	ivs := pitch.DefaultIntervals()
	names := make([]string, len(ivs))
	for i, iv := range ivs {
		names[i] = iv.Name
	}
	return Config{
		OutDir:    "./out",
		Port:      8080,
		BPM:       120,
		Keys:      tokens,
		Intervals: names,
	}
}

// Load reads path over the defaults, then applies the environment. A
// missing file is only an error when required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !required:
		case err != nil:
			return cfg, fmt.Errorf("could not read config: %w", err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("could not parse %v: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if v := constants.GetVocabPath(); v != "" {
		c.Vocab = v
	}
	if _, ok := os.LookupEnv("HARMONET_OUT"); ok {
		c.OutDir = constants.GetOutDir()
	}
	if _, ok := os.LookupEnv("HARMONET_PORT"); ok {
		c.Port = constants.GetPort()
	}
	if seed, ok := constants.GetSeed(); ok {
		c.Seed = &seed
	}
}

func (c Config) Validate() error {
	if _, err := c.TranspositionKeys(); err != nil {
		return err
	}
	if _, err := c.IntervalClasses(); err != nil {
		return err
	}
	if c.BPM <= 0 {
		return fmt.Errorf("bpm must be positive, got %v", c.BPM)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

func (c Config) TranspositionKeys() ([]pitch.Key, error) {
	return pitch.ParseKeys(c.Keys)
}

func (c Config) IntervalClasses() ([]pitch.Interval, error) {
	return pitch.ParseIntervals(c.Intervals)
}
