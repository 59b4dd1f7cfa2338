// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// configs is used to store the values of the different parameters of a
// Manager.
type configs struct {
	jointh    float64      // tolerance used to merge similar sibling leaves
	lpcallth  float64      // radius under which we do not call the LP solver
	lptol     float64      // tolerance of the simplex
	cachesize int          // number of entries in each operation cache
	logger    *slog.Logger // nil means the default logger
	metrics   Recorder     // nil means no metrics
}

func makeconfigs() *configs {
	return &configs{
		jointh:    _JOINTH,
		lpcallth:  _LPCALLTH,
		lptol:     _LPTOL,
		cachesize: _DEFAULTCACHESIZE,
	}
}

// JoinThreshold is a configuration option (function). Used as a parameter in
// New it sets the tolerance under which two sibling leaves of an AADD are
// merged into a single leaf. A larger value gives smaller diagrams but less
// precise bounds. The default value is 0.001. Use 0 to never merge leaves.
func JoinThreshold(tol float64) func(*configs) {
	return func(c *configs) {
		if tol >= 0 {
			c.jointh = tol
		}
	}
}

// LPCallThreshold is a configuration option (function). Used as a parameter in
// New it sets the radius of a leaf under which we do not try to improve its
// bounds with the LP solver. The default value is 0.001.
func LPCallThreshold(radius float64) func(*configs) {
	return func(c *configs) {
		if radius >= 0 {
			c.lpcallth = radius
		}
	}
}

// LPTolerance is a configuration option (function). Used as a parameter in New
// it sets the tolerance on reduced costs used by the simplex. The default value
// is 1e-10.
func LPTolerance(tol float64) func(*configs) {
	return func(c *configs) {
		if tol > 0 {
			c.lptol = tol
		}
	}
}

// Cachesize is a configuration option (function). Used as a parameter in New it
// sets the number of entries in the operation caches. The value is rounded up
// to a prime number. The default value is 10 000.
func Cachesize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.cachesize = size
		}
	}
}

// Logger is a configuration option (function). Used as a parameter in New it
// sets the structured logger used by the Manager. By default nothing is
// logged, unless the library is compiled with the debug build tag.
func Logger(l *slog.Logger) func(*configs) {
	return func(c *configs) {
		c.logger = l
	}
}

// Metrics is a configuration option (function). Used as a parameter in New it
// sets the recorder used to report statistics on LP calls, conditions and leaf
// merges. See NewPrometheusRecorder.
func Metrics(r Recorder) func(*configs) {
	return func(c *configs) {
		c.metrics = r
	}
}

// Settings is the content of a settings file. Fields with a zero value keep
// their default.
type Settings struct {
	JoinThreshold   float64 `yaml:"join_threshold"`
	LPCallThreshold float64 `yaml:"lp_call_threshold"`
	LPTolerance     float64 `yaml:"lp_tolerance"`
	CacheSize       int     `yaml:"cache_size"`
}

// ReadSettings decodes settings in YAML format.
func ReadSettings(r io.Reader) (Settings, error) {
	var s Settings
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return s, nil
		}
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadSettings reads the settings file at path.
func LoadSettings(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("loading settings: %w", err)
	}
	defer f.Close()
	s, err := ReadSettings(f)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s Settings) validate() error {
	switch {
	case s.JoinThreshold < 0:
		return fmt.Errorf("join_threshold %g is negative: %w", s.JoinThreshold, ErrBadConfig)
	case s.LPCallThreshold < 0:
		return fmt.Errorf("lp_call_threshold %g is negative: %w", s.LPCallThreshold, ErrBadConfig)
	case s.LPTolerance < 0:
		return fmt.Errorf("lp_tolerance %g is negative: %w", s.LPTolerance, ErrBadConfig)
	case s.CacheSize < 0:
		return fmt.Errorf("cache_size %d is negative: %w", s.CacheSize, ErrBadConfig)
	}
	return nil
}

// Options returns the configuration options matching the non-zero fields of s.
func (s Settings) Options() []func(*configs) {
	var opts []func(*configs)
	if s.JoinThreshold > 0 {
		opts = append(opts, JoinThreshold(s.JoinThreshold))
	}
	if s.LPCallThreshold > 0 {
		opts = append(opts, LPCallThreshold(s.LPCallThreshold))
	}
	if s.LPTolerance > 0 {
		opts = append(opts, LPTolerance(s.LPTolerance))
	}
	if s.CacheSize > 0 {
		opts = append(opts, Cachesize(s.CacheSize))
	}
	return opts
}
