// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/ManuGH/kpai/internal/host"
	"github.com/ManuGH/kpai/internal/log"
	"github.com/ManuGH/kpai/internal/metrics"
	"github.com/ManuGH/kpai/internal/policy"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Loader builds a Store with precedence: ENV > in-memory overrides > File > Defaults.
// Runtime settings passed as options (WithProfile, WithDataDir) beat the environment.
type Loader struct {
	configPath      string
	host            host.Constants
	overrides       map[string]any
	profile         string
	dataDir         string
	lenient         bool
	ignoreEnv       bool
	logger          zerolog.Logger
	ConsumedEnvKeys map[string]struct{} // Mechanical tracking of consumed keys
}

// Option configures a Loader.
type Option func(*Loader)

// WithOverrides sets the in-memory override table. Keys are option names.
func WithOverrides(overrides map[string]any) Option {
	return func(l *Loader) { l.overrides = overrides }
}

// WithProfile selects the policy profile, taking precedence over the file
// and KPAI_PROFILE.
func WithProfile(name string) Option {
	return func(l *Loader) { l.profile = name }
}

// WithDataDir sets the data directory, taking precedence over the file and KPAI_DATA.
func WithDataDir(dir string) Option {
	return func(l *Loader) { l.dataDir = dir }
}

// WithLenient makes unknown override keys a warning instead of an error.
func WithLenient() Option {
	return func(l *Loader) { l.lenient = true }
}

// WithLogger replaces the loader's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithoutEnv disables environment overrides.
func WithoutEnv() Option {
	return func(l *Loader) { l.ignoreEnv = true }
}

// NewLoader creates a new configuration loader. configPath may be empty.
func NewLoader(configPath string, hc host.Constants, opts ...Option) *Loader {
	l := &Loader{
		configPath:      configPath,
		host:            hc,
		logger:          log.WithComponent("config"),
		ConsumedEnvKeys: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// New builds a Store from registry defaults overlaid by overrides.
// The environment and override files are not consulted.
func New(hc host.Constants, overrides map[string]any) (*Store, error) {
	return NewLoader("", hc, WithOverrides(overrides), WithoutEnv()).Load()
}

// Wrapper methods for mechanical connection tracking

func (l *Loader) envString(key, defaultVal string) string {
	if l.ignoreEnv {
		return defaultVal
	}
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

func (l *Loader) envBool(key string, defaultVal bool) bool {
	if l.ignoreEnv {
		return defaultVal
	}
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseBool(key, defaultVal)
}

func (l *Loader) envInt(key string, defaultVal int) int {
	if l.ignoreEnv {
		return defaultVal
	}
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt(key, defaultVal)
}

func (l *Loader) envLookup(key string) (string, bool) {
	if l.ignoreEnv {
		return "", false
	}
	l.ConsumedEnvKeys[key] = struct{}{}
	return os.LookupEnv(key)
}

// Load builds the configuration table.
// It enforces Strict Validated Order: Defaults -> File (Strict) -> Overrides -> Env -> Options -> Validate
func (l *Loader) Load() (store *Store, err error) {
	defer func() { metrics.RecordConfigLoad(err) }()

	if err := l.host.Validate(); err != nil {
		return nil, err
	}
	reg, err := GetRegistry()
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}

	// 1. Set defaults
	var t Tuning
	if err := reg.ApplyDefaults(&t, l.host); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}
	sources := make(map[string]Source, len(reg.ByName))
	for name := range reg.ByName {
		sources[name] = SourceDefault
	}
	rt := defaultRuntime()

	// 2. Load from file (if provided)
	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
		mergeFileRuntime(&rt, fileCfg)
		if err := l.applyOverrides(reg, &t, sources, fileCfg.Overrides, SourceFile); err != nil {
			return nil, fmt.Errorf("file overrides: %w", err)
		}
	}

	// 3. In-memory overrides
	if err := l.applyOverrides(reg, &t, sources, l.overrides, SourceOverride); err != nil {
		return nil, fmt.Errorf("overrides: %w", err)
	}

	// 4. Override with environment variables
	l.mergeEnvRuntime(&rt)
	l.mergeEnvTuning(reg, &t, sources)

	// 5. Explicit runtime options
	if l.profile != "" {
		rt.Profile = l.profile
	}
	if l.dataDir != "" {
		rt.DataDir = l.dataDir
	}

	if rt.Profile == "" {
		rt.Profile = policy.DefaultProfile
	}
	if abs, err := filepath.Abs(rt.DataDir); err == nil {
		rt.DataDir = abs
	}

	// 6. Validate final configuration
	profile, err := policy.Lookup(rt.Profile)
	if err != nil {
		return nil, err
	}
	if err := Validate(t, rt); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return newStore(reg, t, rt, profile, l.host, sources), nil
}

// loadFile loads the override file with STRICT parsing.
// Unknown top-level fields cause a fatal error to prevent misconfiguration.
func (l *Loader) loadFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- override file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // Reject unknown fields

	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &FileConfig{}, nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("strict config parse error: %w: %v", ErrUnknownConfigField, err)
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	// Strict: Ensure no multiple documents or trailing content
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	l.logger.Debug().Str(log.FieldPath, path).Int("overrides", len(fileCfg.Overrides)).Msg("override file loaded")
	return &fileCfg, nil
}

func mergeFileRuntime(rt *Runtime, fc *FileConfig) {
	if fc.Profile != "" {
		rt.Profile = fc.Profile
	}
	if fc.LogLevel != "" {
		rt.LogLevel = fc.LogLevel
	}
	if fc.DataDir != "" {
		rt.DataDir = os.ExpandEnv(fc.DataDir)
	}
	if d := fc.Diagnostics; d != nil {
		if d.StatusInterval != nil {
			rt.StatusInterval = *d.StatusInterval
		}
		if d.Compress != nil {
			rt.CompressStatus = *d.Compress
		}
		if d.StatusFile != "" {
			rt.StatusFile = d.StatusFile
		}
	}
}

func (l *Loader) applyOverrides(reg *Registry, t *Tuning, sources map[string]Source, overrides map[string]any, src Source) error {
	if len(overrides) == 0 {
		return nil
	}
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	v := reflect.ValueOf(t).Elem()
	for _, name := range names {
		entry, ok := reg.ByName[name]
		if !ok {
			if l.lenient {
				l.logger.Warn().
					Str(log.FieldOption, name).
					Str(log.FieldSource, string(src)).
					Msg("ignoring unknown tuning option")
				metrics.RecordRejectedOption()
				continue
			}
			return fmt.Errorf("%w: %q", ErrUnknownOption, name)
		}
		val, err := coerce(v.FieldByName(entry.FieldPath).Type(), overrides[name])
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := setField(v, entry.FieldPath, val); err != nil {
			return fmt.Errorf("%s: %w: %v", name, ErrInvalidValue, err)
		}
		sources[name] = src
	}
	return nil
}

func (l *Loader) mergeEnvRuntime(rt *Runtime) {
	rt.Profile = l.envString("KPAI_PROFILE", rt.Profile)
	rt.LogLevel = l.envString("KPAI_LOG_LEVEL", rt.LogLevel)
	rt.DataDir = l.envString("KPAI_DATA", rt.DataDir)
	rt.StatusInterval = l.envInt("KPAI_STATUS_INTERVAL", rt.StatusInterval)
	rt.CompressStatus = l.envBool("KPAI_STATUS_COMPRESS", rt.CompressStatus)
	rt.StatusFile = l.envString("KPAI_STATUS_FILE", rt.StatusFile)
}

// mergeEnvTuning applies KPAI_* tuning variables. Unparsable values are
// logged and skipped, as with the other environment settings.
func (l *Loader) mergeEnvTuning(reg *Registry, t *Tuning, sources map[string]Source) {
	v := reflect.ValueOf(t).Elem()
	for _, name := range reg.Names() {
		entry := reg.ByName[name]
		if entry.Env == "" {
			continue
		}
		raw, ok := l.envLookup(entry.Env)
		if !ok || raw == "" {
			continue
		}
		val, err := coerceString(v.FieldByName(entry.FieldPath).Type(), raw)
		if err != nil {
			l.logger.Warn().
				Err(err).
				Str("key", entry.Env).
				Str(log.FieldOption, name).
				Msg("invalid value in environment variable, keeping previous value")
			continue
		}
		if err := setField(v, entry.FieldPath, val); err != nil {
			l.logger.Warn().Err(err).Str("key", entry.Env).Msg("cannot apply environment variable")
			continue
		}
		sources[name] = SourceEnv
		l.logger.Debug().
			Str("key", entry.Env).
			Str(log.FieldOption, name).
			Str(log.FieldSource, string(SourceEnv)).
			Msg("using environment variable")
	}
}
