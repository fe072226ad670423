// Package config loads csvingest settings from defaults, an optional YAML
// file, CSVINGEST_ environment variables and command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ConfigFileName is the name of the config file looked up in the working directory.
const ConfigFileName = "csvingest.yaml"

// EnvPrefix is the prefix of environment variables read into the settings.
const EnvPrefix = "CSVINGEST_"

// Defaults
const (
	DefaultStreamThreshold int64 = 2 * 1000 * 1000
	DefaultLogLevel              = "warn"
	DefaultFormat                = "table"
)

// Settings holds the resolved configuration.
type Settings struct {
	// StreamThreshold is the file size in bytes above which files are streamed.
	StreamThreshold int64 `koanf:"stream_threshold"`
	// BufferHint is a requested streaming buffer size in bytes (0 for none).
	BufferHint int `koanf:"buffer_hint"`
	// Workers limits concurrent file parses (0 for GOMAXPROCS).
	Workers int `koanf:"workers"`
	// Validate enables column count validation.
	Validate bool `koanf:"validate"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// Format is the output format of the CLI (table, json or csv).
	Format string `koanf:"format"`

	// File is the config file that was loaded, empty if none.
	File string `koanf:"-"`
}

// Load resolves settings. Precedence (highest to lowest): flags > env vars >
// config file > defaults. cfgFile may be empty to look for ConfigFileName in
// the working directory; flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Settings, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"stream_threshold": DefaultStreamThreshold,
		"buffer_hint":      0,
		"workers":          0,
		"validate":         false,
		"log_level":        DefaultLogLevel,
		"format":           DefaultFormat,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if cfgFile != "" && used == "" {
		return nil, fmt.Errorf("config file not found: %s", cfgFile)
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: CSVINGEST_BUFFER_HINT -> buffer_hint
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	s.File = used
	return &s, nil
}

// findConfigFile returns the explicit path if it exists, else ConfigFileName
// in the working directory if present, else "".
func findConfigFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	return ""
}

// Level parses LogLevel, defaulting to warn.
func (s *Settings) Level() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
