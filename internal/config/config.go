package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/cheerioskun/findninja/internal/regex"
	"github.com/cheerioskun/findninja/internal/utils"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. FINDNINJA_REGEXTYPE
const EnvPrefix = "FINDNINJA"

// Keys shared by flags, config files and the environment
const (
	KeyRegexType    = "regextype"
	KeyIgnoreCase   = "ignore-case"
	KeyMaxDepth     = "max-depth"
	KeyMinDepth     = "min-depth"
	KeyWorkers      = "workers"
	KeyMatchTimeout = "match-timeout"
	KeyLogFile      = "log-file"
	KeyVerbose      = "verbose"
)

// Settings are the resolved defaults for a run
type Settings struct {
	Dialect      regex.RegexDialect `mapstructure:"regextype"`
	IgnoreCase   bool               `mapstructure:"ignore-case"`
	MaxDepth     int                `mapstructure:"max-depth"`
	MinDepth     int                `mapstructure:"min-depth"`
	Workers      int                `mapstructure:"workers"`
	MatchTimeout time.Duration      `mapstructure:"match-timeout"`
	LogFile      string             `mapstructure:"log-file"`
	Verbose      bool               `mapstructure:"verbose"`
}

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyRegexType, regex.DefaultDialect().String())
	v.SetDefault(KeyIgnoreCase, false)
	v.SetDefault(KeyMaxDepth, -1)
	v.SetDefault(KeyMinDepth, 0)
	v.SetDefault(KeyWorkers, runtime.NumCPU())
	v.SetDefault(KeyMatchTimeout, time.Duration(0))
	v.SetDefault(KeyLogFile, utils.DefaultLogPath)
	v.SetDefault(KeyVerbose, false)
}

// LoadDotEnv loads environment files (".env" when none are named). Missing
// files are not an error; variables already set are left alone.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Init wires defaults, the environment and the config file into v. An
// explicit configFile must exist; otherwise .findninja.{yaml,json,toml} is
// looked up in the working directory and then the home directory.
func Init(v *viper.Viper, configFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".findninja")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load decodes the current values in v
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&s, hook); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if s.Workers < 1 {
		return nil, fmt.Errorf("invalid configuration: workers must be at least 1, got %d", s.Workers)
	}
	return &s, nil
}
