package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
)

const (
	Name      = "rdb2csv"
	EnvPrefix = "RDB2CSV"
)

// Cfg is the configuration of the command line.
type Cfg struct {
	Table     string       `mapstructure:"table"`
	Adapter   string       `mapstructure:"adapter"`
	Extension string       `mapstructure:"extension"`
	Parallel  int          `mapstructure:"parallel"`
	NullText  string       `mapstructure:"null_text"`
	CSV       CSVConfig    `mapstructure:"csv"`
	Export    ExportConfig `mapstructure:"export"`
	Log       LogConfig    `mapstructure:"log"`
}

type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter"`
}

type ExportConfig struct {
	AllowEmpty bool `mapstructure:"allow_empty"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var defaults = map[string]any{
	"table":              "logdata",
	"adapter":            "sqlite",
	"extension":          ".rdb",
	"parallel":           1,
	"null_text":          "NULL",
	"csv.delimiter":      ",",
	"export.allow_empty": false,
	"log.level":          "info",
	"log.format":         "text",
}

// SetDefaults registers default values of all keys on v.
func SetDefaults(v *viper.Viper) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}

// Load reads the configuration into v and returns it.
// Values are taken from (highest priority first) flags bound to v, RDB2CSV_* environment
// variables, the config file and defaults. Without an explicit file, rdb2csv.{yaml,json,toml}
// is looked up in the working directory and in $HOME/.config/rdb2csv; not finding one is fine.
func Load(v *viper.Viper, file string) (*Cfg, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(Name)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("v.ReadInConfig: %w", err)
		}
	}

	var cfg Cfg
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values that can't be used as they are.
func (c *Cfg) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Table) == "" {
		errs = append(errs, errors.New("table: must not be empty"))
	}
	if c.Adapter == "" {
		errs = append(errs, errors.New("adapter: must not be empty"))
	}
	if c.Parallel < 1 {
		errs = append(errs, fmt.Errorf("parallel: must be at least 1, got %d", c.Parallel))
	}
	if _, err := c.CSV.Comma(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Comma returns the delimiter as a rune usable by encoding/csv.
func (c CSVConfig) Comma() (rune, error) {
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return 0, fmt.Errorf("csv.delimiter: must be a single character, got %q", c.Delimiter)
	}

	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("csv.delimiter: %q can't be used as a delimiter", c.Delimiter)
	}

	return r, nil
}
