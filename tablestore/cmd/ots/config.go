package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds the settings shared by all commands.
type Config struct {
	Endpoint   string `mapstructure:"endpoint"`
	Instance   string `mapstructure:"instance"`
	Port       int    `mapstructure:"port"`
	DataDir    string `mapstructure:"data_dir"`
	TablesFile string `mapstructure:"tables_file"`
	LogLevel   string `mapstructure:"log_level"`
	LogFormat  string `mapstructure:"log_format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("endpoint", "http://localhost:8800")
	v.SetDefault("instance", "local")
	v.SetDefault("port", 8800)
	v.SetDefault("data_dir", "")
	v.SetDefault("tables_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"endpoint":   "endpoint",
	"instance":   "instance",
	"port":       "port",
	"data-dir":   "data_dir",
	"tables":     "tables_file",
	"log-level":  "log_level",
	"log-format": "log_format",
}

// registerFlags adds the flags named in keys to fs. Their values only
// override the config when given explicitly.
func registerFlags(fs *flag.FlagSet, keys ...string) {
	for _, name := range keys {
		switch name {
		case "port":
			fs.Int(name, 0, "HTTP port to listen on (default 8800)")
		case "endpoint":
			fs.String(name, "", "endpoint URL of the table store (default http://localhost:8800)")
		case "instance":
			fs.String(name, "", "instance name sent with every request (default local)")
		case "data-dir":
			fs.String(name, "", "BadgerDB directory (empty for in-memory)")
		case "tables":
			fs.String(name, "", "YAML file of tables to create at startup")
		case "log-level":
			fs.String(name, "", "log level: debug, info, warn or error (default info)")
		case "log-format":
			fs.String(name, "", "log format: text or json (default text)")
		}
	}
}

// loadConfig resolves the configuration. searchPaths are the directories
// searched for ots.yaml; fs supplies explicitly set flags and may be nil.
func loadConfig(fs *flag.FlagSet, searchPaths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("ots")
	v.SetConfigType("yaml")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	v.SetEnvPrefix("OTS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if fs != nil {
		fs.Visit(func(f *flag.Flag) {
			if key, ok := flagKeys[f.Name]; ok {
				v.Set(key, f.Value.String())
			}
		})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// newLogger builds the process logger. Config validation has already
// checked the level and format.
func newLogger(c *Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return logger
}
