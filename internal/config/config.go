// Package config loads server settings from command-line flags, falling
// back to CHESS_* environment variables and then to built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Addr         string
	WebDir       string
	AllowOrigins string
	LogLevel     string
	LogPretty    bool
}

func Default() Config {
	return Config{
		Addr:         ":8080",
		WebDir:       "web",
		AllowOrigins: "http://localhost:5173",
		LogLevel:     "info",
	}
}

// Load parses args (without the program name) over the environment.
func Load(args []string, getenv func(string) string) (Config, error) {
	cfg := Default()
	envString(getenv, "CHESS_ADDR", &cfg.Addr)
	envString(getenv, "CHESS_WEB_DIR", &cfg.WebDir)
	envString(getenv, "CHESS_ALLOW_ORIGINS", &cfg.AllowOrigins)
	envString(getenv, "CHESS_LOG_LEVEL", &cfg.LogLevel)
	if v := getenv("CHESS_LOG_PRETTY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("CHESS_LOG_PRETTY: %w", err)
		}
		cfg.LogPretty = b
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.WebDir, "web", cfg.WebDir, "directory of static web files")
	fs.StringVar(&cfg.AllowOrigins, "origins", cfg.AllowOrigins, "comma separated CORS origins")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "trace, debug, info, warn or error")
	fs.BoolVar(&cfg.LogPretty, "log-pretty", cfg.LogPretty, "human readable console logs")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

func envString(getenv func(string) string, key string, dst *string) {
	if v := getenv(key); v != "" {
		*dst = v
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("listen address is empty")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Logger builds the process logger described by the config.
func (c Config) Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var out io.Writer = os.Stderr
	if c.LogPretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
