// Package config collects the command-line settings shared by the console and
// the Telegram entrypoints.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vi13x/shop-lite-cli/internal/storage"
)

const BotTokenEnv = "SHOP_BOT_TOKEN"

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	CatalogPath   string
	AdminPassword string
	ReportsDir    string
	LogLevel      string
	LogJSON       bool
	BotToken      string
}

// Parse reads flags from args. The bot token comes from the environment only.
func Parse(name string, args []string) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.CatalogPath, "catalog", "", "YAML catalog seed (built-in catalog when empty)")
	fs.StringVar(&cfg.AdminPassword, "admin-password", "admin", "password for the admin panel")
	fs.StringVar(&cfg.ReportsDir, "reports-dir", "reports", "directory for CSV exports")
	fs.StringVar(&cfg.LogLevel, "log-level", "warn", "debug, info, warn or error")
	fs.BoolVar(&cfg.LogJSON, "log-json", false, "log as JSON instead of text")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	cfg.BotToken = os.Getenv(BotTokenEnv)
	return cfg, nil
}

// ExitCode reports a Parse error on w and returns the exit code for it.
// flag prints its own errors together with the usage, so only the rest are
// written here.
func ExitCode(w io.Writer, err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if errors.Is(err, ErrInvalid) {
		fmt.Fprintln(w, err)
	}
	return 2
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("%w: bad -log-level %q: %v", ErrInvalid, s, err)
	}
	return lvl, nil
}

// Logger builds the process logger writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	lvl, err := parseLevel(c.LogLevel)
	if err != nil {
		lvl = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if c.LogJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Seed returns the catalog seed from CatalogPath, or the built-in one.
func (c *Config) Seed() (*storage.Seed, error) {
	if c.CatalogPath == "" {
		return storage.DefaultSeed(), nil
	}
	return storage.LoadSeed(c.CatalogPath)
}
