package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lepinkainen/cinerelay/internal/config"
)

// CLI represents the complete command structure for the cinerelay application
type CLI struct {
	// Global flags
	Config   string `help:"Path to a YAML config file (defaults to ./config.yaml when present)" type:"path"`
	Provider string `help:"Catalog provider: tmdb or kinopoisk (overrides config)"`
	LogLevel string `help:"Log level: debug, info, warn or error (overrides config)"`

	Serve  ServeCmd  `cmd:"" default:"1" help:"Serve the movie API over HTTP"`
	Lookup LookupCmd `cmd:"" help:"Search the catalog by title and print the watch link"`
	Genres GenresCmd `cmd:"" help:"List the genres accepted by genre search"`
}

// Execute runs the Kong-based CLI
func Execute() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("cinerelay"),
		kong.Description("A movie and TV metadata proxy for the catalog frontend."),
		kong.UsageOnError(),
	)

	cfg, err := loadConfig(viper.GetViper(), &cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	closeLog := initLogging(cfg.Log)
	defer closeLog()

	if err := ctx.Run(cfg); err != nil {
		slog.Error("Command failed", "error", err)
		closeLog()
		os.Exit(1)
	}
}

// loadConfig layers defaults, the optional config file, the environment and
// the global flags, then builds the immutable Config.
func loadConfig(v *viper.Viper, cli *CLI) (config.Config, error) {
	if err := initConfig(v, cli.Config); err != nil {
		return config.Config{}, err
	}
	applyGlobalFlags(v, cli)
	return config.Load(v)
}

func initConfig(v *viper.Viper, path string) error {
	config.SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	return nil
}

func applyGlobalFlags(v *viper.Viper, cli *CLI) {
	if cli.Provider != "" {
		v.Set("provider", cli.Provider)
	}
	if cli.LogLevel != "" {
		v.Set("log.level", cli.LogLevel)
	}
	if cli.Serve.Listen != "" {
		v.Set("listen", cli.Serve.Listen)
	}
}

// initLogging installs the humanlog handler as the default logger, teeing to
// a rotating file when one is configured. The returned func closes the file.
func initLogging(cfg config.LogConfig) func() {
	var out io.Writer = os.Stdout
	closer := func() {}

	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		out = io.MultiWriter(os.Stdout, rotator)
		closer = func() { _ = rotator.Close() }
	}

	handler := humanlog.NewHandler(out, &humanlog.Options{
		Level: parseLevel(cfg.Level),
	})
	slog.SetDefault(slog.New(handler))
	return closer
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
