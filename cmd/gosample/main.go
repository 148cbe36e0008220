package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/hyperifyio/gosample/internal/app"
)

func main() {
	// Optional .env next to the binary so HF_TOKEN and friends can live
	// outside the shell profile. Absence is not an error.
	_ = godotenv.Load()

	cfg := loadConfig()

	closeLogs := setupLogging(cfg)
	defer closeLogs()

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: nonzero only when the batch never started for
		// credential reasons. Dataset-level failures are logged and counted,
		// not escalated, so partial results remain usable.
		if errors.Is(err, app.ErrMissingToken) || errors.Is(err, app.ErrLoginFailed) {
			os.Exit(2)
		}
		os.Exit(0)
	}
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}

// loadConfig layers configuration without any command line flags: the tool
// is meant to run as-is. Precedence is env, then config file, then the
// built-in defaults.
func loadConfig() app.Config {
	var cfg app.Config
	app.ApplyEnvToConfig(&cfg)

	if path := configPath(); path != "" {
		fc, err := app.LoadConfigFile(path)
		if err != nil {
			// A present but broken config file fails loudly; silently
			// falling back to defaults would mask typos.
			fmt.Fprintf(os.Stderr, "gosample: read config %s: %v\n", path, err)
			os.Exit(2)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyDefaults(&cfg)

	if err := app.ValidateConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "gosample: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// configPath returns the config file to load: $GOSAMPLE_CONFIG when set,
// otherwise gosample.yaml in the working directory when present.
func configPath() string {
	if p := strings.TrimSpace(os.Getenv("GOSAMPLE_CONFIG")); p != "" {
		return p
	}
	if _, err := os.Stat("gosample.yaml"); err == nil {
		return "gosample.yaml"
	}
	return ""
}

// setupLogging configures the global logger with two sinks: a console writer
// on stderr and a size-rotated file. The returned func flushes the file sink.
func setupLogging(cfg app.Config) func() {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	rotated := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB, // megabytes before the file rolls over
		MaxBackups: 3,
	}
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(console, rotated)).With().Timestamp().Logger()
	return func() { _ = rotated.Close() }
}
