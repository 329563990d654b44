package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrInvalidConfig is returned when loaded values fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads the first env file found among envFilePath (searching parent
// directories), falling back to ./.env, then processes and validates the
// environment.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	logger.Debug("Loading environment variables")

	for _, path := range envFilePath {
		foundPath, err := FindEnvTest(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}
		if err := godotenv.Load(foundPath); err != nil {
			logger.Error("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		logger.Debug("Loaded environment file", "path", foundPath)
		return loadFromEnv()
	}

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found in current directory")
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Default().Debug("App config loaded",
		"env", cfg.Env,
		"bank", cfg.Bank.Name,
		"branch", cfg.Bank.BranchCode,
		"log_format", cfg.Log.Format,
		"metrics_namespace", cfg.Metrics.Namespace,
		"report_color", cfg.Report.Color,
	)
	return &cfg, nil
}

// Validate checks every field against its validate tag.
func (a *App) Validate() error {
	if err := validator.New().Struct(a); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, verrs.Error())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
