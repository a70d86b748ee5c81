// Package config resolves where routineflow keeps its data and how it runs,
// from .env files, the environment and the OS keyring.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/julianstephens/routineflow/internal/constants"
	"github.com/julianstephens/routineflow/internal/keyring"
	"github.com/julianstephens/routineflow/internal/logger"
	"github.com/julianstephens/routineflow/internal/models"
	"github.com/julianstephens/routineflow/internal/storage"
	"github.com/julianstephens/routineflow/internal/storage/postgres"
	"github.com/julianstephens/routineflow/internal/storage/sqlite"
	"github.com/julianstephens/routineflow/internal/utils"
)

// Source records where the database location came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
	SourceDefault Source = "default"
)

type Config struct {
	// DB is a sqlite file path or a PostgreSQL connection string.
	DB        string
	DBSource  Source
	ConfigDir string
	Timezone  string
	Debug     bool
}

var (
	userConfigDirFunc = os.UserConfigDir
	keyringLookupFunc = keyring.ResolveConnectionString
)

// DefaultEnvFiles lists the .env files Load reads when none are given.
func DefaultEnvFiles(configDir string) []string {
	return []string{".env", filepath.Join(configDir, ".env")}
}

// Load reads the given .env files, skipping any that do not exist, and
// then resolves the configuration from the environment. Variables already
// set in the environment win over .env values.
func Load(envFiles ...string) (Config, error) {
	var existing []string
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return Config{}, fmt.Errorf("failed to load env files: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv resolves the configuration from the process environment.
func FromEnv() (Config, error) {
	cfg := Config{
		Timezone: strings.TrimSpace(os.Getenv(constants.EnvTimezone)),
	}

	if v := strings.TrimSpace(os.Getenv(constants.EnvDebug)); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s value %q: %w", constants.EnvDebug, v, err)
		}
		cfg.Debug = debug
	}

	dir, err := defaultConfigDir()
	if err != nil {
		return Config{}, err
	}
	cfg.ConfigDir = dir

	switch {
	case strings.TrimSpace(os.Getenv(constants.EnvDB)) != "":
		cfg.DB = ExpandHome(strings.TrimSpace(os.Getenv(constants.EnvDB)))
		cfg.DBSource = SourceEnv
	case strings.TrimSpace(os.Getenv(constants.EnvDBConnection)) != "":
		cfg.DB = strings.TrimSpace(os.Getenv(constants.EnvDBConnection))
		cfg.DBSource = SourceEnv
	default:
		stored, err := keyringLookupFunc("")
		if err != nil {
			logger.Debug("Keyring lookup skipped", "error", err)
		}
		if stored != "" {
			cfg.DB = stored
			cfg.DBSource = SourceKeyring
		} else {
			cfg.DB = filepath.Join(cfg.ConfigDir, constants.AppName+".db")
			cfg.DBSource = SourceDefault
		}
	}

	if cfg.Timezone != "" && !utils.ValidateTimezone(cfg.Timezone) {
		return Config{}, fmt.Errorf("invalid %s value %q", constants.EnvTimezone, cfg.Timezone)
	}

	return cfg, nil
}

func defaultConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(constants.EnvConfigDir)); dir != "" {
		return ExpandHome(dir), nil
	}
	base, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(base, constants.AppName), nil
}

// WithFlags applies command-line values over the resolved configuration.
// Empty values leave the configuration unchanged.
func (c Config) WithFlags(db string, debug bool) Config {
	if db = strings.TrimSpace(db); db != "" {
		c.DB = ExpandHome(db)
		c.DBSource = SourceFlag
	}
	if debug {
		c.Debug = true
	}
	return c
}

// IsPostgres reports whether the configured database is PostgreSQL.
func (c Config) IsPostgres() bool {
	return postgres.IsConnString(c.DB)
}

// OpenStore builds the storage provider for the configured database.
// Connection strings with an embedded password are only accepted when they
// come from the OS keyring.
func (c Config) OpenStore() (storage.Provider, error) {
	if !c.IsPostgres() {
		return sqlite.NewStore(c.DB), nil
	}
	if _, err := postgres.ValidateConnString(c.DB); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) || c.DBSource != SourceKeyring {
			return nil, err
		}
	}
	return postgres.New(c.DB), nil
}

// Location picks the time zone for day keys: the configured override first,
// then the stored setting.
func (c Config) Location(settings models.Settings) (*time.Location, error) {
	tz := c.Timezone
	if tz == "" {
		tz = settings.Timezone
	}
	return utils.LoadLocation(tz)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
