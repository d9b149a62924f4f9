package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"github.com/utakatalp/league-elo/internal/elo"
	"github.com/utakatalp/league-elo/internal/league"
)

const envPrefix = "LEAGUE_ELO"

// Config is the server and model configuration.
type Config struct {
	Port        string
	IdleTimeout time.Duration

	Elo   elo.Params
	Goals league.GoalModel

	LogLevel       string
	LogDevelopment bool
}

// Load reads config.yaml from ./configs or the working directory when
// present and applies LEAGUE_ELO_* environment overrides, e.g.
// LEAGUE_ELO_ELO_SENSITIVITY=30.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	return load(v)
}

// LoadFile reads the given file instead of searching for config.yaml.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	cfg.Port = v.GetString("server.port")
	// GetDuration would turn a malformed value into 0.
	idleTimeout, err := cast.ToDurationE(v.Get("server.idle_timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("parsing server.idle_timeout: %w", err)
	}
	if idleTimeout < 0 {
		return Config{}, fmt.Errorf("server.idle_timeout must be >= 0, got %s", idleTimeout)
	}
	cfg.IdleTimeout = idleTimeout

	cfg.Elo = elo.Params{
		Sensitivity:   v.GetFloat64("elo.sensitivity"),
		HomeAdvantage: v.GetFloat64("elo.home_advantage"),
	}
	if err := cfg.Elo.Validate(); err != nil {
		return Config{}, fmt.Errorf("elo params: %w", err)
	}

	cfg.Goals = league.GoalModel{
		Slope:     v.GetFloat64("goals.slope"),
		Intercept: v.GetFloat64("goals.intercept"),
	}
	if math.IsNaN(cfg.Goals.Slope) || math.IsInf(cfg.Goals.Slope, 0) ||
		math.IsNaN(cfg.Goals.Intercept) || math.IsInf(cfg.Goals.Intercept, 0) {
		return Config{}, fmt.Errorf("goal model must be finite, got %+v", cfg.Goals)
	}

	cfg.LogLevel = v.GetString("log.level")
	cfg.LogDevelopment = v.GetBool("log.development")

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	params := elo.DefaultParams()
	goals := league.DefaultGoalModel()

	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("elo.sensitivity", params.Sensitivity)
	v.SetDefault("elo.home_advantage", params.HomeAdvantage)
	v.SetDefault("goals.slope", goals.Slope)
	v.SetDefault("goals.intercept", goals.Intercept)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}
