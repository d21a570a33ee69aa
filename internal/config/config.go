package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Auth   AuthConfig
	Game   GameConfig
}

type ServerConfig struct {
	Address string
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     int
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

// GameConfig holds the knobs the engines and the liveness sweep read.
type GameConfig struct {
	SweepInterval   time.Duration
	LivenessTimeout time.Duration
	AllowZeroClue   bool
	ScopaScoring    string // "simple" or "classic"
	RoomCodeLength  int
}

// Load reads config.yaml from the working directory or ./config, applies
// GIOCHI_* environment overrides and falls back to defaults when no file is
// present.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.user", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.name", "giochi")
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("auth.jwtsecret", "dev-secret-change-me")
	viper.SetDefault("auth.tokenttlhours", 240)
	viper.SetDefault("game.sweepinterval", "30s")
	viper.SetDefault("game.livenesstimeout", "60s")
	viper.SetDefault("game.allowzeroclue", true)
	viper.SetDefault("game.scopascoring", "simple")
	viper.SetDefault("game.roomcodelength", 6)

	viper.SetEnvPrefix("GIOCHI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
