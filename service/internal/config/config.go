// internal/config/config.go

// Package config loads process settings from the environment, after an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	engine "github.com/nixpulvis/hell/engine"
	"github.com/sirupsen/logrus"
)

// Dealer configures the dealer process.
type Dealer struct {
	Addr          string        `env:"DEALER_ADDR" envDefault:":45678"`
	Players       int           `env:"DEALER_PLAYERS" envDefault:"3"`
	SignUpTimeout time.Duration `env:"DEALER_SIGNUP_TIMEOUT" envDefault:"30s"`
	ChooseTimeout time.Duration `env:"DEALER_CHOOSE_TIMEOUT" envDefault:"5s"`
	WateringHole  int           `env:"DEALER_WATERING_HOLE" envDefault:"0"`
	Seed          uint64        `env:"DEALER_SEED" envDefault:"0"` // 0 keeps the deck in card order

	RedisAddr    string `env:"DEALER_REDIS_ADDR"` // empty disables event publishing
	RedisChannel string `env:"DEALER_REDIS_CHANNEL" envDefault:"evolution:events"`

	Log Log
}

// Player configures the player process.
type Player struct {
	URL      string        `env:"PLAYER_URL" envDefault:"ws://localhost:45678/"`
	Info     string        `env:"PLAYER_INFO" envDefault:"silly"`
	Strategy string        `env:"PLAYER_STRATEGY" envDefault:"silly"` // "silly" or a Lua script path
	Timeout  time.Duration `env:"PLAYER_TIMEOUT" envDefault:"10m"`

	Log Log
}

// Log configures logrus.
type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"` // "text" or "json"
}

// LoadDealer reads the dealer settings. Values already in the environment
// win over the .env file.
func LoadDealer(dotenv ...string) (Dealer, error) {
	var c Dealer
	if err := load(&c, dotenv); err != nil {
		return c, err
	}
	if c.Players < engine.MinPlayers || c.Players > engine.MaxPlayers {
		return c, fmt.Errorf("DEALER_PLAYERS %d out of range [%d, %d]", c.Players, engine.MinPlayers, engine.MaxPlayers)
	}
	if c.WateringHole < 0 {
		return c, fmt.Errorf("DEALER_WATERING_HOLE %d is negative", c.WateringHole)
	}
	if c.ChooseTimeout <= 0 || c.SignUpTimeout <= 0 {
		return c, errors.New("timeouts must be positive")
	}
	return c, nil
}

// LoadPlayer reads the player settings.
func LoadPlayer(dotenv ...string) (Player, error) {
	var c Player
	if err := load(&c, dotenv); err != nil {
		return c, err
	}
	return c, nil
}

func load(target any, dotenv []string) error {
	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Logger builds a logrus logger from the settings.
func (l Log) Logger() (*logrus.Logger, error) {
	logger := logrus.New()
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	logger.SetLevel(level)
	switch l.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("LOG_FORMAT %q, want text or json", l.Format)
	}
	return logger, nil
}
