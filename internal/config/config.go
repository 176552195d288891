package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

var ErrUnknownStorageDriver = errors.New("unknown storage driver")

type Config struct {
	LogLevel  string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort  string  `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	StaticDir string  `yaml:"static-dir" env:"STATIC_DIR" env-default:"./public"`
	Storage   Storage `yaml:"storage"`
	Redis     Redis   `yaml:"redis"`
}

type Storage struct {
	// one of sqlite, redis, memory
	Driver     string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite"`
	SQLitePath string `yaml:"sqlite-path" env:"SQLITE_PATH" env-default:"./tictactoe.db"`
}

type Redis struct {
	Host      string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port      string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	KeyPrefix string `yaml:"key-prefix" env:"REDIS_KEY_PREFIX" env-default:"tictactoe:"`
}

// Load - reads the yml file at path with environment overrides. A missing file is not an
// error: defaults and environment are used instead.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		err = cleanenv.ReadConfig(path, config)
	case errors.Is(err, os.ErrNotExist):
		err = cleanenv.ReadEnv(config)
	}

	if err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Config) Validate() error {
	switch that.Storage.Driver {
	case DriverSQLite, DriverRedis, DriverMemory:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, that.Storage.Driver)
	}
}
