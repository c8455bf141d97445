package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

var errBadPort = errors.New("port must be between 1024 and 65535")

type Config struct {
	LogLevel string   `yaml:"log-level" env-default:"info"`
	TCPPort  string   `yaml:"tcp-port" env-default:"8020"`
	HTTPPort string   `yaml:"http-port" env-default:"9090"`
	Accounts Accounts `yaml:"accounts"`
}

type Accounts struct {
	Backend    string `yaml:"backend" env-default:"sqlite"`
	SQLitePath string `yaml:"sqlite-path" env-default:"./accounts.db"`
	Redis      Redis  `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Validate - rejects ports outside the unprivileged range.
func (that *Config) Validate() error {
	for _, port := range []string{that.TCPPort, that.HTTPPort} {
		number, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid port %q: %w", port, err)
		}

		if number < 1024 || number > 65535 {
			return fmt.Errorf("invalid port %q: %w", port, errBadPort)
		}
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
