package config

import (
	"fmt"
	"os"
	"time"

	"store-ticket-bot/internal/logger"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

const (
	DEFAULT_LISTEN      = "0.0.0.0:8080"
	DEFAULT_PREFIX      = "!"
	DEFAULT_CLOSE_DELAY = 5 * time.Second
)

type (
	// configuration contains the application settings
	Conf struct {
		Server Server `yaml:"server"`

		Discord Discord `yaml:"discord"`
		Tickets Tickets `yaml:"tickets"`
		Welcome Welcome `yaml:"welcome"`

		StoreConfig  string `yaml:"store_config"`
		LoggerConfig string `yaml:"logger_config"`

		RunInDebug bool `yaml:"-"`
	}

	Server struct {
		Listen string `yaml:"listen"`
	}

	Discord struct {
		Token  string `yaml:"token"`
		Prefix string `yaml:"prefix"`
	}

	Tickets struct {
		// задержка перед удалением канала тикета, например "5s"
		CloseDelay string `yaml:"close_delay"`

		closeDelay time.Duration
	}

	Welcome struct {
		// начальное состояние, переключается командой !welcome до перезапуска
		Enabled bool `yaml:"enabled"`
	}
)

func (t Tickets) Delay() time.Duration { return t.closeDelay }

// LoadConfig reads the yaml file, then applies .env and environment overrides.
// A missing file is allowed: everything can come from the environment.
func LoadConfig(configPath string) (*Conf, error) {
	cnf := &Conf{}

	input, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(input, cnf); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", configPath, err)
		}
	case os.IsNotExist(err):
		logger.Info("Config", configPath, "not found, using environment only")
	default:
		return nil, fmt.Errorf("read config %s: %w", configPath, err)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warning("Error while loading .env", err)
	}
	cnf.applyEnv()

	return cnf, cnf.check()
}

func (cnf *Conf) applyEnv() {
	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		cnf.Discord.Token = token
	}
	if port := os.Getenv("PORT"); port != "" {
		cnf.Server.Listen = "0.0.0.0:" + port
	}
}

func (cnf *Conf) check() error {
	if cnf.Discord.Token == "" {
		return fmt.Errorf("discord token is empty: set discord.token or DISCORD_TOKEN")
	}
	if cnf.Server.Listen == "" {
		cnf.Server.Listen = DEFAULT_LISTEN
	}
	if cnf.Discord.Prefix == "" {
		cnf.Discord.Prefix = DEFAULT_PREFIX
	}
	if cnf.StoreConfig == "" {
		cnf.StoreConfig = "./config/store.yml"
	}

	cnf.Tickets.closeDelay = DEFAULT_CLOSE_DELAY
	if cnf.Tickets.CloseDelay != "" {
		d, err := time.ParseDuration(cnf.Tickets.CloseDelay)
		if err != nil || d <= 0 {
			return fmt.Errorf("tickets.close_delay: invalid duration %q", cnf.Tickets.CloseDelay)
		}
		cnf.Tickets.closeDelay = d
	}
	return nil
}

// GetConfig is LoadConfig that stops the process on error.
func GetConfig(configPath string) *Conf {
	cnf, err := LoadConfig(configPath)
	if err != nil {
		logger.Crit("Error while loading config:", err)
	}
	return cnf
}
