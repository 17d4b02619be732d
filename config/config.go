package config

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server     Server
	Bun        BunConfig
	JWT        JWT
	SMTP       SMTP
	OpenAI     OpenAI
	LoggerMode LoggerMode
}

type Server struct {
	Port        string
	Environment string
}

type BunConfig struct {
	DSN string
}

type LoggerMode struct {
	Development bool
	Prod        bool
	Level       string
}

type JWT struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  int // minutes
	RefreshExpiresIn int // days
}

type SMTP struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

type OpenAI struct {
	APIKey       string
	Proxy        string
	AssistantID  string
	TitleNamerID string
	RunTimeout   int // seconds, upper bound on run polling
	PollInterval int // milliseconds
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	v.AddConfigPath("config")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	err := v.Unmarshal(&c)
	if err != nil {
		slog.Error("Unable to unmarshal config", "err", err)
		return nil, err
	}
	return &c, nil
}
