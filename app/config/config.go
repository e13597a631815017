package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log     Log     `yaml:"log"`
	Server  Server  `yaml:"server"`
	MCP     MCP     `yaml:"mcp"`
	Storage Storage `yaml:"storage"`
	Chat    Chat    `yaml:"chat"`
}

type Server struct {
	// Address the HTTP API listens on
	Listen string `yaml:"listen" example:":8080" validate:"required"`
}

type MCP struct {
	// Address the MCP SSE server listens on, empty disables it
	Listen string `yaml:"listen" example:":8090"`
}

type Storage struct {
	// Path to the sqlite database file
	Path string `yaml:"path" example:"data/agentdesk.db" validate:"required"`
}

type Chat struct {
	// Simulated typing delay before the agent reply, in milliseconds
	TypingDelayMs int `yaml:"typing_delay_ms" example:"1500" validate:"gte=0"`
}

func (c Chat) TypingDelay() time.Duration {
	return time.Duration(c.TypingDelayMs) * time.Millisecond
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Server.Listen == "" {
		result.Server.Listen = ":8080"
	}
	if result.Storage.Path == "" {
		result.Storage.Path = "data/agentdesk.db"
	}
	if result.Chat.TypingDelayMs == 0 {
		result.Chat.TypingDelayMs = 1500
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
