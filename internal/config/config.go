package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	LLM        LLMConfig
	Store      StoreConfig
	Generation GenerationConfig
	Redis      RedisConfig
	Logger     LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LLMConfig describes the chat-completion endpoint used for generation.
// The default base URL targets DeepSeek's OpenAI-compatible API.
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	Timeout     time.Duration
}

// StoreConfig describes the remote question table endpoint.
type StoreConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Table   string `yaml:"table"`
	Timeout time.Duration
}

type GenerationConfig struct {
	MaxAttempts int    `yaml:"max_attempts"`
	DedupScope  string `yaml:"dedup_scope"` // "user" (default) or "global"
	DedupTTL    time.Duration
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LoggerConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("llm.base_url", "https://api.deepseek.com/v1")
	viper.SetDefault("llm.model", "deepseek-chat")
	viper.SetDefault("llm.temperature", 0.9)
	viper.SetDefault("llm.max_tokens", 2048)
	viper.SetDefault("llm.timeout", 60)
	viper.SetDefault("store.table", "questions")
	viper.SetDefault("store.timeout", 10)
	viper.SetDefault("generation.max_attempts", 3)
	viper.SetDefault("generation.dedup_scope", "user")
	viper.SetDefault("generation.dedup_ttl_hours", 720)
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("logger.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		// Running purely on env vars and defaults is supported; only a
		// malformed file is fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		LLM: LLMConfig{
			BaseURL:     viper.GetString("llm.base_url"),
			APIKey:      viper.GetString("llm.api_key"),
			Model:       viper.GetString("llm.model"),
			Temperature: viper.GetFloat64("llm.temperature"),
			MaxTokens:   viper.GetInt("llm.max_tokens"),
			Timeout:     viper.GetDuration("llm.timeout") * time.Second,
		},
		Store: StoreConfig{
			BaseURL: viper.GetString("store.base_url"),
			APIKey:  viper.GetString("store.api_key"),
			Table:   viper.GetString("store.table"),
			Timeout: viper.GetDuration("store.timeout") * time.Second,
		},
		Generation: GenerationConfig{
			MaxAttempts: viper.GetInt("generation.max_attempts"),
			DedupScope:  viper.GetString("generation.dedup_scope"),
			DedupTTL:    viper.GetDuration("generation.dedup_ttl_hours") * time.Hour,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("logger.env"),
			Level: viper.GetString("logger.level"),
		},
	}

	// Credentials never live in the repository; they are supplied through the
	// environment (or a local, uncommitted config file).
	if key := os.Getenv("DEEPSEEK_API_KEY"); key != "" {
		config.LLM.APIKey = key
	}
	if url := os.Getenv("SUPABASE_URL"); url != "" {
		config.Store.BaseURL = url
	}
	if key := os.Getenv("SUPABASE_API_KEY"); key != "" {
		config.Store.APIKey = key
	}
	if address := os.Getenv("REDIS_ADDRESS"); address != "" {
		config.Redis.Address = address
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		config.Redis.Password = password
	}
	if env := os.Getenv("ENV"); env != "" {
		config.Logger.Env = env
	}

	return config, nil
}
