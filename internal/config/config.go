package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string
	}
	Database struct {
		URL string
	}
	Redis struct {
		URL string
	}
	HelpScout struct {
		BaseURL     string
		AppID       string
		AppSecret   string
		AccessToken string
	}
	OpenAI struct {
		BaseURL string
		APIKey  string
		Model   string
	}
	Evaluator struct {
		Timeout           time.Duration
		TranscriptEntries int
	}
	Cache struct {
		Backend      string // "memory" or "redis"
		Retention    time.Duration
		CachedDetail bool
	}
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	var config Config

	// Set defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("database.url", "")
	viper.SetDefault("redis.url", "")
	viper.SetDefault("helpscout.base_url", "https://api.helpscout.net")
	viper.SetDefault("openai.base_url", "https://api.openai.com")
	viper.SetDefault("openai.model", "gpt-4")
	viper.SetDefault("evaluator.timeout", "7s")
	viper.SetDefault("evaluator.transcript_entries", 4)
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.retention", "720h")
	viper.SetDefault("cache.cached_detail", true)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	config.Server.Port = viper.GetString("server.port")
	config.Database.URL = viper.GetString("database.url")
	config.Redis.URL = viper.GetString("redis.url")
	config.HelpScout.BaseURL = viper.GetString("helpscout.base_url")
	config.OpenAI.BaseURL = viper.GetString("openai.base_url")
	config.OpenAI.Model = viper.GetString("openai.model")
	config.Evaluator.Timeout = viper.GetDuration("evaluator.timeout")
	config.Evaluator.TranscriptEntries = viper.GetInt("evaluator.transcript_entries")
	config.Cache.Backend = viper.GetString("cache.backend")
	config.Cache.Retention = viper.GetDuration("cache.retention")
	config.Cache.CachedDetail = viper.GetBool("cache.cached_detail")

	// Secrets come from the environment only
	config.HelpScout.AppID = os.Getenv("HELPSCOUT_APP_ID")
	config.HelpScout.AppSecret = os.Getenv("HELPSCOUT_APP_SECRET")
	config.HelpScout.AccessToken = os.Getenv("HELPSCOUT_ACCESS_TOKEN")
	config.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")

	// The transcript window only makes sense between 3 and 5 entries
	if config.Evaluator.TranscriptEntries < 3 {
		config.Evaluator.TranscriptEntries = 3
	}
	if config.Evaluator.TranscriptEntries > 5 {
		config.Evaluator.TranscriptEntries = 5
	}

	return &config, nil
}

func (c *Config) ValidateHelpScout() error {
	if c.HelpScout.AccessToken != "" {
		return nil
	}
	if c.HelpScout.AppID == "" || c.HelpScout.AppSecret == "" {
		return fmt.Errorf("either HELPSCOUT_ACCESS_TOKEN or HELPSCOUT_APP_ID and HELPSCOUT_APP_SECRET are required")
	}
	return nil
}

func (c *Config) ValidateOpenAI() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	return nil
}

func (c *Config) ValidateCache() error {
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("unknown cache backend: %s", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Redis.URL == "" {
		return fmt.Errorf("redis.url is required when cache.backend is redis")
	}
	return nil
}
