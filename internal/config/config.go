package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Users struct {
		Port string `yaml:"port"`
	} `yaml:"users"`
	Quizzes struct {
		Port string `yaml:"port"`
	} `yaml:"quizzes"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Quiz struct {
		TTL string `yaml:"ttl"`
	} `yaml:"quiz"`
	Bridge struct {
		UserServiceURL string `yaml:"user_service_url"`
		Token          string `yaml:"token"`
		Timeout        string `yaml:"timeout"`
	} `yaml:"bridge"`
	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
	} `yaml:"smtp"`
}

// Load reads YAML config from path and applies environment overrides for
// the secrets that should not live in the file.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Postgres.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("INTERNAL_TOKEN"); v != "" {
		c.Bridge.Token = v
	}
	if v := os.Getenv("USER_SERVICE_URL"); v != "" {
		c.Bridge.UserServiceURL = v
	}
	if v := os.Getenv("EMAIL_USER"); v != "" {
		c.SMTP.Username = v
	}
	if v := os.Getenv("EMAIL_PASS"); v != "" {
		c.SMTP.Password = v
	}
	if v := os.Getenv("EMAIL_FROM"); v != "" {
		c.SMTP.From = v
	}
}

// TTLDuration parses a duration string or returns the fallback if empty
// or malformed.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
