package config

import (
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DatabasePath  string `yaml:"database_path"`
	SessionPath   string `yaml:"session_path"`
	SessionSecret string `yaml:"session_secret"`
	BcryptCost    int    `yaml:"bcrypt_cost"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		DatabasePath:  getEnv("TECHCARE_DATABASE_PATH", "techcare.db"),
		SessionPath:   getEnv("TECHCARE_SESSION_PATH", "techcare_session.db"),
		SessionSecret: getEnv("TECHCARE_SESSION_SECRET", "techcare-session-secret"),
		BcryptCost:    bcrypt.DefaultCost,
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
