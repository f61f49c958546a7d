package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		CompanyEmail string `yaml:"company_email"` // operator inbox for new applications
		UseTLS       bool   `yaml:"use_tls"`
	} `yaml:"email"`

	Storage struct {
		Type             string `yaml:"type"` // local, s3, azure_blob
		BasePath         string `yaml:"base_path"`
		BaseURL          string `yaml:"base_url"`
		Bucket           string `yaml:"bucket"`
		Region           string `yaml:"region"`
		AccessKey        string `yaml:"access_key"`
		SecretKey        string `yaml:"secret_key"`
		Endpoint         string `yaml:"endpoint"`
		ConnectionString string `yaml:"connection_string"` // Azure
		Container        string `yaml:"container"`         // Azure
	} `yaml:"storage"`

	Verification struct {
		TokenLength        int `yaml:"token_length"`         // digits, default 6
		TokenExpiryMinutes int `yaml:"token_expiry_minutes"` // default 15
		ResendCooldownSecs int `yaml:"resend_cooldown_secs"` // default 60
	} `yaml:"verification"`

	Captcha struct {
		Enabled       bool `yaml:"enabled"`
		ExpiryMinutes int  `yaml:"expiry_minutes"`
	} `yaml:"captcha"`
}

var AppConfig *Config

// LoadConfig reads config.yaml unless DATABASE_URL is set, in which case
// the environment wins (test and container deployments).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))

	cfg.Email.SMTPHost = envOr("SMTP_HOST", "localhost")
	cfg.Email.SMTPPort = envIntOr("SMTP_PORT", 587)
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = envOr("FROM_EMAIL", "noreply@accommodation.local")
	cfg.Email.FromName = envOr("FROM_NAME", "Accommodation Applications")
	cfg.Email.CompanyEmail = os.Getenv("COMPANY_EMAIL")

	cfg.Storage.Type = envOr("STORAGE_TYPE", "local")
	cfg.Storage.BasePath = envOr("STORAGE_BASE_PATH", "./submissions")
	cfg.Storage.BaseURL = envOr("STORAGE_BASE_URL", "/files")
	cfg.Storage.ConnectionString = os.Getenv("AZURE_STORAGE_CONNECTION_STRING")
	cfg.Storage.Container = envOr("AZURE_STORAGE_CONTAINER_NAME", "form-submissions")

	cfg.Captcha.Enabled = os.Getenv("CAPTCHA_ENABLED") == "true"

	cfg.Verification.TokenLength = envIntOr("TOKEN_LENGTH", 6)
	cfg.Verification.TokenExpiryMinutes = envIntOr("TOKEN_EXPIRATION_MINUTES", 15)
	cfg.Verification.ResendCooldownSecs = envIntOr("RESEND_COOLDOWN_SECONDS", 60)

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Verification.TokenLength <= 0 {
		cfg.Verification.TokenLength = 6
	}
	if cfg.Verification.TokenExpiryMinutes <= 0 {
		cfg.Verification.TokenExpiryMinutes = 15
	}
	if cfg.Verification.ResendCooldownSecs <= 0 {
		cfg.Verification.ResendCooldownSecs = 60
	}
	if cfg.Captcha.ExpiryMinutes <= 0 {
		cfg.Captcha.ExpiryMinutes = 5
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
