package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config là cấu hình ứng dụng. File YAML cho giá trị mặc định, biến môi trường ghi đè.
type Config struct {
	Port string `yaml:"port"`

	Database struct {
		Driver         string `yaml:"driver"`
		URL            string `yaml:"url"`
		MaxConnections int    `yaml:"max_connections"`
	} `yaml:"database"`

	Auth struct {
		JWTSecret       string        `yaml:"jwt_secret"`
		AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
		RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
	} `yaml:"auth"`

	MQTT struct {
		URL string `yaml:"url"`
	} `yaml:"mqtt"`

	CORSOrigins string `yaml:"cors_origins"`

	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

var configLocations = []string{"todoapp.yaml", "todoapp.yml", ".todoapp.yaml"}

// LoadENV load biến môi trường từ file .env nếu có
func LoadENV() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load đọc .env, file YAML (path hoặc todoapp.yaml nếu tồn tại) rồi áp dụng biến môi trường
func Load(path string) (*Config, error) {
	if err := LoadENV(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if path == "" {
		for _, loc := range configLocations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (cfg *Config) applyEnv() error {
	setString(&cfg.Port, "PORT")
	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.URL, "DATABASE_URL")
	setString(&cfg.Database.URL, "POSTGRESQL_URI")
	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setString(&cfg.MQTT.URL, "MQTT_URL")
	setString(&cfg.CORSOrigins, "CORS_ORIGINS")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.File, "LOG_FILE")

	if err := setDuration(&cfg.Auth.AccessTokenTTL, "ACCESS_TOKEN_TTL"); err != nil {
		return err
	}
	return setDuration(&cfg.Auth.RefreshTokenTTL, "REFRESH_TOKEN_TTL")
}

func (cfg *Config) applyDefaults() {
	if cfg.Port == "" {
		cfg.Port = "3000" // Giá trị mặc định nếu PORT không được thiết lập
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "pgx"
	}
	if cfg.Database.MaxConnections == 0 {
		cfg.Database.MaxConnections = 25
	}
	if cfg.Auth.AccessTokenTTL == 0 {
		cfg.Auth.AccessTokenTTL = 15 * time.Minute
	}
	if cfg.Auth.RefreshTokenTTL == 0 {
		cfg.Auth.RefreshTokenTTL = 7 * 24 * time.Hour // 7 ngày
	}
	if cfg.CORSOrigins == "" {
		cfg.CORSOrigins = "*"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate kiểm tra các giá trị bắt buộc để chạy server
func (cfg *Config) Validate() error {
	var missing []string
	if cfg.Database.URL == "" {
		missing = append(missing, "POSTGRESQL_URI")
	}
	if cfg.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}
