package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string `yaml:"port"`
	Environment  string `yaml:"env"`
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`
	LogLevel     string `yaml:"log_level"`

	SpacesDBPath string `yaml:"spaces_db_path"`
	AuthDBPath   string `yaml:"auth_db_path"`

	// Upstream create services. Empty means the simulated creators are used.
	VenueAPIURL   string        `yaml:"venue_api_url"`
	BookingAPIURL string        `yaml:"booking_api_url"`
	SubmitTimeout time.Duration `yaml:"submit_timeout"`
	SimulateDelay time.Duration `yaml:"simulate_delay"`
	// DraftIdleTTL is how long an untouched wizard instance stays in memory.
	DraftIdleTTL  time.Duration `yaml:"draft_idle_ttl"`

	OTPTTL         time.Duration `yaml:"otp_ttl"`
	OTPMaxAttempts int           `yaml:"otp_max_attempts"`
	OTPCooldown    time.Duration `yaml:"otp_cooldown"`

	AuthURL   string `yaml:"auth_url"`
	SpacesURL string `yaml:"spaces_url"`
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables, in that order of precedence.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Defaults returns the development configuration.
func Defaults() *Config {
	return &Config{
		Port:           "3000",
		Environment:    "development",
		ReadTimeout:    10,
		WriteTimeout:   10,
		LogLevel:       "info",
		SpacesDBPath:   "data/db/spaces.db",
		AuthDBPath:     "data/db/auth.db",
		SubmitTimeout:  15 * time.Second,
		SimulateDelay:  1500 * time.Millisecond,
		DraftIdleTTL:   30 * time.Minute,
		OTPTTL:         5 * time.Minute,
		OTPMaxAttempts: 5,
		OTPCooldown:    30 * time.Second,
		AuthURL:        "http://localhost:3002",
		SpacesURL:      "http://localhost:3001",
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.Environment = getEnv("ENV", c.Environment)
	c.ReadTimeout = getEnvAsInt("READ_TIMEOUT", c.ReadTimeout)
	c.WriteTimeout = getEnvAsInt("WRITE_TIMEOUT", c.WriteTimeout)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.SpacesDBPath = getEnv("SPACES_DB_PATH", c.SpacesDBPath)
	c.AuthDBPath = getEnv("AUTH_DB_PATH", c.AuthDBPath)

	c.VenueAPIURL = getEnv("VENUE_API_URL", c.VenueAPIURL)
	c.BookingAPIURL = getEnv("BOOKING_API_URL", c.BookingAPIURL)
	c.SubmitTimeout = getEnvAsDuration("SUBMIT_TIMEOUT", c.SubmitTimeout)
	if ms := getEnvAsInt("SIMULATE_DELAY_MS", -1); ms >= 0 {
		c.SimulateDelay = time.Duration(ms) * time.Millisecond
	}
	c.DraftIdleTTL = getEnvAsDuration("DRAFT_IDLE_TTL", c.DraftIdleTTL)

	c.OTPTTL = getEnvAsDuration("OTP_TTL", c.OTPTTL)
	c.OTPMaxAttempts = getEnvAsInt("OTP_MAX_ATTEMPTS", c.OTPMaxAttempts)
	c.OTPCooldown = getEnvAsDuration("OTP_COOLDOWN", c.OTPCooldown)

	c.AuthURL = getEnv("AUTH_URL", c.AuthURL)
	c.SpacesURL = getEnv("SPACES_URL", c.SpacesURL)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}
