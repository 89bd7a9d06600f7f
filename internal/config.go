package internal

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Security      SecurityConfig      `mapstructure:"security"`
	Leave         LeaveConfig         `mapstructure:"leave"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Source          string        `mapstructure:"source"`
}

type SecurityConfig struct {
	SessionTimeout    time.Duration `mapstructure:"session_timeout"`
	SessionCookieName string        `mapstructure:"session_cookie_name"`
	BCryptCost        int           `mapstructure:"bcrypt_cost"`
	PasswordMinLength int           `mapstructure:"password_min_length"`
	ResetTokenSecret  string        `mapstructure:"reset_token_secret"`
	ResetTokenTTL     time.Duration `mapstructure:"reset_token_ttl"`
}

// LeaveConfig holds the static leave-accounting settings read once at
// startup: financial year boundary, weekend set and list page sizing.
type LeaveConfig struct {
	FinancialYearStart string `mapstructure:"financial_year_start"` // MM-DD
	WeekendDays        []int  `mapstructure:"weekend_days"`         // 0=Sunday .. 6=Saturday
	ItemsPerPage       int    `mapstructure:"items_per_page"`
	MaxItemsPerPage    int    `mapstructure:"max_items_per_page"`
	DefaultAnnualDays  int    `mapstructure:"default_annual_days"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- HELPERS -----------------

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

func getEnvAsSlice(key string, defaultVal []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
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

// LoadConfigFromEnv builds a Config entirely from environment variables,
// used for container deployments where no config file is mounted.
func LoadConfigFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              getEnvAsInt("SERVER_PORT", 8080),
			BaseURL:           getEnv("SERVER_BASE_URL", "http://localhost:8080"),
			ReadHeaderTimeout: getEnvAsDuration("SERVER_READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:      getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:       getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			AllowedOrigins:    getEnvAsSlice("SERVER_ALLOWED_ORIGINS", nil),
		},
		Database: DatabaseConfig{
			Source:          getEnv("DATABASE_SOURCE", ""),
			MaxOpenConns:    getEnvAsInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvAsDuration("DATABASE_CONN_MAX_IDLE_TIME", 5*time.Minute),
		},
		Security: SecurityConfig{
			SessionTimeout:    getEnvAsDuration("SECURITY_SESSION_TIMEOUT", 30*time.Minute),
			SessionCookieName: getEnv("SECURITY_SESSION_COOKIE_NAME", "leave_session"),
			BCryptCost:        getEnvAsInt("SECURITY_BCRYPT_COST", 12),
			PasswordMinLength: getEnvAsInt("SECURITY_PASSWORD_MIN_LENGTH", 8),
			ResetTokenSecret:  getEnv("SECURITY_RESET_TOKEN_SECRET", ""),
			ResetTokenTTL:     getEnvAsDuration("SECURITY_RESET_TOKEN_TTL", time.Hour),
		},
		Leave: LeaveConfig{
			FinancialYearStart: getEnv("LEAVE_FINANCIAL_YEAR_START", "01-01"),
			WeekendDays:        []int{0, 6},
			ItemsPerPage:       getEnvAsInt("LEAVE_ITEMS_PER_PAGE", 15),
			MaxItemsPerPage:    getEnvAsInt("LEAVE_MAX_ITEMS_PER_PAGE", 100),
			DefaultAnnualDays:  getEnvAsInt("LEAVE_DEFAULT_ANNUAL_DAYS", 20),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if err := c.Leave.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("leave config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *SecurityConfig) Validate() error {
	if c.SessionTimeout < time.Minute {
		return errors.New("session_timeout must be at least 1 minute")
	}
	if c.SessionCookieName == "" {
		return errors.New("session_cookie_name is required")
	}
	if c.BCryptCost < 10 || c.BCryptCost > 15 {
		return errors.New("bcrypt_cost must be between 10 and 15")
	}
	if c.PasswordMinLength < 8 {
		return errors.New("password_min_length must be at least 8")
	}
	if c.ResetTokenSecret == "" {
		return errors.New("reset_token_secret is required")
	}
	return nil
}

func (c *LeaveConfig) Validate() error {
	if _, _, err := c.FinancialYearBoundary(); err != nil {
		return err
	}
	if len(c.WeekendDays) == 0 {
		return errors.New("weekend_days must not be empty")
	}
	for _, d := range c.WeekendDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("invalid weekend day %d", d)
		}
	}
	if c.ItemsPerPage <= 0 {
		return errors.New("items_per_page must be positive")
	}
	if c.MaxItemsPerPage < c.ItemsPerPage {
		return errors.New("max_items_per_page cannot be less than items_per_page")
	}
	if c.DefaultAnnualDays <= 0 {
		return errors.New("default_annual_days must be positive")
	}
	return nil
}

// FinancialYearBoundary parses the configured MM-DD start of the
// financial year.
func (c *LeaveConfig) FinancialYearBoundary() (month time.Month, day int, err error) {
	parts := strings.SplitN(c.FinancialYearStart, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("financial_year_start must be MM-DD, got %q", c.FinancialYearStart)
	}
	m, err := strconv.Atoi(parts[0])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("invalid financial year start month %q", parts[0])
	}
	d, err := strconv.Atoi(parts[1])
	if err != nil || d < 1 || d > 31 {
		return 0, 0, fmt.Errorf("invalid financial year start day %q", parts[1])
	}
	return time.Month(m), d, nil
}

// Weekend returns the configured weekend set keyed by weekday.
func (c *LeaveConfig) Weekend() map[time.Weekday]bool {
	weekend := make(map[time.Weekday]bool, len(c.WeekendDays))
	for _, d := range c.WeekendDays {
		weekend[time.Weekday(d)] = true
	}
	return weekend
}
