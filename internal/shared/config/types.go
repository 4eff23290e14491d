package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	Timezone       string   `mapstructure:"timezone"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// SyncRateLimit caps POST /locates/sync per client IP per minute.
	// Zero disables the limit.
	SyncRateLimit  int      `mapstructure:"sync_rate_limit"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	Path            string `mapstructure:"path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN builds the driver specific connection string.
func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case "postgres":
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
	case "sqlite":
		if d.Path == "" {
			return "locates.db"
		}
		return d.Path
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// AuthConfig configures verification of bearer tokens issued by the
// upstream identity service. An empty secret disables verification.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

type OAuthClientConfig struct {
	ClientID     string   `mapstructure:"client_id"`
	ClientSecret string   `mapstructure:"client_secret"`
	TokenURL     string   `mapstructure:"token_url"`
	Scopes       []string `mapstructure:"scopes"`
}

type ScraperConfig struct {
	Mode           string            `mapstructure:"mode"`
	FilePath       string            `mapstructure:"file_path"`
	BaseURL        string            `mapstructure:"base_url"`
	TimeoutSeconds int               `mapstructure:"timeout_seconds"`
	DefaultStatus  string            `mapstructure:"default_status"`
	WindowDays     int               `mapstructure:"window_days"`
	OAuth          OAuthClientConfig `mapstructure:"oauth"`
}

func (s *ScraperConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 2 * time.Minute
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

type LocatesConfig struct {
	PriorityMatch        string `mapstructure:"priority_match"`
	SweepIntervalMinutes int    `mapstructure:"sweep_interval_minutes"`
	SyncIntervalMinutes  int    `mapstructure:"sync_interval_minutes"`
	LockTTLSeconds       int    `mapstructure:"lock_ttl_seconds"`
}

func (l *LocatesConfig) SweepInterval() time.Duration {
	return time.Duration(l.SweepIntervalMinutes) * time.Minute
}

func (l *LocatesConfig) SyncInterval() time.Duration {
	return time.Duration(l.SyncIntervalMinutes) * time.Minute
}

func (l *LocatesConfig) LockTTL() time.Duration {
	if l.LockTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(l.LockTTLSeconds) * time.Second
}
