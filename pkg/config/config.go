package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	MediaProviderLocal = "local"
	MediaProviderS3    = "s3"

	CipherModeGCM = "gcm"
	CipherModeCBC = "cbc"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	Session   SessionConfig
	Payload   PayloadConfig
	Media     MediaConfig
	CORS      CORSConfig
	Log       LogConfig
	Dashboard DashboardConfig
	Jobs      JobsConfig
}

type DatabaseConfig struct {
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	SSLMode       string
	MaxOpenConns  int
	MaxIdleConns  int
	MigrateOnBoot bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig drives the cookie-backed session lifecycle.
type SessionConfig struct {
	CookieName      string
	CookieSecure    bool
	TTL             time.Duration
	RenewWindow     time.Duration
	CleanupInterval time.Duration
}

// PayloadConfig holds the shared secret used to obscure selected JSON payloads.
type PayloadConfig struct {
	Key string
	// Mode is gcm or cbc. The existing browser client only decrypts cbc.
	Mode string
}

// MediaConfig selects and configures the profile picture host.
type MediaConfig struct {
	Provider         string
	Folder           string
	MaxFileSizeBytes int64
	AllowedMIMEs     []string

	LocalDir        string
	PublicBaseURL   string
	SignedURLSecret string
	SignedURLTTL    time.Duration

	S3Endpoint        string
	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicBaseURL   string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DashboardConfig governs dashboard cache tuning.
type DashboardConfig struct {
	CacheTTL time.Duration
}

// JobsConfig sizes the background worker queue.
type JobsConfig struct {
	Workers int
	Retries int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:          v.GetString("DB_HOST"),
		Port:          v.GetInt("DB_PORT"),
		User:          v.GetString("DB_USER"),
		Password:      v.GetString("DB_PASSWORD"),
		Name:          v.GetString("DB_NAME"),
		SSLMode:       v.GetString("DB_SSL_MODE"),
		MaxOpenConns:  v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:  v.GetInt("DB_MAX_IDLE_CONNS"),
		MigrateOnBoot: v.GetBool("DB_MIGRATE_ON_BOOT"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		CookieName:      v.GetString("SESSION_COOKIE_NAME"),
		CookieSecure:    v.GetBool("SESSION_COOKIE_SECURE"),
		TTL:             parseDuration(v.GetString("SESSION_TTL"), 30*24*time.Hour),
		RenewWindow:     parseDuration(v.GetString("SESSION_RENEW_WINDOW"), 15*24*time.Hour),
		CleanupInterval: parseDuration(v.GetString("SESSION_CLEANUP_INTERVAL"), time.Hour),
	}

	cfg.Payload = PayloadConfig{
		Key:  v.GetString("PAYLOAD_ENCRYPTION_KEY"),
		Mode: strings.ToLower(v.GetString("PAYLOAD_CIPHER_MODE")),
	}

	maxMediaSize := v.GetInt64("MEDIA_MAX_FILE_SIZE")
	if maxMediaSize <= 0 {
		maxMediaSize = 5 * 1024 * 1024
	}
	cfg.Media = MediaConfig{
		Provider:          strings.ToLower(v.GetString("MEDIA_PROVIDER")),
		Folder:            strings.Trim(v.GetString("MEDIA_FOLDER"), "/"),
		MaxFileSizeBytes:  maxMediaSize,
		AllowedMIMEs:      splitAndTrim(v.GetString("MEDIA_ALLOWED_MIME_TYPES")),
		LocalDir:          v.GetString("MEDIA_LOCAL_DIR"),
		PublicBaseURL:     strings.TrimRight(v.GetString("MEDIA_PUBLIC_BASE_URL"), "/"),
		SignedURLSecret:   v.GetString("MEDIA_SIGNED_URL_SECRET"),
		SignedURLTTL:      parseDuration(v.GetString("MEDIA_SIGNED_URL_TTL"), 24*time.Hour),
		S3Endpoint:        v.GetString("S3_ENDPOINT"),
		S3Region:          v.GetString("S3_REGION"),
		S3Bucket:          v.GetString("S3_BUCKET"),
		S3AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
		S3PublicBaseURL:   strings.TrimRight(v.GetString("S3_PUBLIC_BASE_URL"), "/"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dashboard = DashboardConfig{
		CacheTTL: parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), time.Minute),
	}

	cfg.Jobs = JobsConfig{
		Workers: v.GetInt("JOBS_WORKERS"),
		Retries: v.GetInt("JOBS_RETRIES"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch len(c.Payload.Key) {
	case 0:
		return errors.New("PAYLOAD_ENCRYPTION_KEY is required")
	case 16, 24, 32:
	default:
		return fmt.Errorf("PAYLOAD_ENCRYPTION_KEY must be 16, 24 or 32 bytes, got %d", len(c.Payload.Key))
	}

	switch c.Payload.Mode {
	case CipherModeGCM, CipherModeCBC:
	default:
		return fmt.Errorf("unsupported PAYLOAD_CIPHER_MODE %q", c.Payload.Mode)
	}

	switch c.Media.Provider {
	case MediaProviderLocal:
		if c.Media.SignedURLSecret == "" {
			return errors.New("MEDIA_SIGNED_URL_SECRET is required for the local media provider")
		}
	case MediaProviderS3:
		if c.Media.S3Bucket == "" || c.Media.S3Region == "" {
			return errors.New("S3_BUCKET and S3_REGION are required for the s3 media provider")
		}
	default:
		return fmt.Errorf("unsupported MEDIA_PROVIDER %q", c.Media.Provider)
	}

	if c.Session.RenewWindow >= c.Session.TTL {
		return errors.New("SESSION_RENEW_WINDOW must be shorter than SESSION_TTL")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "school_admin")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_MIGRATE_ON_BOOT", false)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_COOKIE_NAME", "auth-session")
	v.SetDefault("SESSION_COOKIE_SECURE", true)
	v.SetDefault("SESSION_TTL", "720h")
	v.SetDefault("SESSION_RENEW_WINDOW", "360h")
	v.SetDefault("SESSION_CLEANUP_INTERVAL", "1h")

	v.SetDefault("PAYLOAD_ENCRYPTION_KEY", "")
	// Deployments serving the existing browser client must set cbc; it cannot
	// decrypt gcm envelopes.
	v.SetDefault("PAYLOAD_CIPHER_MODE", CipherModeGCM)

	v.SetDefault("MEDIA_PROVIDER", MediaProviderLocal)
	v.SetDefault("MEDIA_FOLDER", "profile_pics")
	v.SetDefault("MEDIA_MAX_FILE_SIZE", 5*1024*1024)
	v.SetDefault("MEDIA_ALLOWED_MIME_TYPES", "image/jpeg,image/png,image/webp,image/gif")
	v.SetDefault("MEDIA_LOCAL_DIR", "./media")
	v.SetDefault("MEDIA_PUBLIC_BASE_URL", "")
	v.SetDefault("MEDIA_SIGNED_URL_SECRET", "dev_media_secret")
	v.SetDefault("MEDIA_SIGNED_URL_TTL", "24h")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_REGION", "")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_ACCESS_KEY_ID", "")
	v.SetDefault("S3_SECRET_ACCESS_KEY", "")
	v.SetDefault("S3_PUBLIC_BASE_URL", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DASHBOARD_CACHE_TTL", "1m")

	v.SetDefault("JOBS_WORKERS", 2)
	v.SetDefault("JOBS_RETRIES", 3)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
