package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	APIURL     string
	APITimeout time.Duration

	HTTPAddr       string
	AllowedOrigins string
	// AccessToken, when set, must accompany every request to the local service.
	AccessToken string

	// Durable storage: postgres when DatabaseURL is set, a JSON file otherwise.
	DatabaseURL string
	StoragePath string

	Locale   string
	Location *time.Location

	ProfileSyncInterval time.Duration
	ExportInterval      time.Duration

	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2Bucket          string
	CDNBaseURL        string
}

// ExportEnabled reports whether object storage credentials are present.
func (c Config) ExportEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2AccessKeySecret != "" && c.R2Bucket != ""
}

func FromEnv() (Config, error) {
	var c Config
	var err error

	c.APIURL = strings.TrimRight(envOr("API_URL", "http://localhost:3000"), "/")
	if c.APITimeout, err = durationEnv("API_TIMEOUT", 0); err != nil {
		return c, err
	}

	c.HTTPAddr = envOr("HTTP_ADDR", ":5300")

	origins := strings.Split(envOr("ALLOWED_ORIGINS", "http://localhost:5173"), ",")
	for i, o := range origins {
		origins[i] = strings.TrimSpace(o)
	}
	c.AllowedOrigins = strings.Join(origins, ",")

	c.AccessToken = strings.TrimSpace(os.Getenv("ACCESS_TOKEN"))

	c.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	c.StoragePath = strings.TrimSpace(os.Getenv("STORAGE_PATH"))
	if c.StoragePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return c, fmt.Errorf("resolve home dir for STORAGE_PATH: %w", err)
		}
		c.StoragePath = filepath.Join(home, ".match-tracker", "storage.json")
	}

	c.Locale = envOr("LOCALE", "en")
	c.Location = time.Local
	if tz := strings.TrimSpace(os.Getenv("TIMEZONE")); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return c, fmt.Errorf("TIMEZONE %q: %w", tz, err)
		}
		c.Location = loc
	}

	if c.ProfileSyncInterval, err = durationEnv("PROFILE_SYNC_INTERVAL", 15*time.Minute); err != nil {
		return c, err
	}
	if c.ExportInterval, err = durationEnv("EXPORT_INTERVAL", 0); err != nil {
		return c, err
	}

	c.R2AccountID = strings.TrimSpace(os.Getenv("CLOUDFLARE_ACCOUNT_ID"))
	c.R2AccessKeyID = strings.TrimSpace(os.Getenv("R2_ACCESS_KEY_ID"))
	c.R2AccessKeySecret = strings.TrimSpace(os.Getenv("R2_ACCESS_KEY_SECRET"))
	c.R2Bucket = strings.TrimSpace(os.Getenv("R2_BUCKET_NAME"))
	c.CDNBaseURL = strings.TrimSpace(os.Getenv("CDN_BASE_URL"))

	return c, nil
}

func envOr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}
