package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Commonplace CommonplaceConfig
	GeoIP       GeoIPConfig
	FxA         FxAConfig
	CORS        CORSConfig
}

type AppConfig struct {
	Name               string
	Port               string
	Debug              bool
	LogPath            string
	Domain             string
	LanguageCode       string
	Languages          []string
	SessionExpiryHours int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
	Migrate  bool
}

type CommonplaceConfig struct {
	MediaURL       string
	MediaRoot      string
	Repos          []string
	ReposAppcached []string
	CacheMaxAge    int
}

type GeoIPConfig struct {
	URL           string
	Timeout       time.Duration
	DefaultRegion string
}

type FxAConfig struct {
	OAuthHost string
	ClientID  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// LoadConfig reads path (an env-format file) when it exists and overlays
// environment variables on top of it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "marketplace")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DOMAIN", "marketplace.firefox.com")
	v.SetDefault("LANGUAGE_CODE", "en-US")
	v.SetDefault("LANGUAGES", "en-US,de,es,fr,hu,it,pl,pt-BR,ru,zh-TW")
	v.SetDefault("SESSION_EXPIRY_HOURS", 24)
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIGRATE", true)
	v.SetDefault("MEDIA_URL", "/media/")
	v.SetDefault("MEDIA_ROOT", "media/")
	v.SetDefault("COMMONPLACE_REPOS", "fireplace,commbadge,transonic")
	v.SetDefault("COMMONPLACE_REPOS_APPCACHED", "fireplace")
	v.SetDefault("CACHE_MAX_AGE_SECONDS", 180)
	v.SetDefault("GEOIP_TIMEOUT_MS", 200)
	v.SetDefault("GEOIP_DEFAULT_REGION", "restofworld")
	v.SetDefault("FXA_OAUTH_HOST", "https://oauth.accounts.firefox.com/v1")

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:               v.GetString("APP_NAME"),
			Port:               v.GetString("PORT"),
			Debug:              v.GetBool("DEBUG"),
			LogPath:            v.GetString("LOG_PATH"),
			Domain:             v.GetString("DOMAIN"),
			LanguageCode:       v.GetString("LANGUAGE_CODE"),
			Languages:          splitList(v.GetString("LANGUAGES")),
			SessionExpiryHours: v.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
			Migrate:  v.GetBool("DB_MIGRATE"),
		},
		Commonplace: CommonplaceConfig{
			MediaURL:       v.GetString("MEDIA_URL"),
			MediaRoot:      v.GetString("MEDIA_ROOT"),
			Repos:          splitList(v.GetString("COMMONPLACE_REPOS")),
			ReposAppcached: splitList(v.GetString("COMMONPLACE_REPOS_APPCACHED")),
			CacheMaxAge:    v.GetInt("CACHE_MAX_AGE_SECONDS"),
		},
		GeoIP: GeoIPConfig{
			URL:           v.GetString("GEOIP_URL"),
			Timeout:       time.Duration(v.GetInt("GEOIP_TIMEOUT_MS")) * time.Millisecond,
			DefaultRegion: v.GetString("GEOIP_DEFAULT_REGION"),
		},
		FxA: FxAConfig{
			OAuthHost: v.GetString("FXA_OAUTH_HOST"),
			ClientID:  v.GetString("FXA_CLIENT_ID"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	return config, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
