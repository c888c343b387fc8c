package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string `mapstructure:"HTTP_PORT"`
	GRPCPort string `mapstructure:"GRPC_PORT"`
	GinMode  string `mapstructure:"GIN_MODE"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	RedisAddr  string `mapstructure:"REDIS_ADDR"`

	AccessSecret  string        `mapstructure:"ACCESS_SECRET"`
	RefreshSecret string        `mapstructure:"REFRESH_SECRET"`
	AccessTTL     time.Duration `mapstructure:"ACCESS_TTL"`
	RefreshTTL    time.Duration `mapstructure:"REFRESH_TTL"`

	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	CatalogCacheTTL         time.Duration `mapstructure:"CATALOG_CACHE_TTL"`
	CourseCacheTTL          time.Duration `mapstructure:"COURSE_CACHE_TTL"`
	ProgressRetryMaxElapsed time.Duration `mapstructure:"PROGRESS_RETRY_MAX_ELAPSED"`

	CoursePageURL  string `mapstructure:"COURSE_PAGE_URL"`
	MediaImageBase string `mapstructure:"MEDIA_IMAGE_BASE"`
	MediaEmbedBase string `mapstructure:"MEDIA_EMBED_BASE"`

	SeedDemo bool `mapstructure:"SEED_DEMO"`
}

var keys = []string{
	"HTTP_PORT", "GRPC_PORT", "GIN_MODE",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "REDIS_ADDR",
	"ACCESS_SECRET", "REFRESH_SECRET", "ACCESS_TTL", "REFRESH_TTL",
	"ALLOWED_ORIGINS",
	"CATALOG_CACHE_TTL", "COURSE_CACHE_TTL", "PROGRESS_RETRY_MAX_ELAPSED",
	"COURSE_PAGE_URL", "MEDIA_IMAGE_BASE", "MEDIA_EMBED_BASE",
	"SEED_DEMO",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", ":8080")
	v.SetDefault("GRPC_PORT", ":9090")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "learn")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("ACCESS_TTL", 15*time.Minute)
	v.SetDefault("REFRESH_TTL", 7*24*time.Hour)
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CATALOG_CACHE_TTL", 10*time.Minute)
	v.SetDefault("COURSE_CACHE_TTL", time.Hour)
	v.SetDefault("PROGRESS_RETRY_MAX_ELAPSED", 5*time.Second)
	v.SetDefault("COURSE_PAGE_URL", "course.html")
	v.SetDefault("MEDIA_IMAGE_BASE", "https://img.youtube.com/vi")
	v.SetDefault("MEDIA_EMBED_BASE", "https://www.youtube.com/embed")
	v.SetDefault("SEED_DEMO", false)
}

// LoadConfig reads app.env from path when present and lets the environment override it.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)
	for _, k := range keys {
		if err = v.BindEnv(k); err != nil {
			return
		}
	}

	// Файла нет? Работаем на ENV
	if err = v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	err = config.validate()
	return
}

func (c Config) validate() error {
	if c.AccessSecret == "" || c.RefreshSecret == "" {
		return fmt.Errorf("ACCESS_SECRET and REFRESH_SECRET must be set")
	}
	return nil
}

// DSN builds the postgres connection string the same way for every entrypoint.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
