package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8000"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Gallery struct {
		OutputDir      string        `env:"GALLERY_OUTPUT_DIR" env-default:"output"`
		DatasetDriver  string        `env:"GALLERY_DATASET_DRIVER" env-default:"file"`
		DatasetPath    string        `env:"GALLERY_DATASET_PATH" env-default:"output/data.json"`
		DatasetURL     string        `env:"GALLERY_DATASET_URL"`
		MediaRoot      string        `env:"GALLERY_MEDIA_ROOT" env-default:"images/media"`
		AvatarRoot     string        `env:"GALLERY_AVATAR_ROOT" env-default:"images/avatars"`
		BatchSize      int           `env:"GALLERY_BATCH_SIZE" env-default:"100"`
		ViewportWidth  int           `env:"GALLERY_VIEWPORT_WIDTH" env-default:"1280"`
		ProbeWorkers   int           `env:"GALLERY_PROBE_WORKERS" env-default:"16"`
		ProbeTimeout   time.Duration `env:"GALLERY_PROBE_TIMEOUT" env-default:"10s"`
		ComposeWorkers int           `env:"GALLERY_COMPOSE_WORKERS" env-default:"8"`
		AutoRefresh    time.Duration `env:"GALLERY_AUTO_REFRESH" env-default:"0s"`
	}
	Refresh struct {
		URL     string        `env:"REFRESH_URL"`
		Timeout time.Duration `env:"REFRESH_TIMEOUT" env-default:"5m"`
	}
	Live struct {
		Port           int           `env:"LIVE_PORT" env-default:"8765"`
		PingInterval   time.Duration `env:"LIVE_PING_INTERVAL" env-default:"5s"`
		ClientTimeout  time.Duration `env:"LIVE_CLIENT_TIMEOUT" env-default:"10s"`
		ShutdownWait   time.Duration `env:"LIVE_SHUTDOWN_WAIT" env-default:"1s"`
		ShutdownOnIdle bool          `env:"LIVE_SHUTDOWN_ON_IDLE" env-default:"true"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	RateLimit struct {
		RefreshRequests int           `env:"RATELIMIT_REFRESH_REQUESTS" env-default:"1"`
		RefreshPer      time.Duration `env:"RATELIMIT_REFRESH_PER" env-default:"10s"`
		RefreshBurst    int           `env:"RATELIMIT_REFRESH_BURST" env-default:"2"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// GetDSN returns the lib/pq connection string used by goose.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode,
	)
}

// GetPoolURL returns the pgx pool connection URL.
func (c *Config) GetPoolURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}
