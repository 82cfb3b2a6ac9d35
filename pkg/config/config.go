package config

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory   = "memory"
	StorageSqlite   = "sqlite"
	StoragePostgres = "postgres"
)

type Config struct {
	App struct {
		Env        string `env:"APP_ENV" env-default:"development" yaml:"env"`
		Port       int    `env:"APP_PORT" env-default:"8080" yaml:"port"`
		SentryUrl  string `env:"SENTRY_URL" yaml:"sentry_url"`
		ConfigFile string `env:"CONFIG_FILE" yaml:"-"`
	} `yaml:"app"`
	Extractor struct {
		MaxPosts        int           `env:"EXTRACTOR_MAX_POSTS" env-default:"5" yaml:"max_posts"`
		LookAheadFactor int           `env:"EXTRACTOR_LOOK_AHEAD_FACTOR" env-default:"2" yaml:"look_ahead_factor"`
		WaitTimeout     time.Duration `env:"EXTRACTOR_WAIT_TIMEOUT" env-default:"10s" yaml:"wait_timeout"`
		PollInterval    time.Duration `env:"EXTRACTOR_POLL_INTERVAL" env-default:"500ms" yaml:"poll_interval"`
		ScrollSteps     int           `env:"EXTRACTOR_SCROLL_STEPS" env-default:"3" yaml:"scroll_steps"`
		ScrollDistance  int           `env:"EXTRACTOR_SCROLL_DISTANCE" env-default:"1000" yaml:"scroll_distance"`
		ScrollInterval  time.Duration `env:"EXTRACTOR_SCROLL_INTERVAL" env-default:"1s" yaml:"scroll_interval"`
		SettleDelay     time.Duration `env:"EXTRACTOR_SETTLE_DELAY" env-default:"2s" yaml:"settle_delay"`
		PatternsFile    string        `env:"EXTRACTOR_PATTERNS_FILE" yaml:"patterns_file"`
		PrefetchWorkers int           `env:"EXTRACTOR_PREFETCH_WORKERS" env-default:"3" yaml:"prefetch_workers"`
	} `yaml:"extractor"`
	Cache struct {
		SourceTTL     time.Duration `env:"CACHE_SOURCE_TTL" env-default:"1h" yaml:"source_ttl"`
		HandoffMaxAge time.Duration `env:"CACHE_HANDOFF_MAX_AGE" env-default:"24h" yaml:"handoff_max_age"`
		SweepInterval time.Duration `env:"CACHE_SWEEP_INTERVAL" env-default:"1h" yaml:"sweep_interval"`
		QuotaBytes    int64         `env:"CACHE_QUOTA_BYTES" env-default:"10485760" yaml:"quota_bytes"`
		MaxStored     int           `env:"CACHE_MAX_STORED_POSTS" env-default:"5" yaml:"max_stored_posts"`
	} `yaml:"cache"`
	Storage struct {
		Driver string `env:"STORAGE_DRIVER" env-default:"memory" yaml:"driver"`
	} `yaml:"storage"`
	Sqlite struct {
		Path string `env:"SQLITE_PATH" env-default:"./data/cache.db" yaml:"path"`
	} `yaml:"sqlite"`
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432" yaml:"port"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost" yaml:"host"`
		User    string `env:"POSTGRES_USER" yaml:"user"`
		Pass    string `env:"POSTGRES_PASS" yaml:"pass"`
		Name    string `env:"POSTGRES_NAME" yaml:"name"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable" yaml:"ssl_mode"`
	} `yaml:"postgres"`
	Browser struct {
		Enabled           bool          `env:"BROWSER_ENABLED" env-default:"false" yaml:"enabled"`
		Headless          bool          `env:"BROWSER_HEADLESS" env-default:"true" yaml:"headless"`
		NavigationTimeout time.Duration `env:"BROWSER_NAVIGATION_TIMEOUT" env-default:"60s" yaml:"navigation_timeout"`
		UserAgent         string        `env:"BROWSER_USER_AGENT" env-default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36" yaml:"user_agent"`
		StorageStatePath  string        `env:"BROWSER_STORAGE_STATE" yaml:"storage_state"`
	} `yaml:"browser"`
	RateLimit struct {
		Requests int           `env:"RATE_LIMIT_REQUESTS" env-default:"1" yaml:"requests"`
		Per      time.Duration `env:"RATE_LIMIT_PER" env-default:"5s" yaml:"per"`
		Burst    int           `env:"RATE_LIMIT_BURST" env-default:"3" yaml:"burst"`
	} `yaml:"rate_limit"`
	HTTP struct {
		AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" env-separator:"," env-default:"*" yaml:"allowed_origins"`
	} `yaml:"http"`
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := read(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// Load reads a fresh configuration without touching the process-wide instance.
func Load() (*Config, error) {
	c := &Config{}
	if err := read(c); err != nil {
		return nil, err
	}
	return c, nil
}

func read(c *Config) error {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		// ReadConfig applies env overrides after the file.
		return cleanenv.ReadConfig(path, c)
	}
	return cleanenv.ReadEnv(c)
}

func (c *Config) PostgresDSN() string {
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
