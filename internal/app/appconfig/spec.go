package appconfig

import (
	"time"

	"emisi.dev/backend/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving normal service requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9010"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogFile is the path of the rotated log file.
	LogFile string `split_words:"true" default:"logs/app.log"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// DevMode to indicate development mode. Enables trace logging, pprof and non-secure cookies.
	DevMode bool `split_words:"true"`

	// PostgresDSN is the data source name for the PostgreSQL database. See
	// https://bun.uptrace.dev/postgres/#pgdriver for more details on how to construct a PostgreSQL DSN.
	PostgresDSN string `required:"true" split_words:"true"`

	PostgresMaxOpenConns    int           `split_words:"true" default:"10"`
	PostgresMaxIdleConns    int           `split_words:"true" default:"2"`
	PostgresConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`
	PostgresConnMaxIdleTime time.Duration `split_words:"true" default:"5m"`

	BunDebugVerbose bool `split_words:"true"`

	// PostgresAutoMigrate creates missing tables and indexes when the server starts.
	PostgresAutoMigrate bool `split_words:"true" default:"true"`

	// NatsURL is the URL of the NATS server. See https://pkg.go.dev/github.com/nats-io/nats.go#Connect
	NatsURL string `required:"true" split_words:"true" default:"nats://127.0.0.1:4222"`

	// RedisURL is the URL of the Redis server. See https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL
	RedisURL string `required:"true" split_words:"true" default:"redis://127.0.0.1:6379/0"`

	// SentryDSN is the DSN of the Sentry server. Leaving it empty disables Sentry.
	SentryDSN string `split_words:"true"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`

	// SessionExpiration is the idle lifetime of a login session.
	SessionExpiration time.Duration `split_words:"true" default:"12h"`

	// EtlSourceURI locates the survey sheet export: an http(s) URL, an s3://bucket/key URI or a local path.
	EtlSourceURI string `split_words:"true"`

	// EtlBatchSize is the number of rows written per load batch.
	EtlBatchSize int `split_words:"true" default:"500"`

	// EtlLocationStrategy chooses among multiple locations listed for one slot: first, hash or random.
	EtlLocationStrategy string `split_words:"true" default:"first"`

	// EtlTimeout bounds a single ETL run.
	EtlTimeout time.Duration `split_words:"true" default:"10m"`

	AWSRegion    string `split_words:"true" default:"ap-southeast-1"`
	AWSAccessKey string `split_words:"true"`
	AWSSecretKey string `split_words:"true"`

	// WorkerEnabled is a flag to indicate whether to run the ETL periodically.
	WorkerEnabled bool `split_words:"true"`

	// WorkerEtlInterval describes the interval in-between ETL runs of the worker.
	WorkerEtlInterval time.Duration `required:"true" split_words:"true" default:"6h"`

	// DashboardCacheTTL is how long a filtered dashboard read is served from cache.
	DashboardCacheTTL time.Duration `split_words:"true" default:"10m"`

	// StatsMinRespondents is the respondent count at or below which profile classification is skipped.
	StatsMinRespondents int `split_words:"true" default:"5"`

	// StatsMinGroupSize is the member count a faculty needs to enter the faculty comparison.
	StatsMinGroupSize int `split_words:"true" default:"3"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
