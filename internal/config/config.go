package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Lemmatizer LemmatizerConfig `yaml:"lemmatizer"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Auth       AuthConfig       `yaml:"auth"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Tracing    TracingConfig    `yaml:"tracing"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"45s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"false"`
}

// RedisConfig holds cache connection settings.
type RedisConfig struct {
	Addr        string        `yaml:"addr"         env:"REDIS_ADDR"         env-default:"localhost:6379"`
	Password    string        `yaml:"password"     env:"REDIS_PASSWORD"`
	DB          int           `yaml:"db"           env:"REDIS_DB"           env-default:"0"`
	DialTimeout time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	CacheTTL    time.Duration `yaml:"cache_ttl"    env:"REDIS_CACHE_TTL"    env-default:"24h"`
}

// LemmatizerConfig holds settings for the external lemmatization service.
type LemmatizerConfig struct {
	BaseURL        string        `yaml:"base_url"        env:"LEMMATIZER_BASE_URL"        env-default:"http://localhost:8000"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"LEMMATIZER_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout"    env:"LEMMATIZER_READ_TIMEOUT"    env-default:"30s"`
	MaxIdleConns   int           `yaml:"max_idle_conns"  env:"LEMMATIZER_MAX_IDLE_CONNS"  env-default:"16"`
}

// PipelineConfig holds sentence processing settings.
type PipelineConfig struct {
	StoreConcurrency  int `yaml:"store_concurrency"   env:"PIPELINE_STORE_CONCURRENCY"   env-default:"8"`
	MostUsedLimit     int `yaml:"most_used_limit"     env:"PIPELINE_MOST_USED_LIMIT"     env-default:"5"`
	MaxSentenceLength int `yaml:"max_sentence_length" env:"PIPELINE_MAX_SENTENCE_LENGTH" env-default:"5000"`
}

// AuthConfig holds bearer token settings. An empty secret disables
// token authentication; callers then identify themselves by user id.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"lexitrack"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// Enabled reports whether bearer token authentication is configured.
func (c AuthConfig) Enabled() bool {
	return c.JWTSecret != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig limits sentence submissions per client IP. Zero disables it.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"              env-default:"120"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// TracingConfig holds OpenTelemetry settings. Spans go to the OTLP/HTTP
// endpoint when one is set, to stdout otherwise.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled"       env:"TRACING_ENABLED"       env-default:"false"`
	ServiceName  string  `yaml:"service_name"  env:"TRACING_SERVICE_NAME"  env-default:"lexitrack"`
	SampleRatio  float64 `yaml:"sample_ratio"  env:"TRACING_SAMPLE_RATIO"  env-default:"0.1"`
	OTLPEndpoint string  `yaml:"otlp_endpoint" env:"TRACING_OTLP_ENDPOINT"`
	OTLPInsecure bool    `yaml:"otlp_insecure" env:"TRACING_OTLP_INSECURE" env-default:"false"`
}
