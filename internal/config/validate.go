package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if c.Redis.CacheTTL <= 0 {
		return fmt.Errorf("redis.cache_ttl must be > 0 (got %v)", c.Redis.CacheTTL)
	}

	if err := c.Lemmatizer.validate(); err != nil {
		return fmt.Errorf("lemmatizer: %w", err)
	}

	if err := c.Pipeline.validate(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if c.Auth.Enabled() && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing.sample_ratio must be in [0,1] (got %v)", c.Tracing.SampleRatio)
	}

	return nil
}

func (l *LemmatizerConfig) validate() error {
	if strings.TrimSpace(l.BaseURL) == "" {
		return fmt.Errorf("base_url is required")
	}
	if l.ConnectTimeout <= 0 {
		return fmt.Errorf("connect_timeout must be > 0 (got %v)", l.ConnectTimeout)
	}
	if l.ReadTimeout <= 0 {
		return fmt.Errorf("read_timeout must be > 0 (got %v)", l.ReadTimeout)
	}
	l.BaseURL = strings.TrimRight(l.BaseURL, "/")
	return nil
}

func (p *PipelineConfig) validate() error {
	if p.StoreConcurrency < 1 {
		return fmt.Errorf("store_concurrency must be >= 1 (got %d)", p.StoreConcurrency)
	}
	if p.MostUsedLimit < 0 {
		return fmt.Errorf("most_used_limit must be >= 0 (got %d)", p.MostUsedLimit)
	}
	if p.MaxSentenceLength <= 0 {
		return fmt.Errorf("max_sentence_length must be > 0 (got %d)", p.MaxSentenceLength)
	}
	return nil
}
