// Package server parses tracker command flags and launches the tracker runtime.
package server

import (
	"context"
	"flag"
	"time"

	entrypoint "github.com/regwatch/regwatch/internal/platform/cmd"

	"github.com/regwatch/regwatch/internal/aggregate"
	"github.com/regwatch/regwatch/internal/federalregister"
	"github.com/regwatch/regwatch/internal/web"
)

// Config holds tracker command configuration.
type Config struct {
	HTTPAddr          string        `env:"REGWATCH_HTTP_ADDR" envDefault:"localhost:8080"`
	UpstreamBaseURL   string        `env:"REGWATCH_UPSTREAM_BASE_URL"`
	UpstreamTimeout   time.Duration `env:"REGWATCH_UPSTREAM_TIMEOUT" envDefault:"2m"`
	RequestsPerSecond float64       `env:"REGWATCH_REQUESTS_PER_SECOND" envDefault:"5"`
	CacheTTL          time.Duration `env:"REGWATCH_CACHE_TTL" envDefault:"1h"`
	LookbackWindow    time.Duration `env:"REGWATCH_LOOKBACK_WINDOW" envDefault:"720h"`
	PerAgencyLimit    int           `env:"REGWATCH_PER_AGENCY_LIMIT" envDefault:"20"`
	MaxConcurrent     int           `env:"REGWATCH_MAX_CONCURRENT" envDefault:"10"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "The tracker HTTP listen address")
	fs.StringVar(&cfg.UpstreamBaseURL, "upstream-base-url", cfg.UpstreamBaseURL, "The Federal Register API base URL")
	fs.DurationVar(&cfg.UpstreamTimeout, "upstream-timeout", cfg.UpstreamTimeout, "The per-request upstream timeout")
	fs.Float64Var(&cfg.RequestsPerSecond, "requests-per-second", cfg.RequestsPerSecond, "The upstream request rate limit")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "The snapshot cache freshness window")
	fs.DurationVar(&cfg.LookbackWindow, "lookback-window", cfg.LookbackWindow, "The per-agency document lookback window")
	fs.IntVar(&cfg.PerAgencyLimit, "per-agency-limit", cfg.PerAgencyLimit, "The per-agency document fetch cap")
	fs.IntVar(&cfg.MaxConcurrent, "max-concurrent", cfg.MaxConcurrent, "The per-agency fetch concurrency bound")

	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the tracker runtime.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceTracker, func(ctx context.Context) error {
		client := federalregister.NewClient(federalregister.Config{
			BaseURL:           cfg.UpstreamBaseURL,
			Timeout:           cfg.UpstreamTimeout,
			RequestsPerSecond: cfg.RequestsPerSecond,
		})
		builder := aggregate.NewBuilder(client, aggregate.BuilderConfig{
			LookbackWindow: cfg.LookbackWindow,
			PerAgencyLimit: cfg.PerAgencyLimit,
			MaxConcurrent:  cfg.MaxConcurrent,
		})
		cache := aggregate.NewCache(builder, cfg.CacheTTL)

		srv, err := web.NewServer(web.Config{HTTPAddr: cfg.HTTPAddr}, cache)
		if err != nil {
			return err
		}
		return srv.ListenAndServe(ctx)
	})
}
