package museum

import (
	"log/slog"

	"museumhub/internal/imagecheck"
	"museumhub/pkg/utils"
)

// NewSources builds the AIC and Met fetchers, in merge order, from config.
func NewSources(cfg utils.MuseumConfig, checker imagecheck.Checker, logger *slog.Logger) []Fetcher {
	retries := cfg.Retries
	if retries == 0 {
		retries = -1 // configured as "no retries", not "default"
	}
	base := Options{
		Timeout:     cfg.RequestTimeout,
		Retries:     retries,
		Concurrency: cfg.Concurrency,
		BatchSize:   cfg.BatchSize,
		MaxPageSize: cfg.MaxPageSize,
		Checker:     checker,
		Logger:      logger,
	}

	aic, met := base, base
	aic.BaseURL = cfg.AICBaseURL
	met.BaseURL = cfg.MetBaseURL
	return []Fetcher{NewAIC(aic), NewMet(met)}
}
