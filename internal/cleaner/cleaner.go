package cleaner

import (
	"unicode/utf8"

	"github.com/custodia-labs/ghcorpus/internal/core/domain"
)

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithProgress registers a callback invoked by Process after every record.
func WithProgress(fn func(domain.CleanSummary)) Option {
	return func(c *Cleaner) {
		c.progress = fn
	}
}

// Cleaner applies the cleaning pipeline with a fixed configuration.
// A Cleaner holds no per-document state and is safe for concurrent use.
type Cleaner struct {
	cfg      domain.CleanConfig
	progress func(domain.CleanSummary)
}

// New creates a Cleaner. The configuration is copied and never changes afterwards.
func New(cfg domain.CleanConfig, opts ...Option) *Cleaner {
	c := &Cleaner{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns a copy of the cleaner's configuration.
func (c *Cleaner) Config() domain.CleanConfig {
	return c.cfg
}

// Clean runs the full pipeline on raw. A nil raw is dropped with ReasonNone.
// Clean never panics for any string input.
func (c *Cleaner) Clean(raw *string) domain.Result {
	if raw == nil {
		return domain.Dropped{Reason: domain.ReasonNone}
	}

	var audit domain.Diagnostics
	text := Normalize(*raw)

	if limit := c.cfg.DropIfTooLong; limit > 0 {
		if n := utf8.RuneCountInString(text); n > limit {
			audit.TruncatedFrom = n
			text = truncate(text, limit)
		}
	}

	text = rewrite(text, &c.cfg)

	if utf8.RuneCountInString(text) < domain.MinCleanLength {
		return domain.Dropped{Reason: domain.ReasonTooShort, Audit: audit}
	}

	stats := Score(text)
	audit.Noise = &stats
	if stats.NoiseScore >= c.cfg.DropIfNoiseRatioGe {
		return domain.Dropped{Reason: domain.ReasonMostlyNoise, Audit: audit}
	}

	return domain.Kept{Text: text, Audit: audit}
}

// CleanString is Clean for non-null text.
func (c *Cleaner) CleanString(s string) domain.Result {
	return c.Clean(&s)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
