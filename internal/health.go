package internal

import (
	"time"

	"github.com/dmitrymomot/portfolio/pkg/health"
)

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	probes        health.Probes
	livenessPath  string
	readinessPath string
	timeout       time.Duration
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessTimeout bounds a single readiness run.
func WithReadinessTimeout(d time.Duration) HealthOption {
	return func(c *healthConfig) {
		c.timeout = d
	}
}

// WithReadinessCheck adds a named readiness probe. A nil probe is ignored.
//
// Example:
//
//	portfolio.WithReadinessCheck("postgres", db.Healthcheck(pool))
func WithReadinessCheck(name string, probe health.Probe) HealthOption {
	return func(c *healthConfig) {
		if probe == nil {
			return
		}
		c.probes[name] = probe
	}
}
