// Package metrics exposes shell-level Prometheus counters: logins,
// login failures, commands dispatched, and access denials. It mirrors
// the teacher's pkg/metrics.NewCacheMetrics "returns a disabled,
// zero-overhead implementation when metrics aren't wanted" pattern,
// adapted to this module's shell.Metrics interface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ShellMetrics implements shell.Metrics with Prometheus counters. The
// zero value is not usable; construct with New. Shells that don't want
// metrics simply omit shell.WithMetrics and get the package's internal
// no-op implementation instead.
type ShellMetrics struct {
	loginsTotal        prometheus.Counter
	loginFailuresTotal prometheus.Counter
	commandsTotal      *prometheus.CounterVec
	accessDeniedTotal  prometheus.Counter
}

// New registers shell metrics against reg and returns a ShellMetrics
// backed by it. Pass prometheus.NewRegistry() for an isolated registry,
// the way cmd/nutshelld wires it for its /metrics endpoint, or
// prometheus.DefaultRegisterer for the global one.
func New(reg prometheus.Registerer) *ShellMetrics {
	return &ShellMetrics{
		loginsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "nutshell_logins_total",
			Help: "Total number of successful logins.",
		}),
		loginFailuresTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "nutshell_login_failures_total",
			Help: "Total number of failed login attempts.",
		}),
		commandsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "nutshell_commands_dispatched_total",
			Help: "Total number of commands dispatched, by command ID.",
		}, []string{"command_id"}),
		accessDeniedTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "nutshell_access_denied_total",
			Help: "Total number of path resolutions rejected by the access check.",
		}),
	}
}

// LoginSucceeded implements shell.Metrics.
func (m *ShellMetrics) LoginSucceeded() { m.loginsTotal.Inc() }

// LoginFailed implements shell.Metrics.
func (m *ShellMetrics) LoginFailed() { m.loginFailuresTotal.Inc() }

// CommandDispatched implements shell.Metrics.
func (m *ShellMetrics) CommandDispatched(id string) { m.commandsTotal.WithLabelValues(id).Inc() }

// AccessDenied implements shell.Metrics.
func (m *ShellMetrics) AccessDenied() { m.accessDeniedTotal.Inc() }
