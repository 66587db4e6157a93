package ports

import "context"

// HealthChecker reports whether one downstream dependency of the page
// service (the document API, for instance) can currently serve requests.
type HealthChecker interface {
	// Name identifies the dependency in readiness output, e.g. "notion-api".
	Name() string

	// HealthCheck returns nil when the dependency is usable. It must return
	// promptly once ctx is done.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry collects checkers at startup and runs them for the
// readiness check.
type HealthRegistry interface {
	Register(checker HealthChecker)

	// CheckAll returns one result per checker name; nil means healthy.
	CheckAll(ctx context.Context) map[string]error
}
