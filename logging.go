package fixtures

import "time"

// ReplaceLogEvent describes one install or restore attempt for logging.
type ReplaceLogEvent struct {
	SessionID string
	Op        string
	Path      string
	Kind      SelectorKind
	Duration  time.Duration
	Err       error
}

// ReplaceLogger records replacement events.
type ReplaceLogger interface {
	LogReplacement(ReplaceLogEvent)
}

// ReplaceLoggerFunc adapts a function to ReplaceLogger.
type ReplaceLoggerFunc func(ReplaceLogEvent)

// LogReplacement implements ReplaceLogger.
func (f ReplaceLoggerFunc) LogReplacement(event ReplaceLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopReplaceLogger struct{}

func (noopReplaceLogger) LogReplacement(ReplaceLogEvent) {}

// WithLogger attaches a replacement logger to the session.
func WithLogger(logger ReplaceLogger) Option {
	return func(cfg *sessionConfig) {
		if logger == nil {
			cfg.logger = noopReplaceLogger{}
			return
		}
		cfg.logger = logger
	}
}
