package arena

import "log/slog"

// Option is a configuration option for Arena.
type Option func(*Arena)

// WithFallback sets where requests that overflow the buffer are served.
// The default is Heap. A nil fallback is ignored.
func WithFallback(f Fallback) Option {
	return func(a *Arena) {
		if f != nil {
			a.fallback = f
		}
	}
}

// WithLogger sets the logger used for overflow, out-of-order free and release events.
// Events are logged at debug level. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(a *Arena) {
		if l != nil {
			a.logger = l
		}
	}
}
