package syncer

import "go.uber.org/zap"

// Option configures a Syncer.
type Option func(*Syncer)

// WithLogger sets the logger used to report skipped fields and rejected query
// parameters. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Syncer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClampBeforeUpdate clamps inputs before serialising them into the query
// string, so the URL never carries out-of-range values.
func WithClampBeforeUpdate(enabled bool) Option {
	return func(s *Syncer) {
		s.clampBeforeUpdate = enabled
	}
}
