package decimate

import "go.uber.org/zap"

// Option customises a Decimate call.
type Option func(*decimator)

// WithLogger routes complex vertex warnings and pass summaries to l.
func WithLogger(l *zap.Logger) Option {
	return func(d *decimator) {
		if l != nil {
			d.log = l
		}
	}
}

// WithProgress registers a callback receiving the fraction of the target
// reduction reached so far, in [0, 1]. It is called after every sweep and
// once when the run ends.
func WithProgress(fn func(fraction float64)) Option {
	return func(d *decimator) {
		d.progress = fn
	}
}

// WithStore runs the decimation in s, reusing its arrays. The store is reset
// before loading the input and holds the final working mesh afterwards.
func WithStore(s *MeshStore) Option {
	return func(d *decimator) {
		if s != nil {
			d.store = s
		}
	}
}
