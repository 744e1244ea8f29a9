package services

import "time"

type options struct {
	now func() time.Time
}

// Option configures a CatalogStore or OrderLedger.
type Option func(*options)

// WithClock replaces the wall clock used for timestamps and ids.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func applyOptions(opts []Option) options {
	o := options{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
