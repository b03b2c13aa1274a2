package red

// Option configures a GL handle during creation.
//
// Example:
//
//	ctx := red.NewGL(raw,
//	    red.WithTeardown(window.Destroy),
//	    red.WithErrorChecks(true),
//	)
type Option func(*options)

// options holds optional configuration for NewGL.
type options struct {
	teardown    func()
	errorChecks bool
}

// defaultOptions returns the default context options.
func defaultOptions() options {
	return options{
		teardown:    nil, // nothing to tear down
		errorChecks: false,
	}
}

// WithTeardown registers fn to run once, when the last clone of the
// handle is released. Use it to destroy the window or platform context
// that owns the GL context.
func WithTeardown(fn func()) Option {
	return func(o *options) {
		o.teardown = fn
	}
}

// WithErrorChecks makes every resource allocation poll GetError and report
// an error raised by the allocation as a failure. Errors already pending
// beforehand are logged and discarded. Off by default because GetError
// forces a round trip on most drivers.
func WithErrorChecks(enabled bool) Option {
	return func(o *options) {
		o.errorChecks = enabled
	}
}
