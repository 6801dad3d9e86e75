// Package middleware provides built-in middlewares for the client package.
//
// [NewLoggingMiddleware] emits structured slog entries before and after every
// request with three verbosity levels (Minimal, Standard, Verbose).
//
//	c, err := client.FromTransport(transport, model,
//	    client.WithMiddleware(
//	        middleware.NewLoggingMiddleware(slog.Default(), middleware.LogLevelStandard),
//	    ),
//	)
//
// Middlewares execute outermost-first: the first entry in WithMiddleware runs
// first on the way in and last on the way out. When an observer is set, the
// observability middleware is always the outermost.
package middleware
