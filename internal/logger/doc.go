// Package logger wraps zap with a process-wide logger and level, and carries
// request-scoped loggers through context.Context.
// Every line goes to stderr so that response bodies written to stdout stay clean.
package logger
