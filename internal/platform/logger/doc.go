// Package logger configures the service's structured JSON logging and carries
// request-scoped loggers through a context.Context.
//
// Components obtain a logger with FromContextOrDefault so that log lines
// written while serving a request include its trace_id.
package logger
