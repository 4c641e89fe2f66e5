// Package middlewarex holds the HTTP middleware shared by every
// server: trace-id propagation, per-request loggers and panic recovery.
package middlewarex

import "ah_market/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
