// Package lifecycle holds shared timings for process start and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds graceful start/stop steps such as the initial
// database ping and HTTP server shutdown.
const DefaultTimeout = 10 * time.Second
