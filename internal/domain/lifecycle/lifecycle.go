// Package lifecycle defines shared timing for component start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds each OnStart/OnStop hook.
const DefaultTimeout = 10 * time.Second
