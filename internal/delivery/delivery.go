// Package delivery holds the process entry points (HTTP API, worker push server).
package delivery

import "context"

// Delivery is a long-running server started by the fx app.
type Delivery interface {
	Serve(ctx context.Context) error
}
