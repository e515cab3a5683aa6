// Package delivery defines the contract every transport frontend fulfils.
package delivery

import "context"

// Delivery is a serving frontend (HTTP today). The composition root starts
// each registered delivery in its own goroutine.
type Delivery interface {
	// Serve blocks until the delivery stops or fails.
	Serve(ctx context.Context) error
}
