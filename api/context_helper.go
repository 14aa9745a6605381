package api

import (
	"context"
	"time"
)

// GatewayTimeout is the default budget for one rendering service call
const GatewayTimeout = 30 * time.Second

// WithGatewayTimeout creates a context bounded by timeout, or GatewayTimeout
// when timeout is not positive
func WithGatewayTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if timeout <= 0 {
		timeout = GatewayTimeout
	}
	return context.WithTimeout(parent, timeout)
}
