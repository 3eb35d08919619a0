// Package groutine starts goroutines that carry a name, both as a pprof label
// (visible in goroutine profiles) and as a context value.
package groutine

import (
	"context"
	"runtime/pprof"
)

type ctxKey string

const (
	nameLabel               = "goroutine_name"
	goroutineNameKey ctxKey = nameLabel
)

// Go starts fn in a new goroutine labelled name.
// If parentCtx is nil, context.Background() is used.
//
//	groutine.Go(ctx, "adv-decode-0", func(ctx context.Context) {
//	    // work
//	})
func Go(parentCtx context.Context, name string, fn func(ctx context.Context)) {
	if parentCtx == nil {
		parentCtx = context.Background()
	}

	go pprof.Do(parentCtx, pprof.Labels(nameLabel, name), func(ctx context.Context) {
		fn(context.WithValue(ctx, goroutineNameKey, name))
	})
}

// GetName retrieves the goroutine name from the context.
func GetName(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if s, ok := ctx.Value(goroutineNameKey).(string); ok {
		return s
	}
	return ""
}
