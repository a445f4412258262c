package cache

import (
	"context"

	"github.com/dmitrijs2005/gophcache/internal/logging"
)

// Op names the store operation that failed.
type Op string

const (
	OpGet    Op = "get"
	OpSet    Op = "set"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Failure describes one swallowed store error.
type Failure struct {
	Key string
	Op  Op
	Err error
}

type FailureObserver interface {
	OnFailure(ctx context.Context, f Failure)
}

// ObserverFunc adapts a function to FailureObserver.
type ObserverFunc func(ctx context.Context, f Failure)

func (fn ObserverFunc) OnFailure(ctx context.Context, f Failure) { fn(ctx, f) }

// LogObserver logs every failure at warn level.
type LogObserver struct {
	Log logging.Logger
}

func (o LogObserver) OnFailure(ctx context.Context, f Failure) {
	o.Log.Warn(ctx, "persistence failed", "key", f.Key, "op", string(f.Op), "error", f.Err)
}
