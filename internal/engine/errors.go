package engine

import "errors"

var (
	// ErrNilRenderer indicates the engine was built without a render callback.
	ErrNilRenderer = errors.New("engine: render callback must not be nil")

	// ErrNilScheduler indicates the engine was built without a frame scheduler.
	ErrNilScheduler = errors.New("engine: scheduler must not be nil")
)
