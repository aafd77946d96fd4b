package particle

import "errors"

var (
	// ErrDestroyed indicates an operation on a field that has been torn down.
	ErrDestroyed = errors.New("particle: field destroyed")

	// ErrInvalidLayout indicates a negative or non-finite layout size.
	ErrInvalidLayout = errors.New("particle: invalid layout")

	// ErrInvalidConfig indicates a non-positive tuning constant.
	ErrInvalidConfig = errors.New("particle: invalid config")

	// ErrNilFactory indicates a field built without a sprite factory.
	ErrNilFactory = errors.New("particle: sprite factory must not be nil")

	// ErrUnknownIntegrator indicates an integrator name not in the registry.
	ErrUnknownIntegrator = errors.New("particle: unknown integrator")
)
