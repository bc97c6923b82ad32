package config

import "errors"

var (
	// ErrInvalidConfig wraps every structural or tag validation failure.
	ErrInvalidConfig = errors.New("config: invalid form config")
	// ErrMissingDefault is returned by CheckDefaults when a governed key has
	// no default value in the initial record.
	ErrMissingDefault = errors.New("config: governed field has no default")
	// ErrUnknownVariant is returned when a theme variant is not declared.
	ErrUnknownVariant = errors.New("config: unknown theme variant")
)
