package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, a postgres driver with an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrUnknownDriver indicates a database driver name outside the
	// supported set ("postgres", "sqlite").
	ErrUnknownDriver = errors.New("unknown database driver")
)
