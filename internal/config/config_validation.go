// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// An empty driver defaults to sqlite with a local file so the application
// can start without any configuration at all.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DriverSQLite
	}

	switch cfg.Storage.DB.Driver {
	case DriverSQLite:
		if cfg.Storage.DB.DSN == "" {
			cfg.Storage.DB.DSN = "school.db"
		}
	case DriverPostgres:
		if cfg.Storage.DB.DSN == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrUnknownDriver
	}

	return nil
}
