// SPDX-License-Identifier: Apache-2.0

package config

import "flag"

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d database DSN (postgres connection string or sqlite file path)
//	-driver database driver name ("postgres" or "sqlite")
//	-export-dir directory for exported student photos
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var databaseDSN string
	var databaseDriver string
	var photoExportDir string
	var jsonConfigPath string

	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&databaseDriver, "driver", "", "Database driver (postgres|sqlite)")
	flag.StringVar(&photoExportDir, "export-dir", "", "Photo export directory")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			PhotoExportDir: photoExportDir,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		JSONFilePath: jsonConfigPath,
	}
}
