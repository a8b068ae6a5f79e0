package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_StorageFields(t *testing.T) {
	t.Setenv("STORAGE_DB_DRIVER", "postgres")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://u:p@localhost:5432/school_db")
	t.Setenv("APP_VERSION", "1.2.3")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "postgres", cfg.Storage.DB.Driver)
	assert.Equal(t, "postgres://u:p@localhost:5432/school_db", cfg.Storage.DB.DSN)
	assert.Equal(t, "1.2.3", cfg.App.Version)
}

func TestValidate_DefaultsToSQLite(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, cfg.validate())

	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
	assert.Equal(t, "school.db", cfg.Storage.DB.DSN)
}

func TestValidate_PostgresRequiresDSN(t *testing.T) {
	cfg := &StructuredConfig{Storage: Storage{DB: DB{Driver: DriverPostgres}}}

	err := cfg.validate()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &StructuredConfig{Storage: Storage{DB: DB{Driver: "oracle"}}}

	err := cfg.validate()
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestParseJSON_PopulatesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"app": {"version": "0.9.0", "photo_export_dir": "/tmp/photos"},
		"storage": {"db": {"driver": "sqlite", "dsn": "roster.db"}}
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "0.9.0", cfg.App.Version)
	assert.Equal(t, "/tmp/photos", cfg.App.PhotoExportDir)
	assert.Equal(t, "sqlite", cfg.Storage.DB.Driver)
	assert.Equal(t, "roster.db", cfg.Storage.DB.DSN)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestBuilder_MergePriority(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{DB: DB{Driver: DriverSQLite, DSN: "first.db"}}},
		&StructuredConfig{Storage: Storage{DB: DB{DSN: "second.db"}}},
	)

	cfg, err := b.build()
	require.NoError(t, err)

	// mergo keeps the first non-zero value; earlier sources win per field.
	assert.Equal(t, "first.db", cfg.Storage.DB.DSN)
	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
}
