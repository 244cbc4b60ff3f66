package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrationsFrom_UnknownSourceScheme(t *testing.T) {
	err := RunMigrationsFrom("postgres://u:p@localhost:5432/d?sslmode=disable", "bogus://migrations")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create migrator")
}

func TestDefaultMigrationsSource(t *testing.T) {
	// The server and the loader both resolve migrations relative to their
	// working directory.
	assert.Equal(t, "file://migrations", DefaultMigrationsSource)
}
