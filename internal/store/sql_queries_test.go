// SPDX-License-Identifier: Apache-2.0

package store

import (
	"strings"
	"testing"

	"github.com/blerimk/schoolroster/internal/config"
	"github.com/blerimk/schoolroster/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildStudentSearchQuery_ZeroFilter(t *testing.T) {
	query, args, err := buildStudentSearchQuery(config.DriverPostgres, models.StudentFilter{})
	require.NoError(t, err)

	require.Empty(t, args)

	q := strings.ToLower(query)
	require.Contains(t, q, "select")
	require.Contains(t, q, "from students")
	require.Contains(t, q, "order by id desc")
	require.NotContains(t, q, "where")

	// key columns present in the SELECT section
	for _, col := range []string{"given_name", "family_name", "class_label", "photo", "created_at"} {
		require.Contains(t, q, col)
	}
}

func Test_buildStudentSearchQuery_NameFilter_Postgres(t *testing.T) {
	query, args, err := buildStudentSearchQuery(config.DriverPostgres, models.StudentFilter{Name: "kras"})
	require.NoError(t, err)

	require.Len(t, args, 2)
	assert.Equal(t, "%kras%", args[0])
	assert.Equal(t, "%kras%", args[1])

	assert.Contains(t, query, "ILIKE")
	assert.Contains(t, query, "given_name")
	assert.Contains(t, query, "family_name")

	// placeholder format should be $1 (both backends consume ordinals)
	assert.Contains(t, query, "$1")
	assert.Contains(t, query, "$2")
}

func Test_buildStudentSearchQuery_NameFilter_SQLite(t *testing.T) {
	query, _, err := buildStudentSearchQuery(config.DriverSQLite, models.StudentFilter{Name: "kras"})
	require.NoError(t, err)

	assert.Contains(t, query, "LIKE")
	assert.NotContains(t, query, "ILIKE")
}

func Test_buildStudentSearchQuery_ClassFilter(t *testing.T) {
	query, args, err := buildStudentSearchQuery(config.DriverPostgres, models.StudentFilter{ClassLabel: "10A"})
	require.NoError(t, err)

	require.Len(t, args, 1)
	assert.Equal(t, "10A", args[0])
	assert.Contains(t, query, "class_label")
}

func Test_buildStudentSearchQuery_CombinedFilter(t *testing.T) {
	query, args, err := buildStudentSearchQuery(config.DriverPostgres, models.StudentFilter{
		Name:       "ar",
		ClassLabel: "9B",
	})
	require.NoError(t, err)

	require.Len(t, args, 3)
	assert.Equal(t, "%ar%", args[0])
	assert.Equal(t, "%ar%", args[1])
	assert.Equal(t, "9B", args[2])

	q := strings.ToLower(query)
	assert.Contains(t, q, "where")
	assert.Contains(t, q, "order by id desc")
}
