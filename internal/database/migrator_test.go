package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tea-backend/migrations"
)

func TestPending(t *testing.T) {
	files := fstest.MapFS{
		"0002_indexes.sql":   {Data: []byte("SELECT 1;")},
		"0001_schema.sql":    {Data: []byte("SELECT 1;")},
		"9999_reset_all.sql": {Data: []byte("DROP TABLE x;")},
		"README.md":          {Data: []byte("docs")},
		"nested/0003.sql":    {Data: []byte("SELECT 1;")},
	}

	names, err := Pending(files)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_schema.sql", "0002_indexes.sql"}, names)
}

func TestPending_EmbeddedSchema(t *testing.T) {
	names, err := Pending(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "0001_schema.sql", names[0])
}
