package migration

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_LoadEmbedded(t *testing.T) {
	migs, err := Runner{}.Load()
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "create_skills", migs[0].Name)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS skills")
}

func TestRunner_LoadSortsAndSkipsUnknownFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__second.sql": {Data: []byte("SELECT 2;")},
		"V1__first.sql":  {Data: []byte("SELECT 1;")},
		"README.md":      {Data: []byte("ignored")},
	}

	migs, err := Runner{FS: fsys}.Load()
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, "first", migs[0].Name)
	assert.Equal(t, "second", migs[1].Name)
	assert.NotEqual(t, migs[0].Checksum, migs[1].Checksum)
}

func TestRunner_LoadRejectsEmptyAndDuplicate(t *testing.T) {
	_, err := Runner{FS: fstest.MapFS{"V1__a.sql": {Data: []byte("  ")}}}.Load()
	assert.Error(t, err)

	_, err = Runner{FS: fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V1__b.sql": {Data: []byte("SELECT 2;")},
	}}.Load()
	assert.Error(t, err)
}
