package journal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestRecorded_UnknownTreeIsEmpty(t *testing.T) {
	j := open(t)
	names, err := j.Recorded("target/debug")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRecordAndRecorded(t *testing.T) {
	j := open(t)
	require.NoError(t, j.Record("target/debug", []string{"vert.spv", "frag.spv"}))

	names, err := j.Recorded("target/debug")
	require.NoError(t, err)
	assert.Equal(t, []string{"frag.spv", "vert.spv"}, names) // sorted
}

func TestRecord_ReplacesPreviousSet(t *testing.T) {
	j := open(t)
	require.NoError(t, j.Record("target/debug", []string{"old.spv", "kept.spv"}))
	require.NoError(t, j.Record("target/debug", []string{"kept.spv", "new.spv"}))

	names, err := j.Recorded("target/debug")
	require.NoError(t, err)
	assert.Equal(t, []string{"kept.spv", "new.spv"}, names)
}

func TestRecord_TreesAreIndependent(t *testing.T) {
	j := open(t)
	require.NoError(t, j.Record("target/debug", []string{"a.spv"}))
	require.NoError(t, j.Record("target/release", []string{"b.spv"}))

	debug, err := j.Recorded("target/debug")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.spv"}, debug)

	release, err := j.Recorded("target/release")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.spv"}, release)
}

func TestRecord_EmptySetClearsTree(t *testing.T) {
	j := open(t)
	require.NoError(t, j.Record("target/debug", []string{"a.spv"}))
	require.NoError(t, j.Record("target/debug", nil))

	names, err := j.Recorded("target/debug")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Record("target/debug", []string{"a.spv"}))
	require.NoError(t, j.Close())

	j2, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = j2.Close() }()

	names, err := j2.Recorded("target/debug")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.spv"}, names)
}
