package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTemplate(t *testing.T, name string) []byte {
	t.Helper()
	data, err := layoutTemplates.ReadFile("assets/layouts/" + name + ".ini")
	require.NoError(t, err)
	return data
}

func TestEnsureWritesDefaultOnce(t *testing.T) {
	m := NewLayoutManager(t.TempDir())
	require.NoError(t, m.Ensure())

	data, err := os.ReadFile(m.ActivePath())
	require.NoError(t, err)
	assert.Equal(t, readTemplate(t, LayoutDefault), data)

	require.NoError(t, os.WriteFile(m.ActivePath(), []byte("edited"), 0o644))
	require.NoError(t, m.Ensure())
	data, err = os.ReadFile(m.ActivePath())
	require.NoError(t, err)
	assert.Equal(t, "edited", string(data))
}

func TestApplyReportsRestart(t *testing.T) {
	m := NewLayoutManager(t.TempDir())
	require.NoError(t, m.Ensure())

	restart, err := m.Apply(LayoutDefault)
	require.NoError(t, err)
	assert.False(t, restart, "applying the active layout changes nothing")

	restart, err = m.Apply(LayoutViewportOnly)
	require.NoError(t, err)
	assert.True(t, restart)
	data, err := os.ReadFile(m.ActivePath())
	require.NoError(t, err)
	assert.Equal(t, readTemplate(t, LayoutViewportOnly), data)
}

func TestApplyErrors(t *testing.T) {
	m := NewLayoutManager(t.TempDir())
	_, err := m.Apply("nope")
	assert.ErrorIs(t, err, ErrUnknownLayout)

	for _, name := range []string{"", "../escape", `a\b`, ".."} {
		_, err = m.Apply(name)
		assert.ErrorIs(t, err, ErrInvalidLayoutName, name)
	}
}

func TestSaveCustomAndList(t *testing.T) {
	dir := t.TempDir()
	m := NewLayoutManager(dir)

	assert.Error(t, m.SaveCustom("before-ensure"))

	names, err := m.Custom()
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, m.Ensure())
	require.NoError(t, os.WriteFile(m.ActivePath(), []byte("mine"), 0o644))
	require.NoError(t, m.SaveCustom("zeta"))
	require.NoError(t, m.SaveCustom("alpha"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom", "notes.txt"), []byte("x"), 0o644))
	assert.ErrorIs(t, m.SaveCustom("a/b"), ErrInvalidLayoutName)

	names, err = m.Custom()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, names)

	_, err = m.Apply(LayoutDefault)
	require.NoError(t, err)
	restart, err := m.Apply("alpha")
	require.NoError(t, err)
	assert.True(t, restart)
	data, err := os.ReadFile(m.ActivePath())
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))
}

func TestBuiltIn(t *testing.T) {
	assert.Equal(t, []string{"default", "viewport_only"}, NewLayoutManager("x").BuiltIn())
}
