package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
)

func writeProfile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestDiscover_TOMLAndYAML(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "military.toml", `
name = "military"
description = "ranks and gear"

[lexicon]
honor = 2.5
wound = -3.0

[[patterns]]
label = "RANK"
pattern = '\b(sergeant|captain)\b'
`)
	writeProfile(t, dir, "romance.yaml", `
name: romance
lexicon:
  love: 3.0
  heartbreak: -2.5
patterns:
  - label: ENDEARMENT
    pattern: '\b(darling|beloved)\b'
`)

	r := New()
	require.NoError(t, r.Discover(dir))

	assert.Equal(t, []string{"military", "romance"}, r.ProfileNames())

	military, err := r.Profile("military")
	require.NoError(t, err)
	assert.Equal(t, 2.5, military.Lexicon["honor"])
	require.Len(t, military.Patterns, 1)
	assert.Equal(t, "RANK", military.Patterns[0].Label)
}

func TestDiscover_MissingDirIsNotAnError(t *testing.T) {
	r := New()
	assert.NoError(t, r.Discover(filepath.Join(t.TempDir(), "does-not-exist")))
	assert.Empty(t, r.ProfileNames())
}

func TestDiscover_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "notes.txt", "not a profile")
	writeProfile(t, dir, "ok.toml", `name = "ok"`)

	r := New()
	require.NoError(t, r.Discover(dir))
	assert.Equal(t, []string{"ok"}, r.ProfileNames())
}

func TestDiscover_InvalidProfileFails(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "bad.toml", `
name = "bad"

[lexicon]
rage = -9.5
`)

	r := New()
	err := r.Discover(dir)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestLoadProfileFile_NameFallsBackToStem(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "western.yml", `
lexicon:
  dust: -0.5
`)

	profile, err := LoadProfileFile(filepath.Join(dir, "western.yml"))
	require.NoError(t, err)
	assert.Equal(t, "western", profile.Name)
}
