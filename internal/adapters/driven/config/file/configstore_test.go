package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("test_key", "test_value"))

	val, ok := store.Get("test_key")
	assert.True(t, ok)
	assert.Equal(t, "test_value", val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("string_key", "hello"))
	require.NoError(t, store.Set("int_key", 42))
	require.NoError(t, store.Set("bool_key", true))
	require.NoError(t, store.Set("slice_key", []string{"a", "b"}))

	assert.Equal(t, "hello", store.GetString("string_key"))
	assert.Equal(t, 42, store.GetInt("int_key"))
	assert.True(t, store.GetBool("bool_key"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("slice_key"))

	// Missing keys fall back to zero values
	assert.Equal(t, "", store.GetString("nonexistent"))
	assert.Equal(t, 0, store.GetInt("nonexistent"))
	assert.False(t, store.GetBool("nonexistent"))
	assert.Nil(t, store.GetStringSlice("nonexistent"))

	// Wrong types fall back too
	assert.Equal(t, "", store.GetString("int_key"))
	assert.Equal(t, 0, store.GetInt("string_key"))
	assert.False(t, store.GetBool("string_key"))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("key1", "value1"))
	require.NoError(t, store1.Set("key2", 42))
	require.NoError(t, store1.Set("key3", true))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "value1", store2.GetString("key1"))
	assert.Equal(t, 42, store2.GetInt("key2"))
	assert.True(t, store2.GetBool("key3"))
}

func TestConfigStore_Load_FlattensNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := []byte("[storage]\ndir = \"/var/lib/lexframe\"\n\n[profiles]\ndir = \"/etc/lexframe/profiles\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), content, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/lexframe", store.GetString("storage.dir"))
	assert.Equal(t, "/etc/lexframe/profiles", store.GetString("profiles.dir"))
}

func TestConfigStore_Load_NonExistent(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Load_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"),
		[]byte("this is not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("test", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_OverwriteValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("key", "original"))
	require.NoError(t, store.Set("key", "updated"))
	assert.Equal(t, "updated", store.GetString("key"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_, _ = store.Get(key)
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}
