package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// checkContract runs the same set of checks against any backend
func checkContract(t *testing.T, kv kvStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		v, err := kv.Get(ctx, "no_such_key")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "k1", []byte(`[{"id":"1"}]`)))
		v, err := kv.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1"}]`, string(v))
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "k2", []byte("1")))
		require.NoError(t, kv.Set(ctx, "k2", []byte("2")))
		v, err := kv.Get(ctx, "k2")
		require.NoError(t, err)
		assert.Equal(t, "2", string(v))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "k3", []byte("v")))
		require.NoError(t, kv.Delete(ctx, "k3"))
		v, err := kv.Get(ctx, "k3")
		require.NoError(t, err)
		assert.Nil(t, v)
		require.NoError(t, kv.Delete(ctx, "k3"), "deleting missing key is fine")
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "nexa_iqc_history", []byte("[]")))
		require.NoError(t, kv.Set(ctx, "nexa_iqc_total", []byte("5")))
		require.NoError(t, kv.Delete(ctx, "nexa_iqc_history"))
		v, err := kv.Get(ctx, "nexa_iqc_total")
		require.NoError(t, err)
		assert.Equal(t, "5", string(v))
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := kv.Get(ctx, "")
		assert.ErrorIs(t, err, ErrEmptyKey)
		assert.ErrorIs(t, kv.Set(ctx, "", []byte("v")), ErrEmptyKey)
		assert.ErrorIs(t, kv.Delete(ctx, ""), ErrEmptyKey)
	})
}

func TestMemory(t *testing.T) {
	kv := NewMemory()
	defer kv.Close()
	checkContract(t, kv)

	t.Run("values are copied", func(t *testing.T) {
		ctx := context.Background()
		val := []byte("abc")
		require.NoError(t, kv.Set(ctx, "copy", val))
		val[0] = 'x'
		v, err := kv.Get(ctx, "copy")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(v))
	})
}

func TestFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data")
	kv, err := NewFile(root)
	require.NoError(t, err)
	defer kv.Close()
	checkContract(t, kv)

	t.Run("survives reopen", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, kv.Set(ctx, "persist", []byte("42")))
		kv2, err := NewFile(root)
		require.NoError(t, err)
		v, err := kv2.Get(ctx, "persist")
		require.NoError(t, err)
		assert.Equal(t, "42", string(v))
	})

	t.Run("no temp files left", func(t *testing.T) {
		entries, err := os.ReadDir(root)
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), ".tmp.")
		}
	})

	t.Run("invalid keys", func(t *testing.T) {
		ctx := context.Background()
		assert.Error(t, kv.Set(ctx, "../escape", []byte("v")))
		assert.Error(t, kv.Set(ctx, "a/b", []byte("v")))
		_, err := kv.Get(ctx, ".hidden")
		assert.Error(t, err)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, kv.Set(ctx, "k", []byte("v")), context.Canceled)
	})

	t.Run("empty root", func(t *testing.T) {
		_, err := NewFile("  ")
		assert.Error(t, err)
	})
}

func TestSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	kv, err := NewSQLite(dbPath)
	require.NoError(t, err)
	defer kv.Close()
	checkContract(t, kv)

	t.Run("wal mode", func(t *testing.T) {
		var mode string
		require.NoError(t, kv.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
		assert.Equal(t, "wal", mode)
	})

	t.Run("survives reopen", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, kv.Set(ctx, "persist", []byte("42")))
		require.NoError(t, kv.Close())

		kv2, err := NewSQLite(dbPath)
		require.NoError(t, err)
		defer kv2.Close()
		v, err := kv2.Get(ctx, "persist")
		require.NoError(t, err)
		assert.Equal(t, "42", string(v))
	})
}

func TestSQLite_InvalidPath(t *testing.T) {
	kv, err := NewSQLite("/invalid/path/that/does/not/exist/test.db")
	assert.Error(t, err)
	assert.Nil(t, kv)
}

func TestSQLite_BrokenTable(t *testing.T) {
	kv, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer kv.Close()

	_, err = kv.db.Exec("DROP TABLE kv")
	require.NoError(t, err)

	_, err = kv.Get(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get k")
	err = kv.Set(context.Background(), "k", []byte("v"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set k")
}

func TestRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	addr := os.Getenv("IQC_TEST_REDIS")
	if addr == "" {
		addr = "localhost:6379"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	kv, err := NewRedis(ctx, RedisParams{Addr: addr, Prefix: "iqcmaker-test:", PingAttempts: 1})
	if err != nil {
		t.Skipf("redis is not available at %s, %v", addr, err)
	}
	defer kv.Close()
	t.Cleanup(func() {
		for _, k := range []string{"k1", "k2", "k3", "nexa_iqc_history", "nexa_iqc_total"} {
			_ = kv.Delete(context.Background(), k)
		}
	})
	checkContract(t, kv)
}

func TestNewRedis_EmptyAddr(t *testing.T) {
	_, err := NewRedis(context.Background(), RedisParams{})
	assert.Error(t, err)
}
