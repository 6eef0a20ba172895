package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openAll(t *testing.T) map[Kind]Backend {
	t.Helper()
	dir := t.TempDir()

	backends := map[Kind]Backend{}
	for kind, path := range map[Kind]string{
		KindMemory:  "",
		KindFile:    filepath.Join(dir, "wallet.json"),
		KindLevelDB: filepath.Join(dir, "leveldb"),
		KindBolt:    filepath.Join(dir, "wallet.db"),
	} {
		b, err := Open(string(kind), path)
		require.NoError(t, err, kind)
		backends[kind] = b
	}
	t.Cleanup(func() {
		for _, b := range backends {
			b.Close()
		}
	})
	return backends
}

func TestBackendContract(t *testing.T) {
	for kind, kv := range openAll(t) {
		t.Run(string(kind), func(t *testing.T) {
			require := require.New(t)

			_, err := kv.Get("wallet.meta")
			require.ErrorIs(err, ErrNotFound)

			require.NoError(kv.Set("wallet.meta", `{"address":"qs1abc"}`))
			v, err := kv.Get("wallet.meta")
			require.NoError(err)
			require.Equal(`{"address":"qs1abc"}`, v)

			require.NoError(kv.Set("wallet.meta", "replaced"))
			v, err = kv.Get("wallet.meta")
			require.NoError(err)
			require.Equal("replaced", v)

			require.NoError(kv.Remove("wallet.meta"))
			_, err = kv.Get("wallet.meta")
			require.ErrorIs(err, ErrNotFound)

			require.NoError(kv.Remove("never.set"))
		})
	}
}

func TestClosedBackendIsUnavailable(t *testing.T) {
	for kind, kv := range openAll(t) {
		t.Run(string(kind), func(t *testing.T) {
			require.NoError(t, kv.Close())
			_, err := kv.Get("k")
			require.ErrorIs(t, err, ErrUnavailable)
			require.ErrorIs(t, kv.Set("k", "v"), ErrUnavailable)
		})
	}
}

func TestFilePersistsAcrossReopen(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "wallet.json")

	f, err := OpenFile(path)
	require.NoError(err)
	require.NoError(f.Set("wallet.failAttempts", "2"))
	require.NoError(f.Set("wallet.lastFail", "1700000000000"))
	require.NoError(f.Remove("wallet.lastFail"))
	require.NoError(f.Close())

	info, err := os.Stat(path)
	require.NoError(err)
	require.Equal(os.FileMode(0600), info.Mode().Perm())

	f, err = OpenFile(path)
	require.NoError(err)
	v, err := f.Get("wallet.failAttempts")
	require.NoError(err)
	require.Equal("2", v)
	_, err = f.Get("wallet.lastFail")
	require.ErrorIs(err, ErrNotFound)
}

func TestFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))
	_, err := OpenFile(path)
	require.Error(t, err)
}

func TestLevelDBPersistsAcrossReopen(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "leveldb")

	l, err := OpenLevelDB(path)
	require.NoError(err)
	require.NoError(l.Set("wallet.encryptedBlob", "blob"))
	require.NoError(l.Close())

	l, err = OpenLevelDB(path)
	require.NoError(err)
	defer l.Close()
	v, err := l.Get("wallet.encryptedBlob")
	require.NoError(err)
	require.Equal("blob", v)
}

func TestOpenUnknownKind(t *testing.T) {
	_, err := Open("redis", "")
	require.Error(t, err)
	_, err = Open("file", "")
	require.Error(t, err)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" LevelDB ")
	require.NoError(t, err)
	require.Equal(t, KindLevelDB, k)

	_, err = ParseKind("redis")
	require.Error(t, err)
}
