package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		errMsg string
	}{
		{name: "simple", path: "Proxy.ts"},
		{name: "nested", path: "src/hub/Proxy.cs"},
		{name: "empty", path: "", errMsg: "empty"},
		{name: "absolute", path: "/abs/Proxy.ts", errMsg: "absolute paths not allowed"},
		{name: "drive letter", path: "C:Proxy.ts", errMsg: "absolute paths not allowed"},
		{name: "traversal", path: "a/../b.ts", errMsg: "path traversal not allowed"},
		{name: "leading traversal", path: "../b.ts", errMsg: "path traversal not allowed"},
		{name: "dot prefix", path: "./b.ts", errMsg: "not clean"},
		{name: "double slash", path: "a//b.ts", errMsg: "not clean"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestFilesystemSink_WriteNew(t *testing.T) {
	root := t.TempDir()
	s := NewFilesystemSink(root)

	require.NoError(t, s.WriteFile(context.Background(), "gen/Proxy.ts", []byte("v1")))

	got, err := os.ReadFile(filepath.Join(root, "gen", "Proxy.ts"))
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))

	info, err := os.Stat(filepath.Join(root, "gen", "Proxy.ts"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
	assertNoLeftovers(t, filepath.Join(root, "gen"))
}

func TestFilesystemSink_Replace(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "Proxy.ts")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0644))

	s := NewFilesystemSink(root)
	require.NoError(t, s.WriteFile(context.Background(), "Proxy.ts", []byte("new")))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
	assertNoLeftovers(t, root)
}

func TestFilesystemSink_RestoreOnFailure(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "Proxy.ts")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0644))

	s := NewFilesystemSink(root)
	s.rename = func(oldpath, newpath string) error {
		if newpath == target {
			return errors.New("disk full")
		}
		return os.Rename(oldpath, newpath)
	}

	err := s.WriteFile(context.Background(), "Proxy.ts", []byte("new"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got), "previous content should be restored")
	assertNoLeftovers(t, root)
}

func TestFilesystemSink_BackupFailure(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "Proxy.ts")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0644))

	s := NewFilesystemSink(root)
	s.rename = func(oldpath, newpath string) error {
		if strings.HasSuffix(newpath, BackupSuffix) {
			return errors.New("read-only")
		}
		return os.Rename(oldpath, newpath)
	}

	err := s.WriteFile(context.Background(), "Proxy.ts", []byte("new"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "back up")

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))
	assertNoLeftovers(t, root)
}

func TestFilesystemSink_NoOverwrite(t *testing.T) {
	root := t.TempDir()
	s := NewFilesystemSink(root)
	s.Overwrite = false

	require.NoError(t, s.WriteFile(context.Background(), "Proxy.ts", []byte("v1")))
	err := s.WriteFile(context.Background(), "Proxy.ts", []byte("v2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	got, err := os.ReadFile(filepath.Join(root, "Proxy.ts"))
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))
	assertNoLeftovers(t, root)
}

func TestFilesystemSink_CanceledContext(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewFilesystemSink(root).WriteFile(ctx, "Proxy.ts", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(filepath.Join(root, "Proxy.ts"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestFilesystemSink_Concurrent(t *testing.T) {
	root := t.TempDir()
	s := NewFilesystemSink(root)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.WriteFile(context.Background(), "Proxy.ts", []byte(fmt.Sprintf("v%d", i))))
		}(i)
	}
	wg.Wait()

	got, err := os.ReadFile(filepath.Join(root, "Proxy.ts"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(got), "v"), string(got))
	assertNoLeftovers(t, root)
}

func TestLockPath(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "gen", "proxy.ts")
	b := filepath.Join(root, "gen", "other.ts")

	assert.Equal(t, LockPath(a), LockPath(a))
	assert.Equal(t, LockPath(a), LockPath(filepath.Join(root, "gen", ".", "proxy.ts")))
	assert.NotEqual(t, LockPath(a), LockPath(b))
	assert.Equal(t, filepath.Clean(os.TempDir()), filepath.Dir(LockPath(a)))
}

func TestFilesystemSink_NoLockInOutputDir(t *testing.T) {
	root := t.TempDir()
	s := NewFilesystemSink(root)
	ctx := context.Background()

	require.NoError(t, s.WriteFile(ctx, "proxy.ts", []byte("one")))
	require.NoError(t, s.WriteFile(ctx, "proxy.ts", []byte("two")))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"proxy.ts"}, names)
}

func TestMemorySink(t *testing.T) {
	s := NewMemorySink()
	content := []byte("proxy")
	require.NoError(t, s.WriteFile(context.Background(), "Proxy.ts", content))

	content[0] = 'X'
	assert.Equal(t, "proxy", string(s.Get("Proxy.ts")), "sink must copy content")
	assert.Nil(t, s.Get("missing.ts"))
	assert.Len(t, s.Files(), 1)

	assert.Error(t, s.WriteFile(context.Background(), "../x", nil))
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf)
	s.Header = func(path string) string { return "// " + path + "\n" }

	require.NoError(t, s.WriteFile(context.Background(), "Proxy.ts", []byte("a\n")))
	require.NoError(t, s.WriteFile(context.Background(), "Types.ts", []byte("b\n")))

	assert.Equal(t, "// Proxy.ts\na\n// Types.ts\nb\n", buf.String())
}

func assertNoLeftovers(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		name := e.Name()
		assert.False(t, strings.HasSuffix(name, BackupSuffix), "leftover backup %s", name)
		assert.False(t, strings.HasSuffix(name, ".tmp"), "leftover temp file %s", name)
		assert.False(t, strings.HasSuffix(name, ".lock"), "lock file %s in output directory", name)
	}
}
