package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	return s
}

func TestLocalStorageSaveGet(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	err := s.Save(ctx, "users/1/resume.pdf", strings.NewReader("file-content"), "application/pdf")
	require.NoError(t, err)

	exists, err := s.Exists(ctx, "users/1/resume.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	size, err := s.GetSize(ctx, "users/1/resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(len("file-content")), size)

	reader, err := s.Get(ctx, "users/1/resume.pdf")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "file-content", string(data))
}

func TestLocalStorageOverwrite(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a.txt", strings.NewReader("old"), "text/plain"))
	require.NoError(t, s.Save(ctx, "a.txt", strings.NewReader("new"), "text/plain"))

	reader, err := s.Get(ctx, "a.txt")
	require.NoError(t, err)
	defer reader.Close()

	data, _ := io.ReadAll(reader)
	assert.Equal(t, "new", string(data))
}

func TestLocalStorageDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a.txt", strings.NewReader("x"), "text/plain"))
	require.NoError(t, s.Delete(ctx, "a.txt"))

	exists, err := s.Exists(ctx, "a.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	// повторное удаление не ошибка
	assert.NoError(t, s.Delete(ctx, "a.txt"))
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for _, path := range []string{
		"../outside.txt",
		"../../etc/passwd",
		"users/../../../outside.txt",
	} {
		err := s.Save(ctx, path, strings.NewReader("x"), "text/plain")
		if err == nil {
			// Clean мог схлопнуть путь внутрь базы; файл обязан остаться под ней
			full, rErr := s.resolve(path)
			require.NoError(t, rErr)
			abs, _ := filepath.Abs(full)
			base, _ := filepath.Abs(s.basePath)
			assert.True(t, strings.HasPrefix(abs, base), "path %q escaped to %q", path, abs)
		}
	}

	// явный выход за пределы базы недоступен и на чтение
	_, err := s.Get(ctx, "../secret.txt")
	assert.Error(t, err)
}

func TestLocalStorageURLs(t *testing.T) {
	ctx := context.Background()

	t.Run("without base url", func(t *testing.T) {
		s := newTestStorage(t)
		url, err := s.GetURL(ctx, "users/1/a.png")
		require.NoError(t, err)
		assert.Equal(t, "/files/users/1/a.png", url)
	})

	t.Run("with base url", func(t *testing.T) {
		s, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "https://cdn.example.com/"})
		require.NoError(t, err)

		url, err := s.GetURL(ctx, "users/1/a.png")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/users/1/a.png", url)

		signed, err := s.GetSignedURL(ctx, "users/1/a.png", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, url, signed)
	})
}

func TestNewStorageFactory(t *testing.T) {
	s, err := NewStorage(Config{Type: "local", BasePath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	// пустой тип означает локальное хранилище
	s, err = NewStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	_, err = NewStorage(Config{Type: "ftp"})
	assert.Error(t, err)
}
