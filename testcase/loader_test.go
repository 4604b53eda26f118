package testcase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCase), 0o600))

	tc, err := Load(context.Background(), FileLoader{}, path)
	require.NoError(t, err)
	assert.Equal(t, path, tc.Name)
	assert.Len(t, tc.Points, 4)

	_, err = FileLoader{}.Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.Is(err, ErrResourceLoad))
	assert.False(t, IsDecodeError(err))
}

func TestHTTPLoader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/case.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleCase))
	}))
	defer server.Close()

	loader := NewHTTPLoader(5 * time.Second)
	data, err := loader.Load(context.Background(), server.URL+"/case.json")
	require.NoError(t, err)
	assert.JSONEq(t, sampleCase, string(data))

	_, err = loader.Load(context.Background(), server.URL+"/missing.json")
	assert.True(t, errors.Is(err, ErrResourceLoad))
}

type stubLoader struct {
	name  string
	calls []string
}

func (s *stubLoader) Load(_ context.Context, location string) ([]byte, error) {
	s.calls = append(s.calls, location)
	return []byte(s.name), nil
}

func TestMultiLoaderDispatch(t *testing.T) {
	file := &stubLoader{name: "file"}
	web := &stubLoader{name: "http"}
	loader := &MultiLoader{File: file, HTTP: web}

	data, err := loader.Load(context.Background(), "cases/test.json")
	require.NoError(t, err)
	assert.Equal(t, "file", string(data))

	data, err = loader.Load(context.Background(), "https://example.com/test.json")
	require.NoError(t, err)
	assert.Equal(t, "http", string(data))

	assert.Equal(t, []string{"cases/test.json"}, file.calls)
	assert.Equal(t, []string{"https://example.com/test.json"}, web.calls)
}
