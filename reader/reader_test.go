package reader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/symgo/core"
)

func TestFileReader_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("stored text"), 0o600))

	r := NewFileReader()
	text, err := r.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "stored text", text)
}

func TestFileReader_MissingFile(t *testing.T) {
	r := NewFileReader()
	_, err := r.Read(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestFileReader_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/doc":
			_, _ = w.Write([]byte("remote text"))
		default:
			http.NotFound(w, req)
		}
	}))
	defer server.Close()

	r := NewFileReader(func(o *FileReaderOptions) { o.HTTPClient = server.Client() })

	text, err := r.Read(context.Background(), server.URL+"/doc")
	require.NoError(t, err)
	assert.Equal(t, "remote text", text)

	_, err = r.Read(context.Background(), server.URL+"/absent")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
