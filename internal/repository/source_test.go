package repository_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/surah-reader-bot/internal/repository"
)

func TestHTTPSource_Read(t *testing.T) {
	t.Run("Should return body on success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/ayah_fragments.json", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"1:1":[]}`))
		}))
		defer srv.Close()

		src := repository.NewHTTPSource(nil, srv.URL+"/ayah_fragments.json")
		data, err := src.Read(context.Background())
		require.NoError(t, err)
		assert.JSONEq(t, `{"1:1":[]}`, string(data))
		assert.Equal(t, "http", src.Name())
	})

	t.Run("Should fail on non-success status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		src := repository.NewHTTPSource(nil, srv.URL+"/ayah_fragments.json")
		_, err := src.Read(context.Background())
		assert.ErrorIs(t, err, repository.ErrUnexpectedStatus)
	})

	t.Run("Should fail when server is unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		src := repository.NewHTTPSource(nil, url+"/ayah_fragments.json")
		_, err := src.Read(context.Background())
		assert.Error(t, err)
	})
}

func TestFileSource_Read(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "assets/ayah_fragments.json", []byte(`{}`), 0o644))

	t.Run("Should read existing file", func(t *testing.T) {
		data, err := repository.NewFileSource(fs, "assets/ayah_fragments.json").Read(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
	})

	t.Run("Should fail on missing file", func(t *testing.T) {
		_, err := repository.NewFileSource(fs, "missing.json").Read(context.Background())
		assert.Error(t, err)
	})
}

func TestEmbeddedSource_Read(t *testing.T) {
	data, err := repository.NewEmbeddedSource([]byte(`{}`)).Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	_, err = repository.NewEmbeddedSource(nil).Read(context.Background())
	assert.Error(t, err)
}
