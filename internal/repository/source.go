package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/afero"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// Source reads the raw bytes of the verse fragment asset.
type Source interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
}

// HTTPSource fetches the asset from a static file server.
// No timeout is applied beyond the caller's context.
type HTTPSource struct {
	client *resty.Client
	url    string
}

// NewHTTPSource creates a source that GETs the asset at url.
func NewHTTPSource(client *resty.Client, url string) *HTTPSource {
	if client == nil {
		client = resty.New()
	}
	return &HTTPSource{client: client, url: url}
}

func (s *HTTPSource) Name() string { return "http" }

func (s *HTTPSource) Read(ctx context.Context) ([]byte, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.url, err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("get %s: %w: %d", s.url, ErrUnexpectedStatus, resp.StatusCode())
	}

	return resp.Body(), nil
}

// FileSource reads the asset from a filesystem path.
type FileSource struct {
	fs   afero.Fs
	path string
}

// NewFileSource creates a source reading path from fs.
func NewFileSource(fs afero.Fs, path string) *FileSource {
	return &FileSource{fs: fs, path: path}
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Read(_ context.Context) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return data, nil
}

// EmbeddedSource serves the copy of the asset compiled into the binary.
type EmbeddedSource struct {
	data []byte
}

// NewEmbeddedSource wraps bundled asset bytes.
func NewEmbeddedSource(data []byte) *EmbeddedSource {
	return &EmbeddedSource{data: data}
}

func (s *EmbeddedSource) Name() string { return "embedded" }

func (s *EmbeddedSource) Read(_ context.Context) ([]byte, error) {
	if len(s.data) == 0 {
		return nil, errors.New("embedded asset is empty")
	}
	return s.data, nil
}
