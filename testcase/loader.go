package testcase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/imroc/req/v3"

	"github.com/arcana-network/secretrecovery/common"
)

var ErrResourceLoad = errors.New("resource load error")

// Fetches the raw bytes of a test case.
type Loader interface {
	Load(ctx context.Context, location string) ([]byte, error)
}

type FileLoader struct{}

func (FileLoader) Load(_ context.Context, location string) ([]byte, error) {
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResourceLoad, err)
	}
	return data, nil
}

type HTTPLoader struct {
	client *req.Client
}

func NewHTTPLoader(timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{
		client: req.C().SetTimeout(timeout),
	}
}

func (h *HTTPLoader) Load(ctx context.Context, location string) ([]byte, error) {
	res, err := h.client.R().
		SetContext(ctx).
		Get(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResourceLoad, err)
	}
	if !res.IsSuccessState() {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrResourceLoad, location, res.StatusCode)
	}
	data, err := res.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResourceLoad, err)
	}
	return data, nil
}

// Sends http(s) locations to HTTP and everything else to File.
type MultiLoader struct {
	File Loader
	HTTP Loader
}

func NewMultiLoader(timeout time.Duration) *MultiLoader {
	return &MultiLoader{
		File: FileLoader{},
		HTTP: NewHTTPLoader(timeout),
	}
}

func (m *MultiLoader) Load(ctx context.Context, location string) ([]byte, error) {
	if common.IsURL(location) {
		return m.HTTP.Load(ctx, location)
	}
	return m.File.Load(ctx, location)
}

// Load fetches and parses a test case.
func Load(ctx context.Context, loader Loader, location string) (*TestCase, error) {
	data, err := loader.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	return Parse(location, data)
}
