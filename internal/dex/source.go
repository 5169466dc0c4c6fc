package dex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// ErrNotFound marks a corpus document that does not exist at the source.
// Loaders treat it as fatal or degraded depending on the document.
var ErrNotFound = errors.New("document not found")

// Cache stores fetched documents between runs so the corpus isn't
// re-downloaded on every start.
type Cache interface {
	// Set, with value being a structure
	Set(endpoint string, value any) error
	// Get, with value being unmarshalled into, then bool whether
	// something was found, and then error if something went wrong
	Get(endpoint string, value any) (bool, error)
}

// Source fetches one raw corpus document for a game dataset.
type Source interface {
	Fetch(ctx context.Context, game, name string) ([]byte, error)
}

// HTTPSource fetches documents from <base>/<game>/<name>, going through
// the cache first.
type HTTPSource struct {
	base   string
	cache  Cache
	client *http.Client
}

func NewHTTPSource(base string, cache Cache, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{base: base, cache: cache, client: client}
}

func (s *HTTPSource) Fetch(ctx context.Context, game, name string) ([]byte, error) {
	endpoint := path.Join(game, name)

	var body []byte
	found, err := s.cache.Get(endpoint, &body)
	if err != nil {
		return nil, err
	}
	if found {
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+"/"+endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", endpoint, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: HTTP %d", endpoint, resp.StatusCode)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(endpoint, body); err != nil {
		return nil, err
	}
	return body, nil
}

// DirSource reads documents from <root>/<game>/<name> on disk.
type DirSource struct {
	root string
}

func NewDirSource(root string) *DirSource {
	return &DirSource{root: root}
}

func (s *DirSource) Fetch(_ context.Context, game, name string) ([]byte, error) {
	body, err := os.ReadFile(filepath.Join(s.root, game, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s/%s: %w", game, name, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

// NopCache satisfies Cache without storing anything. Used when the
// source is a local directory and caching would only add a copy.
type NopCache struct{}

func (NopCache) Set(string, any) error { return nil }

func (NopCache) Get(string, any) (bool, error) { return false, nil }
