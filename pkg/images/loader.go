package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	stdnet "folio/std/net"
)

// ImageFetcher retrieves the raw bytes of an image by URI.
type ImageFetcher func(uri string) ([]byte, error)

// Cache caches decoded images and remembers which URIs failed to load.
// A URI that failed once is reported broken for the cache's lifetime.
type Cache struct {
	fetch ImageFetcher

	mu     sync.RWMutex
	images map[string]image.Image
	broken map[string]error
}

// NewCache creates a cache that loads non-data URIs with fetch. A nil
// fetch reads URIs as filesystem paths.
func NewCache(fetch ImageFetcher) *Cache {
	if fetch == nil {
		fetch = os.ReadFile
	}
	return &Cache{
		fetch:  fetch,
		images: make(map[string]image.Image),
		broken: make(map[string]error),
	}
}

// Load returns the decoded image for uri.
func (c *Cache) Load(uri string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[uri]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	if err, ok := c.broken[uri]; ok {
		c.mu.RUnlock()
		return nil, err
	}
	c.mu.RUnlock()

	img, err := c.decode(uri)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.broken[uri] = err
		return nil, err
	}
	c.images[uri] = img
	return img, nil
}

func (c *Cache) decode(uri string) (image.Image, error) {
	if uri == "" {
		return nil, errors.New("images: empty uri")
	}
	if IsDataURI(uri) {
		return LoadImageFromDataURI(uri)
	}
	data, err := c.fetch(uri)
	if err != nil {
		return nil, fmt.Errorf("images: fetch %s: %w", uri, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("images: decode %s: %w", uri, err)
	}
	return img, nil
}

// IsBroken reports whether uri cannot be loaded.
func (c *Cache) IsBroken(uri string) bool {
	_, err := c.Load(uri)
	return err != nil
}

// NaturalSize returns the image's size in device pixels.
func (c *Cache) NaturalSize(uri string) (width, height int, err error) {
	img, err := c.Load(uri)
	if err != nil {
		return 0, 0, err
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}

// IsDataURI reports whether uri is a data: URI.
func IsDataURI(uri string) bool {
	return strings.HasPrefix(uri, "data:")
}

// LoadImageFromDataURI decodes a base64 data URI image.
func LoadImageFromDataURI(uri string) (image.Image, error) {
	if !IsDataURI(uri) {
		return nil, errors.New("images: not a data uri")
	}
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, errors.New("images: malformed data uri")
	}
	meta, payload := uri[len("data:"):comma], uri[comma+1:]

	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("images: data uri: %w", err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("images: data uri: %w", err)
		}
		data = []byte(unescaped)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("images: data uri: %w", err)
	}
	return img, nil
}

// NewFilesystemFetcher resolves relative paths against the directory of
// basePath and fetches http(s) URIs over the network.
func NewFilesystemFetcher(basePath string) ImageFetcher {
	baseDir := filepath.Dir(basePath)
	return func(uri string) ([]byte, error) {
		if stdnet.IsNetworkURL(uri) {
			body, _, err := stdnet.Fetch(uri)
			return body, err
		}
		path := strings.TrimPrefix(uri, "file://")
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		return os.ReadFile(path)
	}
}
