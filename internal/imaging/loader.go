package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"
)

// Sentinel errors for the two ways loading a frame can fail. CLI boundaries
// match on these with errors.Is to produce structured failure output.
var (
	// ErrImageNotFound indicates the image path does not exist or cannot
	// be opened.
	ErrImageNotFound = errors.New("image not found")

	// ErrImageDecode indicates the file exists but is not a decodable
	// PNG, JPEG, or GIF image.
	ErrImageDecode = errors.New("image decode failed")
)

// Load reads and decodes a single image from disk.
//
// Webcam frames arrive as JPEG; PNG and GIF are also accepted. Failures are
// wrapped in ErrImageNotFound or ErrImageDecode so callers can report a
// structured error instead of crashing.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageNotFound, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageDecode, path, err)
	}
	return img, nil
}

// FrameCache provides thread-safe caching of loaded frames to avoid
// redundant disk reads when several analyses run over the same capture.
//
// Cached frames stay in memory until Evict or Clear; a long-running caller
// processing many frames should evict frames it is done with.
type FrameCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewFrameCache creates an empty frame cache ready for concurrent use.
func NewFrameCache() *FrameCache {
	return &FrameCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves a frame from the cache or loads it from disk if not cached.
// The frame is keyed by the exact path string provided.
func (c *FrameCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Evict removes a specific frame from the cache by its path.
func (c *FrameCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear removes all frames from the cache, freeing the associated memory.
func (c *FrameCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}
