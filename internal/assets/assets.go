// Package assets loads starting layouts: the embedded maps shipped with the
// binary, YAML layouts and dense .tmap files on disk.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/isotile/internal/logger"
	"github.com/Faultbox/isotile/internal/terrain"
	"github.com/Faultbox/isotile/pkg/tilemap"
)

//go:embed maps/*.yaml
var embedded embed.FS

// DefaultMap is the embedded layout the editor starts from.
const DefaultMap = "meadow"

// ErrNotFound is returned when no search location holds the requested file.
var ErrNotFound = errors.New("layout not found")

// Manager resolves layout names against a list of directories and the
// embedded maps.
type Manager struct {
	dirs  []string
	cache *Cache
	log   *zap.Logger
	mu    sync.RWMutex
}

// NewManager creates a manager that only sees the embedded maps.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
		log:   logger.Named("assets"),
	}
}

// AddDir adds a directory to search. Directories are searched in reverse
// order (last added = highest priority), then the embedded maps.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding layout dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding layout dir %s: not a directory", dir)
	}

	m.mu.Lock()
	m.dirs = append(m.dirs, dir)
	m.mu.Unlock()
	return nil
}

// Load returns the raw bytes of a layout file. Absolute names are read as
// is; relative names go through the search directories.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	if filepath.IsAbs(name) {
		data, err := os.ReadFile(name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
			}
			return nil, fmt.Errorf("reading layout: %w", err)
		}
		m.log.Debug("layout loaded", zap.String("name", name))
		m.cache.Set(name, data)
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.dirs) - 1; i >= 0; i-- {
		data, err := os.ReadFile(filepath.Join(m.dirs[i], name))
		if err == nil {
			m.log.Debug("layout loaded", zap.String("name", name), zap.String("dir", m.dirs[i]))
			m.cache.Set(name, data)
			return data, nil
		}
	}

	data, err := fs.ReadFile(embedded, path.Join("maps", name))
	if err == nil {
		m.log.Debug("layout loaded", zap.String("name", name), zap.String("dir", "embedded"))
		m.cache.Set(name, data)
		return data, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// LoadField loads and decodes a layout. A name without an extension is
// looked up as a YAML layout.
func (m *Manager) LoadField(name string) (*terrain.Field, error) {
	if filepath.Ext(name) == "" {
		name += ".yaml"
	}
	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	f, err := Decode(name, data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return f, nil
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops cached data and search directories.
func (m *Manager) Close() {
	hits, misses := m.cache.Stats()
	m.log.Debug("layout manager closed", zap.Int("hits", hits), zap.Int("misses", misses))

	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs = nil
	m.cache.Clear()
}

// Decode picks the decoder from the file name: .tmap files use the dense
// binary format, everything else is read as YAML.
func Decode(name string, data []byte) (*terrain.Field, error) {
	if strings.EqualFold(filepath.Ext(name), ".tmap") {
		tm, err := tilemap.Decode(data)
		if err != nil {
			return nil, err
		}
		return FromTileMap(tm), nil
	}
	f, _, err := ParseLayout(data)
	return f, err
}

var shared = sync.OnceValue(NewManager)

// Default returns a fresh copy of the embedded starting layout.
func Default() (*terrain.Field, error) {
	return shared().LoadField(DefaultMap)
}

// Cache is a simple in-memory cache for loaded files.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
