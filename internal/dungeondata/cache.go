package dungeondata

import (
	"io/fs"
	"sync"
)

// Cache loads a level-set artifact at most once until Reset is called.
// Failed loads are not cached.
type Cache struct {
	fsys     fs.FS
	filename string

	mu       sync.Mutex
	registry *LevelRegistry
	loads    int
}

// NewCache creates a cache over the named artifact in fsys.
func NewCache(fsys fs.FS, filename string) *Cache {
	return &Cache{fsys: fsys, filename: filename}
}

// LoadOnce returns the cached registry, loading the artifact on first use.
func (c *Cache) LoadOnce() (*LevelRegistry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.registry != nil {
		return c.registry, nil
	}

	set, err := LoadSet(c.fsys, c.filename)
	if err != nil {
		return nil, err
	}
	c.registry = NewLevelRegistry(set)
	c.loads++
	return c.registry, nil
}

// Reset drops the cached registry so the next LoadOnce reads the artifact again.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.registry = nil
	c.mu.Unlock()
}

// Loaded reports whether a registry is cached.
func (c *Cache) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry != nil
}

// Loads returns how many times the artifact has been read successfully.
func (c *Cache) Loads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads
}
