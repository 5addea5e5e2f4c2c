// Package dungeondata loads a generated level-set artifact for consumers
// that render or track levels.
package dungeondata

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/huaigu/monad-dungeon-quest/internal/level"
)

// DefaultFile is the artifact name written by the generator.
const DefaultFile = "dungeonData.json"

// Load reads and unmarshals a JSON file from fsys.
func Load[T any](fsys fs.FS, filename string) (T, error) {
	var result T

	content, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return result, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// LoadSet reads a level set and checks it is well formed.
func LoadSet(fsys fs.FS, filename string) (*level.Set, error) {
	set, err := Load[level.Set](fsys, filename)
	if err != nil {
		return nil, err
	}
	if err := level.ValidateSet(&set); err != nil {
		return nil, fmt.Errorf("invalid level set %s: %w", filename, err)
	}
	return &set, nil
}

// WriteSet writes set to path as indented JSON, creating the parent
// directory if needed. It returns the number of bytes written.
func WriteSet(path string, set *level.Set) (int, error) {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to encode level set: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return len(data), nil
}
