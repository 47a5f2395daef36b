// Package registry holds named scene factories selectable from the command line
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lixenwraith/tarski/config"
)

// SceneFactory creates a fresh scene; callers may mutate the result
type SceneFactory func() *config.Scene

// SceneEntry holds a factory and its one-line description
type SceneEntry struct {
	Factory     SceneFactory
	Description string
}

var (
	scenesMu sync.RWMutex
	scenes   = make(map[string]SceneEntry)
)

// RegisterScene adds a scene factory by name, replacing any previous one
func RegisterScene(name, description string, factory SceneFactory) {
	scenesMu.Lock()
	defer scenesMu.Unlock()
	scenes[name] = SceneEntry{Factory: factory, Description: description}
}

// GetScene retrieves a scene entry by name
func GetScene(name string) (SceneEntry, bool) {
	scenesMu.RLock()
	defer scenesMu.RUnlock()
	e, ok := scenes[name]
	return e, ok
}

// SceneNames returns all registered scene names, sorted
func SceneNames() []string {
	scenesMu.RLock()
	defer scenesMu.RUnlock()
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open resolves ref as a registered scene name first, then as a file path
func Open(ref string) (*config.Scene, error) {
	if ref == "" {
		ref = DefaultScene
	}
	if e, ok := GetScene(ref); ok {
		return e.Factory(), nil
	}
	s, err := config.Load(ref)
	if err != nil {
		return nil, fmt.Errorf("scene %q is neither built in nor loadable: %w", ref, err)
	}
	return s, nil
}
