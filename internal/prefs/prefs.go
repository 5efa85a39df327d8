// Package prefs persists the viewer's two boolean preferences in a durable key-value store.
package prefs

import (
	"fmt"
	"strconv"
)

// Fixed storage keys.
const (
	WireframeKey  = "shapeViewer.wireframe"
	AutoRotateKey = "shapeViewer.autoRotate"
)

// Preferences are the user toggles that survive restarts.
type Preferences struct {
	Wireframe  bool
	AutoRotate bool
}

// Default returns preferences for a first run: solid rendering, rotation on.
func Default() Preferences {
	return Preferences{Wireframe: false, AutoRotate: true}
}

// Store is a string key-value namespace. GetItem reports ok=false for missing keys.
type Store interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	Close() error
}

// Load reads both preferences from s. A key that is missing, unreadable or not "true"/"false" keeps its default.
func Load(s Store) Preferences {
	p := Default()
	p.Wireframe = readBool(s, WireframeKey, p.Wireframe)
	p.AutoRotate = readBool(s, AutoRotateKey, p.AutoRotate)
	return p
}

func readBool(s Store, key string, def bool) bool {
	v, ok, err := s.GetItem(key)
	if err != nil || !ok {
		return def
	}
	switch v {
	case "true":
		return true
	case "false":
		return false
	}
	return def
}

// Put writes v under key as "true" or "false".
func Put(s Store, key string, v bool) error {
	if err := s.SetItem(key, strconv.FormatBool(v)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Backend selects a Store implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

// Open returns the store for backend at path. The memory backend ignores path.
func Open(backend Backend, path string) (Store, error) {
	switch backend {
	case BackendSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendFile:
		s, err := OpenFile(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory, "":
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown preference backend %q", backend)
}
