package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var _ Store = (*FileStore)(nil)

// FileStore un archivo JSON por clave bajo un directorio de datos. Las
// escrituras son atómicas (archivo temporal + rename) para que una caída no
// deje una colección a medio escribir.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore crea el directorio de datos si no existe.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Read(key string, v any) bool {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}
	// Validar antes de deserializar: un archivo corrupto no debe dejar v a
	// medio rellenar.
	if !json.Valid(raw) {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

func (s *FileStore) Write(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(key))
}

func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// path mapea la clave a un nombre de archivo seguro; las claves llevan login
// de usuario, que puede contener caracteres fuera de [A-Za-z0-9._-].
func (s *FileStore) path(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			return r
		default:
			return '-'
		}
	}, key)
	return filepath.Join(s.dir, safe+".json")
}
