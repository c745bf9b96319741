package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"
)

// JSONStore keeps every key in one JSON object on disk. Each entry records
// how its value was stored so Read returns exactly the bytes passed to Write.
// Compact JSON objects and arrays are embedded to keep the file readable.
type JSONStore struct {
	path string

	mu     sync.Mutex
	values map[string][]byte
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string][]byte)
	return s.flush()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	var raw map[string]entry
	if len(data) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse storage file %s: %w", s.path, err)
		}
	}

	values := make(map[string][]byte, len(raw))
	for k, e := range raw {
		v, err := e.value()
		if err != nil {
			return fmt.Errorf("failed to parse storage file %s: key %s: %w", s.path, k, err)
		}
		values[k] = v
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) Read(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		return nil, false, ErrNotLoaded
	}
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *JSONStore) Write(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		return ErrNotLoaded
	}
	s.values[key] = append([]byte(nil), value...)
	return s.flush()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// flush writes the file through a temp file and rename. Caller holds mu.
func (s *JSONStore) flush() error {
	out := make(map[string]entry, len(s.values))
	for k, v := range s.values {
		out[k] = newEntry(v)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	data := buf.Bytes()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set storage permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace storage file: %w", err)
	}
	return nil
}

// entry is the on-disk form of one value. Exactly one field is set.
type entry struct {
	JSON   json.RawMessage `json:"json,omitempty"`
	Text   *string         `json:"text,omitempty"`
	Base64 []byte          `json:"base64,omitempty"`
}

func newEntry(v []byte) entry {
	if isCompactDocument(v) {
		return entry{JSON: json.RawMessage(v)}
	}
	if utf8.Valid(v) {
		text := string(v)
		return entry{Text: &text}
	}
	return entry{Base64: v}
}

// value reverses newEntry. Embedded JSON is compacted again since the file
// itself is written indented.
func (e entry) value() ([]byte, error) {
	switch {
	case len(e.JSON) > 0:
		var buf bytes.Buffer
		if err := json.Compact(&buf, e.JSON); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case e.Text != nil:
		return []byte(*e.Text), nil
	case e.Base64 != nil:
		return e.Base64, nil
	}
	return nil, fmt.Errorf("entry has no value")
}

// isCompactDocument reports whether v is a JSON object or array with no
// insignificant whitespace, which survives embedding byte for byte.
func isCompactDocument(v []byte) bool {
	if len(v) == 0 || (v[0] != '{' && v[0] != '[') {
		return false
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return false
	}
	return bytes.Equal(buf.Bytes(), v)
}
