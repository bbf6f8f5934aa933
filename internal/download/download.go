// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download writes generated content where the user can pick it up.
package download

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileSaver writes each saved file into Dir.
type FileSaver struct {
	Dir string
}

// Path returns where a file saved under name lands. Only the last element
// of name is used so a server-supplied name cannot escape Dir.
func (s FileSaver) Path(name string) (string, error) {
	base := filepath.Base(filepath.FromSlash(name))
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(s.Dir, base), nil
}

// Save copies r to Dir/name through a temporary file that is renamed into
// place once fully written. The MIME type does not affect the file on disk.
func (s FileSaver) Save(name, mimeType string, r io.Reader) error {
	destPath, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", s.Dir, err)
	}

	tmpFile, err := os.CreateTemp(s.Dir, ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, r)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", destPath, copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// MemorySaver keeps the most recent save in memory.
type MemorySaver struct {
	mu       sync.Mutex
	name     string
	mimeType string
	data     []byte
	saves    int
}

// Save records name, mimeType and the bytes of r.
func (m *MemorySaver) Save(name, mimeType string, r io.Reader) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.name, m.mimeType, m.data = name, mimeType, buf.Bytes()
	m.saves++
	return nil
}

// Last returns the most recent save.
func (m *MemorySaver) Last() (name, mimeType string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.name, m.mimeType, m.data
}

// Count returns how many times Save succeeded.
func (m *MemorySaver) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
