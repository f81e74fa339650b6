/*
Copyright (c) 2025 Odd Kin <oddkin@oddkin.co>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FilesystemBackend implements Backend for a repository rooted in a local
// directory, e.g. a file:// Maven repository
type FilesystemBackend struct {
	basePath string
	mutex    sync.RWMutex
}

// NewFilesystemBackend creates a new directory-backed repository.
// basePath is created when missing and must be writable.
func NewFilesystemBackend(basePath string) (*FilesystemBackend, error) {
	if basePath == "" {
		return nil, fmt.Errorf("repository path cannot be empty")
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base path %s: %w", basePath, err)
	}

	// Verify we can write to the directory
	testFile := filepath.Join(basePath, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		return nil, fmt.Errorf("base path %s is not writable: %w", basePath, err)
	}
	_ = os.Remove(testFile)

	return &FilesystemBackend{
		basePath: basePath,
	}, nil
}

// Store writes data to a file below the base path
func (f *FilesystemBackend) Store(_ context.Context, key string, data []byte) (string, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if err := validateKey(key); err != nil {
		return "", err
	}

	filePath := filepath.Join(f.basePath, filepath.FromSlash(key))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// Write through a temporary file so readers never observe a partial artifact
	tmp := filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", filePath, err)
	}
	if err := os.Rename(tmp, filePath); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to move file into place %s: %w", filePath, err)
	}

	return f.GetURL(key), nil
}

// Retrieve reads a file below the base path
func (f *FilesystemBackend) Retrieve(_ context.Context, key string) ([]byte, error) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	if err := validateKey(key); err != nil {
		return nil, err
	}

	filePath := filepath.Join(f.basePath, filepath.FromSlash(key))

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return data, nil
}

// GetURL returns the file URL of a stored object
func (f *FilesystemBackend) GetURL(key string) string {
	return fmt.Sprintf("file://%s/%s", filepath.ToSlash(f.basePath), strings.TrimPrefix(key, "/"))
}

// validateKey ensures the key doesn't contain path traversal attempts
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	if strings.Contains(key, "..") {
		return fmt.Errorf("key contains invalid path traversal: %s", key)
	}

	if strings.HasPrefix(key, "/") {
		return fmt.Errorf("key cannot start with /: %s", key)
	}

	return nil
}
