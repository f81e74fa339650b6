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

package source

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FileLoader implements Loader for local files, given as bare paths or file:// URLs
type FileLoader struct{}

// NewFileLoader creates a new file loader
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load reads the referenced file
func (l *FileLoader) Load(ctx context.Context, ref string) (*Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := localPath(ref)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat artifact %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("artifact %s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	return &Payload{
		Data: data,
		Name: filepath.Base(path),
		Metadata: map[string]string{
			"path":     path,
			"modified": info.ModTime().UTC().Format("2006-01-02T15:04:05Z"),
		},
	}, nil
}

func localPath(ref string) (string, error) {
	if !strings.HasPrefix(ref, "file:") {
		return ref, nil
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid file reference %q: %w", ref, err)
	}
	if u.Path == "" {
		return "", fmt.Errorf("file reference %q has no path", ref)
	}
	return filepath.FromSlash(u.Path), nil
}
