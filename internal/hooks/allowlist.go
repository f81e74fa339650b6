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

package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"
)

// AllowListConfig is the on-disk allow-list format
type AllowListConfig struct {
	// Commands maps a command path or base name to its rule
	Commands map[string]CommandRule `yaml:"commands"`
}

// CommandRule governs one command
type CommandRule struct {
	// Allowed must be true for the command to run
	Allowed bool `yaml:"allowed"`

	// ArgumentPatterns are regular expressions; every argument must match at
	// least one. An empty list permits any arguments.
	ArgumentPatterns []string `yaml:"argumentPatterns,omitempty"`
}

// FileAllowList implements AllowList by loading from a YAML file
type FileAllowList struct {
	path           string
	config         *AllowListConfig
	argPatterns    map[string][]*regexp.Regexp
	mu             sync.RWMutex
	allowByDefault bool
}

// NewFileAllowList loads an allow-list that denies unlisted commands
func NewFileAllowList(path string) (*FileAllowList, error) {
	return NewFileAllowListWithDefault(path, false)
}

// NewFileAllowListWithDefault loads an allow-list with the given policy for
// unlisted commands
func NewFileAllowListWithDefault(path string, allowByDefault bool) (*FileAllowList, error) {
	al := &FileAllowList{
		path:           path,
		argPatterns:    make(map[string][]*regexp.Regexp),
		allowByDefault: allowByDefault,
	}

	if err := al.Reload(); err != nil {
		return nil, fmt.Errorf("failed to load allow-list: %w", err)
	}

	return al, nil
}

// Reload re-reads the allow-list file. On error the previous rules stay in effect.
func (a *FileAllowList) Reload() error {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return fmt.Errorf("failed to read allow-list file: %w", err)
	}

	var config AllowListConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse allow-list file: %w", err)
	}

	argPatterns := make(map[string][]*regexp.Regexp)
	for cmd, rule := range config.Commands {
		if len(rule.ArgumentPatterns) == 0 {
			continue
		}
		patterns := make([]*regexp.Regexp, 0, len(rule.ArgumentPatterns))
		for _, pattern := range rule.ArgumentPatterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return fmt.Errorf("invalid regex pattern for command %s: %w", cmd, err)
			}
			patterns = append(patterns, re)
		}
		argPatterns[cmd] = patterns
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.config = &config
	a.argPatterns = argPatterns
	return nil
}

// IsAllowed checks if a command with given arguments is allowed. A rule for
// the exact command wins over a rule for its base name.
func (a *FileAllowList) IsAllowed(command string, args []string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.config == nil || a.config.Commands == nil {
		return a.allowByDefault
	}

	key := command
	rule, exists := a.config.Commands[key]
	if !exists {
		key = filepath.Base(command)
		rule, exists = a.config.Commands[key]
		if !exists {
			return a.allowByDefault
		}
	}

	if !rule.Allowed {
		return false
	}

	patterns := a.argPatterns[key]
	if len(patterns) == 0 {
		return true
	}

	for _, arg := range args {
		if !matchesAny(patterns, arg) {
			return false
		}
	}
	return true
}

func matchesAny(patterns []*regexp.Regexp, arg string) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(arg) {
			return true
		}
	}
	return false
}
