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

// Package credentials discovers registry credentials from an explicit environment.
package credentials

import (
	"fmt"
	"strings"
)

// RegistryID names a known publication registry
type RegistryID string

// EnvPair is the fixed pair of environment variable names a registry reads
// its credential from
type EnvPair struct {
	UsernameVar string
	SecretVar   string
}

// Credential is a discovered username (or hosting actor) and secret token.
// The secret is unexported so that neither fmt nor reflection-based loggers
// can render it.
type Credential struct {
	Registry RegistryID
	Username string
	secret   string
}

// NewCredential builds a credential; used by tests and by Probe
func NewCredential(registry RegistryID, username, secret string) *Credential {
	return &Credential{
		Registry: registry,
		Username: username,
		secret:   secret,
	}
}

// Secret returns the secret token
func (c *Credential) Secret() string {
	if c == nil {
		return ""
	}
	return c.secret
}

// String never includes the secret
func (c *Credential) String() string {
	if c == nil {
		return "<absent>"
	}
	return fmt.Sprintf("%s(%s:***)", c.Registry, c.Username)
}

// GoString never includes the secret
func (c *Credential) GoString() string {
	return c.String()
}

// Probe looks up every registry's variable pair in env. The result holds one
// entry per registry in pairs; the entry is nil when either variable is missing
// or empty. Probe never fails and only reads env.
func Probe(env map[string]string, pairs map[RegistryID]EnvPair) map[RegistryID]*Credential {
	result := make(map[RegistryID]*Credential, len(pairs))
	for id, pair := range pairs {
		result[id] = lookup(env, id, pair)
	}
	return result
}

func lookup(env map[string]string, id RegistryID, pair EnvPair) *Credential {
	if pair.UsernameVar == "" || pair.SecretVar == "" {
		return nil
	}
	username := env[pair.UsernameVar]
	secret := env[pair.SecretVar]
	if username == "" || secret == "" {
		return nil
	}
	return NewCredential(id, username, secret)
}

// Environ converts KEY=value entries, as returned by os.Environ, into a map.
// Later duplicates win, matching getenv semantics.
func Environ(entries []string) map[string]string {
	env := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// Merge returns a new map with overlay entries taking precedence over base
func Merge(base, overlay map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}
