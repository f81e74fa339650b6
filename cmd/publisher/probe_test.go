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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `apiVersion: publishing.oddkin.co/v1alpha1
kind: Publication
metadata:
  name: sewer
spec:
  coordinate:
    group: com.proximyst
    artifactId: sewer
    version: 0.4.0
  license:
    id: LGPL-3.0
  developer:
    id: Proximyst
  scm:
    url: https://github.com/Proximyst/sewer
  artifacts:
    primary: build/libs/sewer-0.4.0.jar
    sources: build/libs/sewer-0.4.0-sources.jar
    javadoc: build/libs/sewer-0.4.0-javadoc.jar
  registries:
    maven:
      url: https://repo.example.com/releases
`

func loadTestSession(t *testing.T, env map[string]string) *session {
	t.Helper()
	path := filepath.Join(t.TempDir(), "publication.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testManifest), 0o644))

	for k, v := range env {
		t.Setenv(k, v)
	}
	for _, k := range []string{"MAVEN_USERNAME", "MAVEN_PASSWORD", "BINTRAY_USER", "BINTRAY_KEY", "GITHUB_ACTOR", "GITHUB_TOKEN"} {
		if _, ok := env[k]; !ok {
			t.Setenv(k, "")
		}
	}

	opts := &options{publicationPath: path}
	s, err := opts.load(context.Background())
	require.NoError(t, err)
	return s
}

func TestProbePrintsEligibilityWithoutSecrets(t *testing.T) {
	s := loadTestSession(t, map[string]string{
		"MAVEN_USERNAME": "deployer",
		"MAVEN_PASSWORD": "maven-secret-value",
	})

	var out bytes.Buffer
	require.NoError(t, s.printEligibility(&out))

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "maven")
	assert.Contains(t, string(lines[0]), "publish as deployer")
	assert.Contains(t, string(lines[1]), "bintray")
	assert.Contains(t, string(lines[1]), "skip: credentials absent")
	assert.Contains(t, string(lines[2]), "github")
	assert.NotContains(t, out.String(), "maven-secret-value")
}

func TestHookEnvironmentDropsCredentials(t *testing.T) {
	s := loadTestSession(t, map[string]string{
		"MAVEN_USERNAME": "deployer",
		"MAVEN_PASSWORD": "maven-secret-value",
		"GITHUB_TOKEN":   "ghp_token",
		"BUILD_NUMBER":   "42",
	})

	env := s.hookEnvironment()
	assert.Equal(t, "42", env["BUILD_NUMBER"])
	for _, k := range []string{"MAVEN_USERNAME", "MAVEN_PASSWORD", "GITHUB_TOKEN", "GITHUB_ACTOR"} {
		assert.NotContains(t, env, k)
	}
	assert.Equal(t, "maven-secret-value", s.env["MAVEN_PASSWORD"])
}

func TestLoadRejectsMalformedSecretReference(t *testing.T) {
	opts := &options{publicationPath: "unused.yaml", credentialsSecret: "no-namespace"}
	_, err := opts.load(context.Background())
	require.Error(t, err)
}
