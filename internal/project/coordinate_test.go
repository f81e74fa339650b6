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

package project

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		errorField  string
	}{
		{
			name:   "valid coordinate",
			config: Config{Group: "com.example", ArtifactID: "lib", Version: "1.2.3"},
		},
		{
			name:   "original library coordinate",
			config: Config{Group: "com.proximyst", ArtifactID: "sewer", Version: "0.4.0"},
		},
		{
			name:   "snapshot version",
			config: Config{Group: "com.example", ArtifactID: "lib", Version: "1.0.0-SNAPSHOT"},
		},
		{
			name:        "empty group",
			config:      Config{Group: "", ArtifactID: "lib", Version: "1.2.3"},
			expectError: true,
			errorField:  "group",
		},
		{
			name:        "empty artifact id",
			config:      Config{Group: "com.example", ArtifactID: "", Version: "1.2.3"},
			expectError: true,
			errorField:  "artifactId",
		},
		{
			name:        "empty version",
			config:      Config{Group: "com.example", ArtifactID: "lib", Version: ""},
			expectError: true,
			errorField:  "version",
		},
		{
			name:        "whitespace in artifact id",
			config:      Config{Group: "com.example", ArtifactID: "my lib", Version: "1.2.3"},
			expectError: true,
			errorField:  "artifactId",
		},
		{
			name:        "path separator in group",
			config:      Config{Group: "com/example", ArtifactID: "lib", Version: "1.2.3"},
			expectError: true,
			errorField:  "group",
		},
		{
			name:        "backslash in version",
			config:      Config{Group: "com.example", ArtifactID: "lib", Version: "1\\2"},
			expectError: true,
			errorField:  "version",
		},
		{
			name:        "parent directory in artifact id",
			config:      Config{Group: "com.example", ArtifactID: "..lib", Version: "1.2.3"},
			expectError: true,
			errorField:  "artifactId",
		},
		{
			name:        "colon in group",
			config:      Config{Group: "com:example", ArtifactID: "lib", Version: "1.2.3"},
			expectError: true,
			errorField:  "group",
		},
		{
			name:   "maven release qualifier",
			config: Config{Group: "org.springframework", ArtifactID: "spring-core", Version: "5.3.0.RELEASE"},
		},
		{
			name:   "final qualifier",
			config: Config{Group: "org.hibernate", ArtifactID: "hibernate_core", Version: "1.0.0.Final"},
		},
		{
			name:   "build metadata in version",
			config: Config{Group: "com.example", ArtifactID: "lib", Version: "1.2.3+build.7"},
		},
		{
			name:        "fragment marker in artifact id",
			config:      Config{Group: "com.example", ArtifactID: "lib#x", Version: "1.2.3"},
			expectError: true,
			errorField:  "artifactId",
		},
		{
			name:        "query marker in group",
			config:      Config{Group: "com.example?x", ArtifactID: "lib", Version: "1.2.3"},
			expectError: true,
			errorField:  "group",
		},
		{
			name:        "percent escape in version",
			config:      Config{Group: "com.example", ArtifactID: "lib", Version: "1.2.3%2F"},
			expectError: true,
			errorField:  "version",
		},
		{
			name:        "plus outside version",
			config:      Config{Group: "com.example", ArtifactID: "lib+x", Version: "1.2.3"},
			expectError: true,
			errorField:  "artifactId",
		},
		{
			name:        "qualifier on an unparsable version",
			config:      Config{Group: "com.example", ArtifactID: "lib", Version: "latest.Final"},
			expectError: true,
			errorField:  "version",
		},
		{
			name:        "version is not semantic",
			config:      Config{Group: "com.example", ArtifactID: "lib", Version: "latest"},
			expectError: true,
			errorField:  "version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coord, err := Resolve(tt.config)
			if tt.expectError {
				require.Error(t, err)
				var cfgErr *ConfigError
				require.ErrorAs(t, err, &cfgErr)
				assert.Equal(t, tt.errorField, cfgErr.Field)
				assert.True(t, IsConfigError(err))
				assert.True(t, coord.IsZero())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.config.Group, coord.Group())
			assert.Equal(t, tt.config.ArtifactID, coord.ArtifactID())
			assert.Equal(t, tt.config.Version, coord.Version())
		})
	}
}

func TestCoordinate_Layout(t *testing.T) {
	coord, err := Resolve(Config{Group: "com.example", ArtifactID: "lib", Version: "1.2.3"})
	require.NoError(t, err)

	assert.Equal(t, "com.example:lib:1.2.3", coord.String())
	assert.Equal(t, "com/example", coord.GroupPath())
	assert.Equal(t, "com/example/lib", coord.ArtifactPath())
	assert.Equal(t, "com/example/lib/1.2.3", coord.Path())
	assert.Equal(t, "lib-1.2.3.jar", coord.FileName(Primary, "jar"))
	assert.Equal(t, "lib-1.2.3-sources.jar", coord.FileName(Sources, ".jar"))
	assert.Equal(t, "lib-1.2.3.pom", coord.FileName(Primary, "pom"))
	assert.Equal(t, "com/example/lib/1.2.3/lib-1.2.3-javadoc.jar", coord.FilePath(Javadoc, "jar"))
}

func TestResolve_Deterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := Config{
			Group:      rapid.StringMatching(`[a-z][a-z0-9]{0,8}(\.[a-z][a-z0-9]{0,8}){0,3}`).Draw(rt, "group"),
			ArtifactID: rapid.StringMatching(`[a-z][a-z0-9\-]{0,16}`).Draw(rt, "artifactId"),
			Version: fmt.Sprintf("%d.%d.%d",
				rapid.IntRange(0, 99).Draw(rt, "major"),
				rapid.IntRange(0, 99).Draw(rt, "minor"),
				rapid.IntRange(0, 99).Draw(rt, "patch")),
		}

		first, err := Resolve(cfg)
		if err != nil {
			rt.Fatalf("well-formed coordinate rejected: %v", err)
		}
		second, err := Resolve(cfg)
		if err != nil {
			rt.Fatalf("second resolve failed: %v", err)
		}
		if first != second {
			rt.Fatalf("resolve not deterministic: %v != %v", first, second)
		}
	})
}

func TestParseClassifier(t *testing.T) {
	tests := []struct {
		input   string
		want    Classifier
		wantErr bool
	}{
		{input: "", want: Primary},
		{input: "primary", want: Primary},
		{input: "sources", want: Sources},
		{input: "javadoc", want: Javadoc},
		{input: "tests", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClassifier(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "primary", Primary.Name())
	assert.Equal(t, "sources", Sources.Name())
}
