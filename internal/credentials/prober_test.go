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

package credentials

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
)

var testPairs = map[RegistryID]EnvPair{
	"maven":   {UsernameVar: "MAVEN_USERNAME", SecretVar: "MAVEN_PASSWORD"},
	"bintray": {UsernameVar: "BINTRAY_USER", SecretVar: "BINTRAY_KEY"},
	"github":  {UsernameVar: "GITHUB_ACTOR", SecretVar: "GITHUB_TOKEN"},
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		eligible []RegistryID
	}{
		{
			name: "empty environment",
			env:  map[string]string{},
		},
		{
			name: "only bintray pair present",
			env: map[string]string{
				"BINTRAY_USER": "proximyst",
				"BINTRAY_KEY":  "key",
			},
			eligible: []RegistryID{"bintray"},
		},
		{
			name: "username without secret",
			env: map[string]string{
				"MAVEN_USERNAME": "ci",
			},
		},
		{
			name: "empty secret value",
			env: map[string]string{
				"GITHUB_ACTOR": "octocat",
				"GITHUB_TOKEN": "",
			},
		},
		{
			name: "all pairs present",
			env: map[string]string{
				"MAVEN_USERNAME": "ci",
				"MAVEN_PASSWORD": "pw",
				"BINTRAY_USER":   "proximyst",
				"BINTRAY_KEY":    "key",
				"GITHUB_ACTOR":   "octocat",
				"GITHUB_TOKEN":   "ghp",
			},
			eligible: []RegistryID{"maven", "bintray", "github"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Probe(tt.env, testPairs)
			require.Len(t, result, len(testPairs))

			for id := range testPairs {
				cred, ok := result[id]
				require.True(t, ok, "registry %s missing from probe result", id)
				if containsID(tt.eligible, id) {
					require.NotNil(t, cred, "registry %s should be eligible", id)
					assert.Equal(t, id, cred.Registry)
					assert.NotEmpty(t, cred.Username)
					assert.NotEmpty(t, cred.Secret())
				} else {
					assert.Nil(t, cred, "registry %s should be absent", id)
				}
			}
		})
	}
}

func TestProbe_Independence(t *testing.T) {
	ids := []RegistryID{"maven", "bintray", "github"}

	rapid.Check(t, func(rt *rapid.T) {
		env := map[string]string{}
		present := map[RegistryID]bool{}
		for _, id := range ids {
			pair := testPairs[id]
			hasUser := rapid.Bool().Draw(rt, string(id)+"-user")
			hasSecret := rapid.Bool().Draw(rt, string(id)+"-secret")
			if hasUser {
				env[pair.UsernameVar] = "user-" + string(id)
			}
			if hasSecret {
				env[pair.SecretVar] = "secret-" + string(id)
			}
			present[id] = hasUser && hasSecret
		}

		result := Probe(env, testPairs)
		for _, id := range ids {
			if got := result[id] != nil; got != present[id] {
				rt.Fatalf("registry %s: eligible=%v, want %v", id, got, present[id])
			}
		}
	})
}

func TestCredential_RedactsSecret(t *testing.T) {
	cred := NewCredential("github", "octocat", "ghp_supersecret")

	assert.Equal(t, "ghp_supersecret", cred.Secret())
	assert.NotContains(t, cred.String(), "ghp_supersecret")
	assert.NotContains(t, fmt.Sprintf("%v", cred), "ghp_supersecret")
	assert.NotContains(t, fmt.Sprintf("%#v", cred), "ghp_supersecret")

	var absent *Credential
	assert.Equal(t, "<absent>", absent.String())
	assert.Empty(t, absent.Secret())
}

func TestEnviron(t *testing.T) {
	env := Environ([]string{
		"PATH=/usr/bin",
		"EMPTY=",
		"WITH_EQUALS=a=b",
		"PATH=/bin",
		"MALFORMED",
		"=nokey",
	})

	assert.Equal(t, map[string]string{
		"PATH":        "/bin",
		"EMPTY":       "",
		"WITH_EQUALS": "a=b",
	}, env)
}

func TestMerge(t *testing.T) {
	base := map[string]string{"A": "1", "B": "2"}
	overlay := map[string]string{"B": "3", "C": "4"}

	merged := Merge(base, overlay)

	assert.Equal(t, map[string]string{"A": "1", "B": "3", "C": "4"}, merged)
	assert.Equal(t, "2", base["B"], "base must not be modified")
}

func TestSecretEnvironment(t *testing.T) {
	scheme := runtime.NewScheme()
	require.NoError(t, corev1.AddToScheme(scheme))

	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "registry-credentials",
			Namespace: "ci",
		},
		Data: map[string][]byte{
			"BINTRAY_USER": []byte("proximyst"),
			"BINTRAY_KEY":  []byte("key"),
		},
	}

	k8sClient := fake.NewClientBuilder().WithScheme(scheme).WithObjects(secret).Build()

	env, err := SecretEnvironment(context.Background(), k8sClient, "ci", "registry-credentials")
	require.NoError(t, err)
	assert.Equal(t, "proximyst", env["BINTRAY_USER"])
	assert.Equal(t, "key", env["BINTRAY_KEY"])

	result := Probe(env, testPairs)
	assert.NotNil(t, result["bintray"])
	assert.Nil(t, result["maven"])

	_, err = SecretEnvironment(context.Background(), k8sClient, "ci", "missing")
	assert.Error(t, err)
}

func containsID(ids []RegistryID, id RegistryID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
