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
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/oddkinco/registry-publisher/api/v1alpha1"
	"github.com/oddkinco/registry-publisher/internal/config"
	"github.com/oddkinco/registry-publisher/internal/credentials"
	"github.com/oddkinco/registry-publisher/internal/registry"
)

var scheme = runtime.NewScheme()

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(v1alpha1.AddToScheme(scheme))
}

// options are the flags shared by every command
type options struct {
	publicationPath   string
	cluster           bool
	credentialsSecret string
}

func (o *options) bindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.publicationPath, "publication", "f", "publication.yaml",
		"Path to the Publication manifest")
	flags.BoolVar(&o.cluster, "cluster", false,
		"Read configuration from the ConfigMap named by CONFIG_MAP_NAMESPACE/CONFIG_MAP_NAME")
	flags.StringVar(&o.credentialsSecret, "credentials-secret", "",
		"Overlay registry credentials from a Secret, given as namespace/name")
}

// session is everything a command needs after flags and configuration are read
type session struct {
	config      *config.Config
	publication *v1alpha1.Publication
	env         map[string]string
	adapters    []registry.Adapter
}

func (o *options) load(ctx context.Context) (*session, error) {
	env := credentials.Environ(os.Environ())

	var k8sClient client.Client
	if o.cluster || o.credentialsSecret != "" {
		restConfig, err := ctrl.GetConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to get cluster config: %w", err)
		}
		k8sClient, err = client.New(restConfig, client.Options{Scheme: scheme})
		if err != nil {
			return nil, fmt.Errorf("failed to create cluster client: %w", err)
		}
	}

	if o.credentialsSecret != "" {
		namespace, name, ok := strings.Cut(o.credentialsSecret, "/")
		if !ok || namespace == "" || name == "" {
			return nil, fmt.Errorf("credentials secret must be namespace/name, got %q", o.credentialsSecret)
		}
		overlay, err := credentials.SecretEnvironment(ctx, k8sClient, namespace, name)
		if err != nil {
			return nil, err
		}
		env = credentials.Merge(env, overlay)
	}

	var configClient client.Client
	if o.cluster {
		configClient = k8sClient
	}
	cfg, err := config.NewManager(configClient, env).LoadConfig(ctx)
	if err != nil {
		return nil, err
	}

	pub, err := config.LoadPublication(o.publicationPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyPublication(pub)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &session{
		config:      cfg,
		publication: pub,
		env:         env,
		adapters:    registry.NewDefaultFactory(cfg.RegistrySettings()).Adapters(),
	}, nil
}

// credentialPairs returns the credential variables every adapter reads
func (s *session) credentialPairs() map[credentials.RegistryID]credentials.EnvPair {
	pairs := make(map[credentials.RegistryID]credentials.EnvPair, len(s.adapters))
	for _, adapter := range s.adapters {
		pairs[adapter.ID()] = adapter.Credentials()
	}
	return pairs
}

// hookEnvironment is the job environment without any registry credential
func (s *session) hookEnvironment() map[string]string {
	env := credentials.Merge(s.env, nil)
	for _, pair := range s.credentialPairs() {
		delete(env, pair.UsernameVar)
		delete(env, pair.SecretVar)
	}
	return env
}
