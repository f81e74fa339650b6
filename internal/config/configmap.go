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

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// ConfigMapLoader loads configuration from a Kubernetes ConfigMap
//
//nolint:revive // Clear naming is more important than avoiding "stuttering"
type ConfigMapLoader struct {
	client    client.Client
	namespace string
	name      string
}

// NewConfigMapLoader creates a new ConfigMap loader
func NewConfigMapLoader(k8sClient client.Client, namespace, name string) *ConfigMapLoader {
	return &ConfigMapLoader{
		client:    k8sClient,
		namespace: namespace,
		name:      name,
	}
}

// LoadConfig loads configuration from the ConfigMap
func (l *ConfigMapLoader) LoadConfig(ctx context.Context, config *Config) error {
	// Get the ConfigMap
	configMap := &corev1.ConfigMap{}
	key := types.NamespacedName{
		Namespace: l.namespace,
		Name:      l.name,
	}

	if err := l.client.Get(ctx, key, configMap); err != nil {
		return fmt.Errorf("failed to get ConfigMap %s/%s: %w", l.namespace, l.name, err)
	}

	// Load configuration from ConfigMap data
	if err := l.loadFromData(configMap.Data, config); err != nil {
		return fmt.Errorf("failed to load configuration from ConfigMap: %w", err)
	}

	return nil
}

// loadFromData loads configuration from ConfigMap data
func (l *ConfigMapLoader) loadFromData(data map[string]string, config *Config) error {
	// Check if there's a JSON configuration
	if jsonConfig, exists := data["config.json"]; exists {
		if err := json.Unmarshal([]byte(jsonConfig), config); err != nil {
			return fmt.Errorf("failed to parse JSON configuration: %w", err)
		}
		return nil
	}

	// Load individual configuration values
	l.loadRegistriesConfig(data, config)
	l.loadHTTPConfig(data, config)
	l.loadPublishConfig(data, config)
	l.loadHooksConfig(data, config)
	l.loadMetricsConfig(data, config)

	return nil
}

// loadRegistriesConfig loads registry endpoints from ConfigMap data
func (l *ConfigMapLoader) loadRegistriesConfig(data map[string]string, config *Config) {
	if mavenURL, exists := data["registries.maven.url"]; exists {
		config.Registries.Maven.URL = mavenURL
	}
	if includePOMStr, exists := data["registries.maven.includePOM"]; exists {
		if includePOM, err := strconv.ParseBool(includePOMStr); err == nil {
			config.Registries.Maven.IncludePOM = includePOM
		}
	}

	if apiURL, exists := data["registries.bintray.apiURL"]; exists {
		config.Registries.Bintray.APIURL = apiURL
	}
	if subject, exists := data["registries.bintray.subject"]; exists {
		config.Registries.Bintray.Subject = subject
	}
	if repository, exists := data["registries.bintray.repository"]; exists {
		config.Registries.Bintray.Repository = repository
	}
	if pkg, exists := data["registries.bintray.package"]; exists {
		config.Registries.Bintray.Package = pkg
	}

	if githubURL, exists := data["registries.github.url"]; exists {
		config.Registries.GitHub.URL = githubURL
	}
	if owner, exists := data["registries.github.owner"]; exists {
		config.Registries.GitHub.Owner = owner
	}
	if repository, exists := data["registries.github.repository"]; exists {
		config.Registries.GitHub.Repository = repository
	}
}

// loadHTTPConfig loads HTTP configuration from ConfigMap data
func (l *ConfigMapLoader) loadHTTPConfig(data map[string]string, config *Config) {
	if timeoutStr, exists := data["http.timeout"]; exists {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			config.HTTP.Timeout = timeout
		}
	}
	if userAgent, exists := data["http.userAgent"]; exists {
		config.HTTP.UserAgent = userAgent
	}
	if caBundle, exists := data["http.caBundlePath"]; exists {
		config.HTTP.CABundlePath = caBundle
	}
	if insecureStr, exists := data["http.insecureSkipVerify"]; exists {
		if insecure, err := strconv.ParseBool(insecureStr); err == nil {
			config.HTTP.InsecureSkipVerify = insecure
		}
	}
}

// loadPublishConfig loads orchestration settings from ConfigMap data
func (l *ConfigMapLoader) loadPublishConfig(data map[string]string, config *Config) {
	if concurrencyStr, exists := data["publish.concurrency"]; exists {
		if concurrency, err := strconv.Atoi(concurrencyStr); err == nil {
			config.Publish.Concurrency = concurrency
		}
	}
}

// loadHooksConfig loads hooks configuration from ConfigMap data
func (l *ConfigMapLoader) loadHooksConfig(data map[string]string, config *Config) {
	if allowListPath, exists := data["hooks.allowListPath"]; exists {
		config.Hooks.AllowListPath = allowListPath
	}
	if timeoutStr, exists := data["hooks.defaultTimeout"]; exists {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			config.Hooks.DefaultTimeout = timeout
		}
	}
}

// loadMetricsConfig loads metrics configuration from ConfigMap data
func (l *ConfigMapLoader) loadMetricsConfig(data map[string]string, config *Config) {
	if enabledStr, exists := data["metrics.enabled"]; exists {
		if enabled, err := strconv.ParseBool(enabledStr); err == nil {
			config.Metrics.Enabled = enabled
		}
	}
	if gateway, exists := data["metrics.pushGatewayURL"]; exists {
		config.Metrics.PushGatewayURL = gateway
	}
	if job, exists := data["metrics.job"]; exists {
		config.Metrics.Job = job
	}
}
