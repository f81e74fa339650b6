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

// Package config provides configuration management for the registry publisher.
package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/oddkinco/registry-publisher/internal/registry"
	"github.com/oddkinco/registry-publisher/internal/source"
)

// Config holds the configuration for the registry publisher
type Config struct {
	// Registry endpoint configuration
	Registries RegistriesConfig `json:"registries"`

	// HTTP client configuration
	HTTP HTTPConfig `json:"http"`

	// Publish configuration
	Publish PublishConfig `json:"publish"`

	// Hooks configuration
	Hooks HooksConfig `json:"hooks"`

	// Metrics configuration
	Metrics MetricsConfig `json:"metrics"`
}

// RegistriesConfig holds the endpoint settings of the built-in registries.
// Credentials are never part of it; they come from the environment at run time.
type RegistriesConfig struct {
	Maven   registry.MavenConfig   `json:"maven"`
	Bintray registry.BintrayConfig `json:"bintray"`
	GitHub  registry.GitHubConfig  `json:"github"`
}

// HTTPConfig holds HTTP client configuration
type HTTPConfig struct {
	// Timeout bounds every outbound request
	Timeout time.Duration `json:"timeout"`

	// User agent string for HTTP requests
	UserAgent string `json:"userAgent"`

	// CABundlePath is a PEM file trusted when loading artifacts over https
	CABundlePath string `json:"caBundlePath"`

	// InsecureSkipVerify disables TLS verification when loading artifacts
	InsecureSkipVerify bool `json:"insecureSkipVerify"`
}

// PublishConfig holds orchestration settings
type PublishConfig struct {
	// Concurrency caps the number of registries published to at once.
	// Zero publishes to every registry at once.
	Concurrency int `json:"concurrency"`
}

// HooksConfig holds prepare step execution configuration
type HooksConfig struct {
	// AllowListPath is the path to the allow-list of permitted commands
	AllowListPath string `json:"allowListPath"`

	// DefaultTimeout applies to prepare steps that set no timeout
	DefaultTimeout time.Duration `json:"defaultTimeout"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	// Enable metrics collection
	Enabled bool `json:"enabled"`

	// PushGatewayURL receives the metrics at the end of a run when set
	PushGatewayURL string `json:"pushGatewayURL"`

	// Job is the Pushgateway job label
	Job string `json:"job"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Registries: RegistriesConfig{
			Bintray: registry.BintrayConfig{
				APIURL: registry.DefaultBintrayAPIURL,
			},
			GitHub: registry.GitHubConfig{
				URL: registry.DefaultGitHubURL,
			},
		},
		HTTP: HTTPConfig{
			Timeout:   60 * time.Second,
			UserAgent: "registry-publisher/1.0",
		},
		Hooks: HooksConfig{
			AllowListPath:  "/etc/registry-publisher/allowlist.yaml",
			DefaultTimeout: 10 * time.Minute,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Job:     "registry_publisher",
		},
	}
}

// LoadFromEnvironment overlays configuration from the given environment.
// Unparseable values are ignored and the previous value is kept.
func (c *Config) LoadFromEnvironment(env map[string]string) {
	c.loadRegistriesFromEnv(env)
	c.loadHTTPFromEnv(env)
	c.loadPublishFromEnv(env)
	c.loadHooksFromEnv(env)
	c.loadMetricsFromEnv(env)
}

// loadRegistriesFromEnv loads registry endpoints from environment variables
func (c *Config) loadRegistriesFromEnv(env map[string]string) {
	if mavenURL := env["PUBLISH_MAVEN_URL"]; mavenURL != "" {
		c.Registries.Maven.URL = mavenURL
	}
	if includePOMStr := env["PUBLISH_MAVEN_INCLUDE_POM"]; includePOMStr != "" {
		if includePOM, err := strconv.ParseBool(includePOMStr); err == nil {
			c.Registries.Maven.IncludePOM = includePOM
		}
	}

	if apiURL := env["PUBLISH_BINTRAY_API_URL"]; apiURL != "" {
		c.Registries.Bintray.APIURL = apiURL
	}
	if subject := env["PUBLISH_BINTRAY_SUBJECT"]; subject != "" {
		c.Registries.Bintray.Subject = subject
	}
	if repository := env["PUBLISH_BINTRAY_REPOSITORY"]; repository != "" {
		c.Registries.Bintray.Repository = repository
	}
	if pkg := env["PUBLISH_BINTRAY_PACKAGE"]; pkg != "" {
		c.Registries.Bintray.Package = pkg
	}

	if githubURL := env["PUBLISH_GITHUB_URL"]; githubURL != "" {
		c.Registries.GitHub.URL = githubURL
	}
	// GitHub Actions exports the running repository as owner/name
	if slug := env["GITHUB_REPOSITORY"]; slug != "" {
		if owner, repo, ok := strings.Cut(slug, "/"); ok {
			c.Registries.GitHub.Owner = owner
			c.Registries.GitHub.Repository = repo
		}
	}
	if owner := env["PUBLISH_GITHUB_OWNER"]; owner != "" {
		c.Registries.GitHub.Owner = owner
	}
	if repository := env["PUBLISH_GITHUB_REPOSITORY"]; repository != "" {
		c.Registries.GitHub.Repository = repository
	}
}

// loadHTTPFromEnv loads HTTP configuration from environment variables
func (c *Config) loadHTTPFromEnv(env map[string]string) {
	if timeoutStr := env["PUBLISH_HTTP_TIMEOUT"]; timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			c.HTTP.Timeout = timeout
		}
	}
	if userAgent := env["PUBLISH_HTTP_USER_AGENT"]; userAgent != "" {
		c.HTTP.UserAgent = userAgent
	}
	if caBundle := env["PUBLISH_HTTP_CA_BUNDLE"]; caBundle != "" {
		c.HTTP.CABundlePath = caBundle
	}
	if insecureStr := env["PUBLISH_HTTP_INSECURE_SKIP_VERIFY"]; insecureStr != "" {
		if insecure, err := strconv.ParseBool(insecureStr); err == nil {
			c.HTTP.InsecureSkipVerify = insecure
		}
	}
}

// loadPublishFromEnv loads orchestration settings from environment variables
func (c *Config) loadPublishFromEnv(env map[string]string) {
	if concurrencyStr := env["PUBLISH_CONCURRENCY"]; concurrencyStr != "" {
		if concurrency, err := strconv.Atoi(concurrencyStr); err == nil {
			c.Publish.Concurrency = concurrency
		}
	}
}

// loadHooksFromEnv loads hooks configuration from environment variables
func (c *Config) loadHooksFromEnv(env map[string]string) {
	if allowListPath := env["PUBLISH_HOOKS_ALLOWLIST"]; allowListPath != "" {
		c.Hooks.AllowListPath = allowListPath
	}
	if timeoutStr := env["PUBLISH_HOOKS_DEFAULT_TIMEOUT"]; timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			c.Hooks.DefaultTimeout = timeout
		}
	}
}

// loadMetricsFromEnv loads metrics configuration from environment variables
func (c *Config) loadMetricsFromEnv(env map[string]string) {
	if enabledStr := env["PUBLISH_METRICS_ENABLED"]; enabledStr != "" {
		if enabled, err := strconv.ParseBool(enabledStr); err == nil {
			c.Metrics.Enabled = enabled
		}
	}
	if gateway := env["PUBLISH_METRICS_PUSHGATEWAY_URL"]; gateway != "" {
		c.Metrics.PushGatewayURL = gateway
	}
	if job := env["PUBLISH_METRICS_JOB"]; job != "" {
		c.Metrics.Job = job
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate registry endpoints
	if c.Registries.Maven.URL != "" {
		if err := validateEndpoint("maven URL", c.Registries.Maven.URL, "http", "https", "file"); err != nil {
			return err
		}
	}
	if err := validateEndpoint("bintray API URL", c.Registries.Bintray.APIURL, "http", "https"); err != nil {
		return err
	}
	if err := validateEndpoint("github URL", c.Registries.GitHub.URL, "http", "https"); err != nil {
		return err
	}

	// Validate HTTP configuration
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("HTTP timeout must be positive")
	}

	// Validate publish configuration
	if c.Publish.Concurrency < 0 {
		return fmt.Errorf("publish concurrency must be non-negative")
	}

	// Validate hooks configuration
	if c.Hooks.DefaultTimeout <= 0 {
		return fmt.Errorf("hooks default timeout must be positive")
	}

	// Validate metrics configuration
	if c.Metrics.PushGatewayURL != "" {
		if err := validateEndpoint("pushgateway URL", c.Metrics.PushGatewayURL, "http", "https"); err != nil {
			return err
		}
		if c.Metrics.Job == "" {
			return fmt.Errorf("metrics job must be specified when pushing metrics")
		}
	}

	return nil
}

func validateEndpoint(field, raw string, schemes ...string) error {
	if raw == "" {
		return fmt.Errorf("%s must be specified", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}
	for _, scheme := range schemes {
		if u.Scheme == scheme {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q: scheme must be one of %s", field, raw, strings.Join(schemes, ", "))
}

// RegistrySettings converts the configuration into adapter settings
func (c *Config) RegistrySettings() registry.Settings {
	return registry.Settings{
		Maven:   c.Registries.Maven,
		Bintray: c.Registries.Bintray,
		GitHub:  c.Registries.GitHub,
		HTTP: registry.HTTPOptions{
			Timeout:   c.HTTP.Timeout,
			UserAgent: c.HTTP.UserAgent,
		},
	}
}

// SourceHTTPConfig converts the configuration into artifact loader settings
func (c *Config) SourceHTTPConfig() source.HTTPConfig {
	return source.HTTPConfig{
		CABundlePath:       c.HTTP.CABundlePath,
		InsecureSkipVerify: c.HTTP.InsecureSkipVerify,
		Timeout:            c.HTTP.Timeout,
		UserAgent:          c.HTTP.UserAgent,
	}
}
