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

// Package metadata composes the registry-agnostic descriptive metadata of a publication.
package metadata

import (
	"net/url"

	"github.com/oddkinco/registry-publisher/internal/project"
)

// DistributionRepository means the license travels with the published package
const DistributionRepository = "repo"

// LicensePolicy selects the license by SPDX identifier. Name and URL are
// optional when the identifier is known.
type LicensePolicy struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// DeveloperPolicy identifies the developer or maintainer
type DeveloperPolicy struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// SCMPolicy points at the source repository
type SCMPolicy struct {
	URL string `json:"url"`
}

// Descriptive is the metadata shared by every registry adapter. It is a plain
// value: adapters receive copies and cannot change what other adapters see.
type Descriptive struct {
	LicenseID      string
	LicenseName    string
	LicenseURL     string
	Distribution   string
	DeveloperID    string
	DeveloperName  string
	DeveloperEmail string
	SCMURL         string
}

// HasLicense reports whether the license block is fully populated
func (d Descriptive) HasLicense() bool {
	return d.LicenseID != "" && d.LicenseName != "" && d.LicenseURL != ""
}

// HasDeveloper reports whether a developer is declared
func (d Descriptive) HasDeveloper() bool {
	return d.DeveloperID != ""
}

// HasSCM reports whether a source-control URL is declared
func (d Descriptive) HasSCM() bool {
	return d.SCMURL != ""
}

// Complete reports whether license, developer and scm are all present
func (d Descriptive) Complete() bool {
	return d.HasLicense() && d.HasDeveloper() && d.HasSCM()
}

// Compose builds the descriptive metadata from the three policies. It is pure:
// identical inputs produce identical output. Policy errors are *project.ConfigError.
func Compose(license LicensePolicy, developer DeveloperPolicy, scm SCMPolicy) (Descriptive, error) {
	resolved, err := resolveLicense(license)
	if err != nil {
		return Descriptive{}, err
	}

	if developer.ID == "" {
		return Descriptive{}, &project.ConfigError{Field: "developer.id", Reason: "must not be empty"}
	}

	if err := validateURL("scm.url", scm.URL); err != nil {
		return Descriptive{}, err
	}

	name := developer.Name
	if name == "" {
		name = developer.ID
	}

	return Descriptive{
		LicenseID:      resolved.ID,
		LicenseName:    resolved.Name,
		LicenseURL:     resolved.URL,
		Distribution:   DistributionRepository,
		DeveloperID:    developer.ID,
		DeveloperName:  name,
		DeveloperEmail: developer.Email,
		SCMURL:         scm.URL,
	}, nil
}

func resolveLicense(policy LicensePolicy) (License, error) {
	if policy.ID == "" {
		return License{}, &project.ConfigError{Field: "license.id", Reason: "must not be empty"}
	}

	license, known := LookupLicense(policy.ID)
	if !known {
		license = License{ID: policy.ID}
	}
	if policy.Name != "" {
		license.Name = policy.Name
	}
	if policy.URL != "" {
		license.URL = policy.URL
	}

	if license.URL == "" {
		return License{}, &project.ConfigError{
			Field:  "license.url",
			Value:  policy.ID,
			Reason: "unknown license identifier requires an explicit url",
		}
	}
	if err := validateURL("license.url", license.URL); err != nil {
		return License{}, err
	}
	if license.Name == "" {
		license.Name = license.ID
	}

	return license, nil
}

func validateURL(field, raw string) error {
	if raw == "" {
		return &project.ConfigError{Field: field, Reason: "must not be empty"}
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &project.ConfigError{Field: field, Value: raw, Reason: "must be an absolute url"}
	}
	return nil
}
