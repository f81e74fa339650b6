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

package registry

import (
	"encoding/xml"
	"fmt"

	"github.com/oddkinco/registry-publisher/internal/metadata"
	"github.com/oddkinco/registry-publisher/internal/project"
)

const (
	pomNamespace      = "http://maven.apache.org/POM/4.0.0"
	pomXSINamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	pomSchemaLocation = "http://maven.apache.org/POM/4.0.0 https://maven.apache.org/xsd/maven-4.0.0.xsd"
)

type pomProject struct {
	XMLName        xml.Name       `xml:"project"`
	Xmlns          string         `xml:"xmlns,attr"`
	XmlnsXSI       string         `xml:"xmlns:xsi,attr"`
	SchemaLocation string         `xml:"xsi:schemaLocation,attr"`
	ModelVersion   string         `xml:"modelVersion"`
	GroupID        string         `xml:"groupId"`
	ArtifactID     string         `xml:"artifactId"`
	Version        string         `xml:"version"`
	Packaging      string         `xml:"packaging,omitempty"`
	Name           string         `xml:"name"`
	URL            string         `xml:"url,omitempty"`
	Licenses       []pomLicense   `xml:"licenses>license,omitempty"`
	Developers     []pomDeveloper `xml:"developers>developer,omitempty"`
	SCM            *pomSCM        `xml:"scm,omitempty"`
}

type pomLicense struct {
	Name         string `xml:"name"`
	URL          string `xml:"url"`
	Distribution string `xml:"distribution,omitempty"`
}

type pomDeveloper struct {
	ID    string `xml:"id"`
	Name  string `xml:"name,omitempty"`
	Email string `xml:"email,omitempty"`
}

type pomSCM struct {
	URL string `xml:"url"`
}

// BuildPOM renders the project object model for coord. Only the coordinate is
// mandatory; the license, developer and scm sections appear when meta has them.
func BuildPOM(coord project.Coordinate, meta metadata.Descriptive, packaging string) ([]byte, error) {
	if coord.IsZero() {
		return nil, fmt.Errorf("cannot build POM for an unresolved coordinate")
	}

	pom := pomProject{
		Xmlns:          pomNamespace,
		XmlnsXSI:       pomXSINamespace,
		SchemaLocation: pomSchemaLocation,
		ModelVersion:   "4.0.0",
		GroupID:        coord.Group(),
		ArtifactID:     coord.ArtifactID(),
		Version:        coord.Version(),
		Packaging:      packaging,
		Name:           coord.ArtifactID(),
		URL:            meta.SCMURL,
	}

	if meta.HasLicense() {
		pom.Licenses = []pomLicense{{
			Name:         meta.LicenseName,
			URL:          meta.LicenseURL,
			Distribution: meta.Distribution,
		}}
	}
	if meta.HasDeveloper() {
		pom.Developers = []pomDeveloper{{
			ID:    meta.DeveloperID,
			Name:  meta.DeveloperName,
			Email: meta.DeveloperEmail,
		}}
	}
	if meta.HasSCM() {
		pom.SCM = &pomSCM{URL: meta.SCMURL}
	}

	out, err := xml.MarshalIndent(pom, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render POM: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}
