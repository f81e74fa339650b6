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

import "fmt"

// Classifier distinguishes artifacts published under the same coordinate
type Classifier string

const (
	// Primary is the compiled library itself; Maven leaves its classifier empty
	Primary Classifier = ""
	// Sources is the sources bundle
	Sources Classifier = "sources"
	// Javadoc is the API documentation bundle
	Javadoc Classifier = "javadoc"
)

// Classifiers lists every classifier a complete bundle carries, in publish order
func Classifiers() []Classifier {
	return []Classifier{Primary, Sources, Javadoc}
}

// ParseClassifier maps a manifest key onto a classifier. "primary" and "" both
// select the primary artifact.
func ParseClassifier(s string) (Classifier, error) {
	switch s {
	case "", "primary":
		return Primary, nil
	case string(Sources):
		return Sources, nil
	case string(Javadoc):
		return Javadoc, nil
	default:
		return "", fmt.Errorf("unknown classifier %q", s)
	}
}

// Name returns a printable name; the primary classifier renders as "primary"
func (c Classifier) Name() string {
	if c == Primary {
		return "primary"
	}
	return string(c)
}
