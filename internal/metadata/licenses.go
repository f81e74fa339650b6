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

package metadata

import "strings"

// License is a resolved SPDX license
type License struct {
	ID   string
	Name string
	URL  string
}

var knownLicenses = map[string]License{
	"lgpl-3.0": {
		ID:   "LGPL-3.0",
		Name: "GNU Lesser Public License, Version 3.0",
		URL:  "https://www.gnu.org/licenses/lgpl-3.0.html",
	},
	"gpl-3.0": {
		ID:   "GPL-3.0",
		Name: "GNU General Public License, Version 3.0",
		URL:  "https://www.gnu.org/licenses/gpl-3.0.html",
	},
	"apache-2.0": {
		ID:   "Apache-2.0",
		Name: "The Apache License, Version 2.0",
		URL:  "https://www.apache.org/licenses/LICENSE-2.0.txt",
	},
	"mit": {
		ID:   "MIT",
		Name: "The MIT License",
		URL:  "https://opensource.org/licenses/MIT",
	},
	"bsd-3-clause": {
		ID:   "BSD-3-Clause",
		Name: "BSD 3-Clause License",
		URL:  "https://opensource.org/licenses/BSD-3-Clause",
	},
	"mpl-2.0": {
		ID:   "MPL-2.0",
		Name: "Mozilla Public License, Version 2.0",
		URL:  "https://www.mozilla.org/en-US/MPL/2.0/",
	},
}

// LookupLicense finds a license by SPDX identifier, ignoring case.
// The "-only" suffix used by newer SPDX lists maps onto the same entry.
func LookupLicense(id string) (License, bool) {
	key := strings.TrimSuffix(strings.ToLower(id), "-only")
	license, ok := knownLicenses[key]
	return license, ok
}
