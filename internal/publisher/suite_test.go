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

package publisher

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oddkinco/registry-publisher/internal/artifact"
	"github.com/oddkinco/registry-publisher/internal/credentials"
	"github.com/oddkinco/registry-publisher/internal/metadata"
	"github.com/oddkinco/registry-publisher/internal/project"
	"github.com/oddkinco/registry-publisher/internal/registry"
)

func TestPublisher(t *testing.T) {
	RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Publisher Suite")
}

var (
	testProject   = project.Config{Group: "com.proximyst", ArtifactID: "sewer", Version: "0.4.0"}
	testLicense   = metadata.LicensePolicy{ID: "LGPL-3.0"}
	testDeveloper = metadata.DeveloperPolicy{ID: "Proximyst", Name: "Mariell Hoversholm", Email: "proximyst@proximy.st"}
	testSCM       = metadata.SCMPolicy{URL: "https://github.com/Proximyst/sewer"}
)

func newTestBundle() (*artifact.Bundle, error) {
	return artifact.NewBundle(
		artifact.NewArtifact(project.Primary, "jar", []byte("primary classes")),
		artifact.NewArtifact(project.Sources, "jar", []byte("sources")),
		artifact.NewArtifact(project.Javadoc, "jar", []byte("javadoc")),
	)
}

func newTestRequest(bundle *artifact.Bundle, env map[string]string) Request {
	return Request{
		Project:   testProject,
		License:   testLicense,
		Developer: testDeveloper,
		SCM:       testSCM,
		Bundle:    bundle,
		Env:       env,
	}
}

// fakeAdapter is a registry adapter that records its calls and never touches the network
type fakeAdapter struct {
	id      registry.RegistryID
	pair    credentials.EnvPair
	delay   time.Duration
	panics  bool
	failure error

	credentialCalls atomic.Int32
	publishCalls    atomic.Int32

	// inFlight and maxInFlight are shared between adapters of one test
	inFlight    *atomic.Int32
	maxInFlight *atomic.Int32

	mu       sync.Mutex
	seenMeta metadata.Descriptive
	seenUser string
}

func newFakeAdapter(id registry.RegistryID) *fakeAdapter {
	upper := map[registry.RegistryID]string{registry.Maven: "MAVEN", registry.Bintray: "BINTRAY", registry.GitHub: "GITHUB"}[id]
	return &fakeAdapter{
		id:   id,
		pair: credentials.EnvPair{UsernameVar: upper + "_USER", SecretVar: upper + "_SECRET"},
	}
}

func (f *fakeAdapter) ID() registry.RegistryID { return f.id }

func (f *fakeAdapter) Target() registry.Target { return registry.Target{Registry: f.id} }

func (f *fakeAdapter) Credentials() credentials.EnvPair {
	f.credentialCalls.Add(1)
	return f.pair
}

func (f *fakeAdapter) Supports(cred *credentials.Credential) bool {
	return cred != nil && cred.Registry == f.id
}

func (f *fakeAdapter) Publish(ctx context.Context, coord project.Coordinate, bundle *artifact.Bundle,
	meta metadata.Descriptive, cred *credentials.Credential) registry.Result {
	f.publishCalls.Add(1)

	if f.inFlight != nil {
		n := f.inFlight.Add(1)
		defer f.inFlight.Add(-1)
		for {
			seen := f.maxInFlight.Load()
			if n <= seen || f.maxInFlight.CompareAndSwap(seen, n) {
				break
			}
		}
	}

	f.mu.Lock()
	f.seenMeta = meta
	f.seenUser = cred.Username
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.panics {
		panic("adapter bug")
	}
	if f.failure != nil {
		return registry.Failed(f.id, f.failure)
	}
	return registry.Published(f.id, "https://"+string(f.id)+".example.com/"+coord.Path(), 3, bundle.Size())
}

func fakeAdapters() (*fakeAdapter, *fakeAdapter, *fakeAdapter) {
	return newFakeAdapter(registry.Maven), newFakeAdapter(registry.Bintray), newFakeAdapter(registry.GitHub)
}

func adapterList(adapters ...*fakeAdapter) []registry.Adapter {
	list := make([]registry.Adapter, 0, len(adapters))
	for _, a := range adapters {
		list = append(list, a)
	}
	return list
}

// recordingRecorder counts metric calls
type recordingRecorder struct {
	mu          sync.Mutex
	runs        []string
	targets     map[string]string
	loads       map[string]int
	activeDelta int
}

func newRecordingRecorder() *recordingRecorder {
	return &recordingRecorder{targets: map[string]string{}, loads: map[string]int{}}
}

func (r *recordingRecorder) RecordPublication(state string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, state)
}

func (r *recordingRecorder) RecordTargetResult(id, outcome string, _ time.Duration, _ int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets[id] = outcome
}

func (r *recordingRecorder) RecordArtifactLoad(scheme string, success bool, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if success {
		r.loads[scheme]++
	}
}

func (r *recordingRecorder) IncActivePublications(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activeDelta++
}

func (r *recordingRecorder) DecActivePublications(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activeDelta--
}
