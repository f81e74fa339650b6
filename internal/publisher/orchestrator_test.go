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
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr/funcr"
	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/oddkinco/registry-publisher/internal/artifact"
	"github.com/oddkinco/registry-publisher/internal/metadata"
	"github.com/oddkinco/registry-publisher/internal/project"
	"github.com/oddkinco/registry-publisher/internal/registry"
	"github.com/oddkinco/registry-publisher/internal/source"
	"github.com/oddkinco/registry-publisher/internal/storage"
)

// countingServer answers every request with status and counts them
type countingServer struct {
	*httptest.Server
	requests atomic.Int32
}

func newCountingServer(status int) *countingServer {
	s := &countingServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		w.WriteHeader(status)
	}))
	return s
}

// builtinAdapters returns the default adapters with the generic host writing to repo
func builtinAdapters(settings registry.Settings, repo *storage.MemoryBackend) []registry.Adapter {
	return []registry.Adapter{
		registry.NewMavenAdapter(settings.Maven, settings.HTTP).WithBackendFactory(
			func(string, storage.Options) (storage.Backend, error) { return repo, nil }),
		registry.NewBintrayAdapter(settings.Bintray, settings.HTTP),
		registry.NewGitHubAdapter(settings.GitHub, settings.HTTP),
	}
}

func outcomes(report *Report) []string {
	var out []string
	for _, result := range report.Results {
		out = append(out, string(result.Registry)+"="+string(result.Outcome))
	}
	return out
}

var _ = ginkgo.Describe("Orchestrator", func() {
	var (
		ctx    context.Context
		bundle *artifact.Bundle
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		var err error
		bundle, err = newTestBundle()
		Expect(err).NotTo(HaveOccurred())
	})

	ginkgo.Context("with the built-in registry adapters", func() {
		var (
			host     *countingServer
			repo     *storage.MemoryBackend
			settings registry.Settings
		)

		ginkgo.BeforeEach(func() {
			host = newCountingServer(http.StatusCreated)
			ginkgo.DeferCleanup(host.Close)
			repo = storage.NewMemoryBackend()

			settings = registry.Settings{
				Maven:   registry.MavenConfig{URL: host.URL + "/releases"},
				Bintray: registry.BintrayConfig{APIURL: host.URL, Subject: "proximyst", Repository: "maven"},
				GitHub:  registry.GitHubConfig{URL: host.URL, Owner: "Proximyst", Repository: "sewer"},
				HTTP:    registry.HTTPOptions{Timeout: 5 * time.Second},
			}
		})

		ginkgo.It("skips every registry without any network call when no credentials are set", func() {
			orchestrator := New(registry.NewDefaultFactory(settings).Adapters())

			report, err := orchestrator.Run(ctx, newTestRequest(bundle, map[string]string{}))
			Expect(err).NotTo(HaveOccurred())
			Expect(report.State).To(Equal(StateDone))
			Expect(outcomes(report)).To(Equal([]string{"maven=Skipped", "bintray=Skipped", "github=Skipped"}))
			for _, result := range report.Results {
				Expect(result.Reason).To(Equal(registry.ReasonCredentialsAbsent))
			}
			Expect(report.Failed()).To(BeFalse())
			Expect(host.requests.Load()).To(BeZero())
		})

		ginkgo.It("publishes to the generic host only when only its credentials are set", func() {
			orchestrator := New(builtinAdapters(settings, repo))

			report, err := orchestrator.Run(ctx, newTestRequest(bundle, map[string]string{
				"MAVEN_USERNAME": "deployer",
				"MAVEN_PASSWORD": "hunter2",
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(outcomes(report)).To(Equal([]string{"maven=Published", "bintray=Skipped", "github=Skipped"}))
			Expect(report.Err()).NotTo(HaveOccurred())
			Expect(host.requests.Load()).To(BeZero())

			maven, ok := report.Result(registry.Maven)
			Expect(ok).To(BeTrue())
			Expect(maven.URL).To(Equal("memory://localhost/com/proximyst/sewer/0.4.0"))
			Expect(maven.Duration).To(BeNumerically(">", 0))

			stored, ok := repo.GetData("com/proximyst/sewer/0.4.0/sewer-0.4.0.jar")
			Expect(ok).To(BeTrue())
			Expect(string(stored)).To(Equal("primary classes"))
		})

		ginkgo.It("lays out com.example:lib:1.2.3 when only the generic host has credentials", func() {
			orchestrator := New(builtinAdapters(settings, repo))

			req := newTestRequest(bundle, map[string]string{
				"MAVEN_USERNAME": "deployer",
				"MAVEN_PASSWORD": "hunter2",
			})
			req.Project = project.Config{Group: "com.example", ArtifactID: "lib", Version: "1.2.3"}

			report, err := orchestrator.Run(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Coordinate.String()).To(Equal("com.example:lib:1.2.3"))
			Expect(outcomes(report)).To(Equal([]string{"maven=Published", "bintray=Skipped", "github=Skipped"}))
			Expect(host.requests.Load()).To(BeZero())

			maven, _ := report.Result(registry.Maven)
			Expect(maven.URL).To(Equal("memory://localhost/com/example/lib/1.2.3"))
			for _, name := range []string{"lib-1.2.3.jar", "lib-1.2.3-sources.jar", "lib-1.2.3-javadoc.jar"} {
				_, ok := repo.GetData("com/example/lib/1.2.3/" + name)
				Expect(ok).To(BeTrue(), name)
			}
		})

		ginkgo.It("keeps publishing to other registries when the package index fails", func() {
			index := newCountingServer(http.StatusInternalServerError)
			ginkgo.DeferCleanup(index.Close)
			settings.Bintray.APIURL = index.URL

			orchestrator := New(builtinAdapters(settings, repo))
			report, err := orchestrator.Run(ctx, newTestRequest(bundle, map[string]string{
				"MAVEN_USERNAME": "deployer",
				"MAVEN_PASSWORD": "hunter2",
				"BINTRAY_USER":   "proximyst",
				"BINTRAY_KEY":    "bintray-key",
				"GITHUB_ACTOR":   "Proximyst",
				"GITHUB_TOKEN":   "ghp_token",
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(report.State).To(Equal(StateDone))
			Expect(outcomes(report)).To(Equal([]string{"maven=Published", "bintray=Failed", "github=Published"}))
			Expect(report.Failed()).To(BeTrue())
			Expect(report.Err()).To(MatchError(ContainSubstring("bintray")))
			Expect(index.requests.Load()).To(BeNumerically(">", 0))
			Expect(host.requests.Load()).To(BeNumerically(">", 0))
		})
	})

	ginkgo.Context("when the declarations are invalid", func() {
		ginkgo.It("aborts on an empty version before probing credentials", func() {
			maven, bintray, github := fakeAdapters()
			recorder := newRecordingRecorder()
			orchestrator := New(adapterList(maven, bintray, github), WithMetrics(recorder))

			req := newTestRequest(bundle, map[string]string{"MAVEN_USER": "u", "MAVEN_SECRET": "s"})
			req.Project.Version = ""

			report, err := orchestrator.Run(ctx, req)
			Expect(err).To(HaveOccurred())
			Expect(project.IsConfigError(err)).To(BeTrue())
			Expect(report.State).To(Equal(StateAborted))
			Expect(report.AbortedIn).To(Equal(StateInit))
			Expect(report.Results).To(BeEmpty())
			Expect(report.Failed()).To(BeTrue())

			for _, a := range []*fakeAdapter{maven, bintray, github} {
				Expect(a.credentialCalls.Load()).To(BeZero())
				Expect(a.publishCalls.Load()).To(BeZero())
			}
			Expect(recorder.runs).To(Equal([]string{string(StateAborted)}))
		})

		ginkgo.It("aborts on an incomplete bundle", func() {
			maven, bintray, github := fakeAdapters()
			orchestrator := New(adapterList(maven, bintray, github))

			report, err := orchestrator.Run(ctx, newTestRequest(nil, nil))
			Expect(errors.Is(err, artifact.ErrIncompleteBundle)).To(BeTrue())
			Expect(report.AbortedIn).To(Equal(StateInit))
			Expect(maven.credentialCalls.Load()).To(BeZero())
		})

		ginkgo.It("aborts on unusable license metadata before any registry is attempted", func() {
			maven, bintray, github := fakeAdapters()
			orchestrator := New(adapterList(maven, bintray, github))

			req := newTestRequest(bundle, map[string]string{"MAVEN_USER": "u", "MAVEN_SECRET": "s"})
			req.License = metadata.LicensePolicy{ID: "Proprietary-1.0"}

			report, err := orchestrator.Run(ctx, req)
			Expect(project.IsConfigError(err)).To(BeTrue())
			Expect(report.AbortedIn).To(Equal(StateMetadataCompose))
			Expect(maven.publishCalls.Load()).To(BeZero())
		})
	})

	ginkgo.Context("with fake adapters", func() {
		ginkgo.It("publishes only to the registry that has credentials", func() {
			maven, bintray, github := fakeAdapters()
			orchestrator := New(adapterList(maven, bintray, github))

			report, err := orchestrator.Run(ctx, newTestRequest(bundle, map[string]string{
				"GITHUB_USER":   "Proximyst",
				"GITHUB_SECRET": "token",
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(outcomes(report)).To(Equal([]string{"maven=Skipped", "bintray=Skipped", "github=Published"}))
			Expect(maven.publishCalls.Load()).To(BeZero())
			Expect(bintray.publishCalls.Load()).To(BeZero())
			Expect(github.publishCalls.Load()).To(Equal(int32(1)))
			Expect(github.seenUser).To(Equal("Proximyst"))
		})

		ginkgo.It("treats a credential with an empty half as absent", func() {
			maven, bintray, github := fakeAdapters()
			orchestrator := New(adapterList(maven, bintray, github))

			report, err := orchestrator.Run(ctx, newTestRequest(bundle, map[string]string{
				"MAVEN_USER":   "deployer",
				"MAVEN_SECRET": "",
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(outcomes(report)).To(Equal([]string{"maven=Skipped", "bintray=Skipped", "github=Skipped"}))
		})

		ginkgo.It("gives every adapter the same metadata", func() {
			maven, bintray, github := fakeAdapters()
			orchestrator := New(adapterList(maven, bintray, github))

			report, err := orchestrator.Run(ctx, newTestRequest(bundle, map[string]string{
				"MAVEN_USER": "a", "MAVEN_SECRET": "a",
				"BINTRAY_USER": "b", "BINTRAY_SECRET": "b",
				"GITHUB_USER": "c", "GITHUB_SECRET": "c",
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Metadata.LicenseID).To(Equal("LGPL-3.0"))
			Expect(maven.seenMeta).To(Equal(report.Metadata))
			Expect(bintray.seenMeta).To(Equal(report.Metadata))
			Expect(github.seenMeta).To(Equal(report.Metadata))
		})

		ginkgo.It("does not cancel slower registries when one fails", func() {
			maven, bintray, github := fakeAdapters()
			maven.failure = errors.New("connection refused")
			github.delay = 50 * time.Millisecond
			orchestrator := New(adapterList(maven, bintray, github))

			report, err := orchestrator.Run(ctx, newTestRequest(bundle, map[string]string{
				"MAVEN_USER": "a", "MAVEN_SECRET": "a",
				"GITHUB_USER": "c", "GITHUB_SECRET": "c",
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(outcomes(report)).To(Equal([]string{"maven=Failed", "bintray=Skipped", "github=Published"}))
			Expect(report.Err()).To(MatchError(ContainSubstring("maven: connection refused")))
		})

		ginkgo.It("reports a panicking adapter as failed", func() {
			maven, bintray, github := fakeAdapters()
			bintray.panics = true
			orchestrator := New(adapterList(maven, bintray, github))

			report, err := orchestrator.Run(ctx, newTestRequest(bundle, map[string]string{
				"BINTRAY_USER": "b", "BINTRAY_SECRET": "b",
			}))
			Expect(err).NotTo(HaveOccurred())
			result, ok := report.Result(registry.Bintray)
			Expect(ok).To(BeTrue())
			Expect(result.Outcome).To(Equal(registry.OutcomeFailed))
			Expect(result.Reason).To(ContainSubstring("adapter panicked"))
		})

		ginkgo.It("honours the concurrency limit", func() {
			var inFlight, maxInFlight atomic.Int32
			maven, bintray, github := fakeAdapters()
			for _, a := range []*fakeAdapter{maven, bintray, github} {
				a.delay = 20 * time.Millisecond
				a.inFlight = &inFlight
				a.maxInFlight = &maxInFlight
			}
			orchestrator := New(adapterList(maven, bintray, github), WithConcurrency(1))

			report, err := orchestrator.Run(ctx, newTestRequest(bundle, map[string]string{
				"MAVEN_USER": "a", "MAVEN_SECRET": "a",
				"BINTRAY_USER": "b", "BINTRAY_SECRET": "b",
				"GITHUB_USER": "c", "GITHUB_SECRET": "c",
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(outcomes(report)).To(Equal([]string{"maven=Published", "bintray=Published", "github=Published"}))
			Expect(maxInFlight.Load()).To(Equal(int32(1)))
		})

		ginkgo.It("records metrics for the run and every target", func() {
			maven, bintray, github := fakeAdapters()
			recorder := newRecordingRecorder()
			orchestrator := New(adapterList(maven, bintray, github), WithMetrics(recorder))

			_, err := orchestrator.Run(ctx, newTestRequest(bundle, map[string]string{
				"MAVEN_USER": "a", "MAVEN_SECRET": "a",
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(recorder.runs).To(Equal([]string{string(StateDone)}))
			Expect(recorder.targets).To(Equal(map[string]string{
				"maven":   "Published",
				"bintray": "Skipped",
				"github":  "Skipped",
			}))
			Expect(recorder.activeDelta).To(BeZero())
		})

		ginkgo.It("never logs credential secrets", func() {
			var mu sync.Mutex
			var lines []string
			logger := funcr.New(func(prefix, args string) {
				mu.Lock()
				defer mu.Unlock()
				lines = append(lines, prefix+" "+args)
			}, funcr.Options{Verbosity: 1})

			maven, bintray, github := fakeAdapters()
			bintray.failure = errors.New("rejected")
			orchestrator := New(adapterList(maven, bintray, github))

			_, err := orchestrator.Run(log.IntoContext(ctx, logger), newTestRequest(bundle, map[string]string{
				"MAVEN_USER": "deployer", "MAVEN_SECRET": "maven-secret-value",
				"BINTRAY_USER": "proximyst", "BINTRAY_SECRET": "bintray-secret-value",
			}))
			Expect(err).NotTo(HaveOccurred())

			mu.Lock()
			defer mu.Unlock()
			Expect(lines).NotTo(BeEmpty())
			all := strings.Join(lines, "\n")
			Expect(all).NotTo(ContainSubstring("maven-secret-value"))
			Expect(all).NotTo(ContainSubstring("bintray-secret-value"))
		})
	})

	ginkgo.Context("with artifact references", func() {
		ginkgo.It("assembles the bundle from local files", func() {
			dir := ginkgo.GinkgoT().TempDir()
			refs := map[project.Classifier]string{}
			for _, c := range project.Classifiers() {
				path := filepath.Join(dir, "sewer-0.4.0-"+c.Name()+".jar")
				Expect(os.WriteFile(path, []byte(c.Name()), 0o644)).To(Succeed())
				refs[c] = path
			}

			recorder := newRecordingRecorder()
			loader := MeteredLoader(source.NewDefaultFactory(source.HTTPConfig{}), recorder)
			maven, bintray, github := fakeAdapters()
			orchestrator := New(adapterList(maven, bintray, github),
				WithAssembler(artifact.NewManager(loader)),
				WithMetrics(recorder))

			req := newTestRequest(nil, map[string]string{"MAVEN_USER": "a", "MAVEN_SECRET": "a"})
			req.References = refs

			report, err := orchestrator.Run(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Bundle).NotTo(BeNil())
			Expect(report.Bundle.Size()).To(Equal(int64(len("primary") + len("sources") + len("javadoc"))))
			Expect(recorder.loads["file"]).To(Equal(3))
			Expect(outcomes(report)).To(Equal([]string{"maven=Published", "bintray=Skipped", "github=Skipped"}))
		})

		ginkgo.It("aborts when a reference is missing", func() {
			maven, bintray, github := fakeAdapters()
			loader := MeteredLoader(source.NewDefaultFactory(source.HTTPConfig{}), nil)
			orchestrator := New(adapterList(maven, bintray, github), WithAssembler(artifact.NewManager(loader)))

			req := newTestRequest(nil, nil)
			req.References = map[project.Classifier]string{project.Primary: "build/libs/sewer.jar"}

			report, err := orchestrator.Run(ctx, req)
			Expect(errors.Is(err, artifact.ErrIncompleteBundle)).To(BeTrue())
			Expect(report.State).To(Equal(StateAborted))
			Expect(maven.credentialCalls.Load()).To(BeZero())
		})
	})
})
