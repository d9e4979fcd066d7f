// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding/simplifiedchinese"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
	. "github.com/thediveo/success"
)

var _ = Describe("listing sources", func() {

	BeforeEach(func() {
		goodgos := Goroutines()
		DeferCleanup(func() {
			Eventually(Goroutines).Within(2 * time.Second).ProbeEvery(100 * time.Millisecond).
				ShouldNot(HaveLeaked(goodgos))
		})
	})

	DescribeTable("picking sources",
		func(spec string, expected Source) {
			Expect(For(spec)).To(BeAssignableToTypeOf(expected))
			Expect(For(spec).Name()).NotTo(BeEmpty())
		},
		Entry("http", "http://example.org/ip.txt", &HTTP{}),
		Entry("https", "https://example.org/ip.txt", &HTTP{}),
		Entry("stdin", "-", &Reader{}),
		Entry("file", "ip.txt", &File{}),
	)

	When("fetching web listings", func() {

		var srv *httptest.Server

		BeforeEach(func() {
			gbk := Successful(simplifiedchinese.GBK.NewEncoder().String("1.2.3.4#中国\n"))
			srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/ip.txt":
					_, _ = w.Write([]byte("1.2.3.4\r\n\n2001:db8::1 443 US\n5.6.7.8#DE"))
				case "/gbk.txt":
					w.Header().Set("Content-Type", "text/plain; charset=gbk")
					_, _ = w.Write([]byte(gbk))
				case "/slow.txt":
					select {
					case <-time.After(5 * time.Second):
					case <-r.Context().Done():
					}
				default:
					http.NotFound(w, r)
				}
			}))
			DeferCleanup(func() {
				srv.CloseClientConnections()
				srv.Close()
			})
		})

		It("returns the lines", func(ctx context.Context) {
			s := &HTTP{URL: srv.URL + "/ip.txt"}
			Expect(s.Name()).To(Equal(srv.URL + "/ip.txt"))
			Expect(s.Lines(ctx)).To(Equal([]string{
				"1.2.3.4", "", "2001:db8::1 443 US", "5.6.7.8#DE",
			}))
		})

		It("decodes the announced charset", func(ctx context.Context) {
			s := &HTTP{URL: srv.URL + "/gbk.txt"}
			Expect(s.Lines(ctx)).To(Equal([]string{"1.2.3.4#中国"}))
		})

		It("fails on non-200 status", func(ctx context.Context) {
			s := &HTTP{URL: srv.URL + "/missing.txt"}
			_, err := s.Lines(ctx)
			Expect(err).To(MatchError(ContainSubstring("404")))
		})

		It("times out", func(ctx context.Context) {
			s := &HTTP{URL: srv.URL + "/slow.txt", Timeout: 100 * time.Millisecond}
			_, err := s.Lines(ctx)
			Expect(err).To(MatchError(context.DeadlineExceeded))
		})

	})

	It("reads files", func(ctx context.Context) {
		path := filepath.Join(GinkgoT().TempDir(), "ip.txt")
		Expect(os.WriteFile(path, []byte("1.2.3.4\nfoo\n"), 0o644)).To(Succeed())
		Expect((&File{Path: path}).Lines(ctx)).To(Equal([]string{"1.2.3.4", "foo"}))

		_, err := (&File{Path: path + ".missing"}).Lines(ctx)
		Expect(err).To(HaveOccurred())
	})

	It("reads readers", func(ctx context.Context) {
		s := &Reader{Label: "test", R: strings.NewReader("a\nb")}
		Expect(s.Name()).To(Equal("test"))
		Expect(s.Lines(ctx)).To(Equal([]string{"a", "b"}))
	})

})
