// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package geo

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("MaxMind database provider", func() {

	It("reports missing databases", func() {
		_, err := OpenMMDB(filepath.Join(GinkgoT().TempDir(), "nothing.mmdb"), "")
		Expect(err).To(MatchError(ContainSubstring("cannot open MaxMind database")))
	})

	It("rejects garbage databases", func() {
		path := filepath.Join(GinkgoT().TempDir(), "garbage.mmdb")
		Expect(os.WriteFile(path, []byte("garbage"), 0o644)).To(Succeed())
		_, err := OpenMMDB(path, "en")
		Expect(err).To(HaveOccurred())
	})

	It("looks up countries", func(ctx context.Context) {
		path := os.Getenv("IPGEOTAG_TEST_MMDB")
		if path == "" {
			Skip("needs IPGEOTAG_TEST_MMDB pointing to a GeoLite2 Country database")
		}
		p, err := OpenMMDB(path, "en")
		Expect(err).NotTo(HaveOccurred())
		defer p.Close()
		Expect(p.Name()).To(Equal("mmdb:" + path))
		Expect(p.Lookup(ctx, "8.8.8.8")).To(Equal("United States"))
		_, err = p.Lookup(ctx, "not-an-ip")
		Expect(err).To(HaveOccurred())
	})

})
