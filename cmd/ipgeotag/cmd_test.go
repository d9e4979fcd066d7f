// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/siemens/ipgeotag/config"
	"github.com/siemens/ipgeotag/test"
	"github.com/siemens/ipgeotag/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

var _ = Describe("ipgeotag command", func() {

	var dir string
	var geosrv *test.GeoServer
	var cfgPath string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		geosrv = test.NewGeoServer(map[string]string{"1.2.3.4": "US"})
		DeferCleanup(func() {
			geosrv.Close()
			http.DefaultClient.CloseIdleConnections()
		})
		cfgPath = filepath.Join(dir, "ipgeotag.yaml")
		Expect(os.WriteFile(cfgPath, []byte(`
workers: 4
failed: `+filepath.Join(dir, "failed.txt")+`
geo:
  timeout: 2s
  providers:
    - kind: http
      url: `+geosrv.URL+`/json/{ip}
      fields: [country]
`), 0o644)).To(Succeed())
	})

	content := func(path string) string {
		return string(Successful(os.ReadFile(path)))
	}

	execute := func(args ...string) (string, error) {
		var stderr bytes.Buffer
		cmd := newRootCmd()
		cmd.SetArgs(args)
		cmd.SetOut(&stderr)
		cmd.SetErr(&stderr)
		err := cmd.Execute()
		return stderr.String(), err
	}

	It("rejects invalid flags", func() {
		for _, args := range [][]string{
			{"--workers", "0"},
			{"--workers", "101"},
			{"--port", "0"},
			{"--probe-timeout", "0s"},
			{"--geo-timeout", "-1s"},
			{"--spinner", "1ms"},
			{"--port-strategy", "psychic", "a=b"},
			{"not-a-job"},
		} {
			_, err := execute(args...)
			Expect(err).To(HaveOccurred(), "args: %v", args)
		}
	})

	It("lets flags override the configuration file", func() {
		cmd := newRootCmd()
		Expect(cmd.ParseFlags([]string{
			"--config", cfgPath,
			"--workers", "7",
			"--port-strategy", "random",
			"--ports", "80,8080",
			"--honor-tags=false",
			"--unknown", "??",
		})).To(Succeed())
		cfg := Successful(configure(cmd, []string{"in.txt=out.txt"}))
		Expect(cfg.Workers).To(Equal(7))
		Expect(cfg.Port.Strategy).To(Equal("random"))
		Expect(cfg.Port.Ports).To(Equal([]int{80, 8080}))
		Expect(cfg.HonorTags).To(BeFalse())
		Expect(cfg.Unknown).To(Equal("??"))
		Expect(cfg.Geo.Timeout).To(Equal(2 * time.Second))
		Expect(cfg.Jobs).To(ConsistOf(config.Job{Input: "in.txt", Output: "out.txt"}))
	})

	It("falls back to the default jobs", func() {
		cmd := newRootCmd()
		Expect(cmd.ParseFlags(nil)).To(Succeed())
		cfg := Successful(configure(cmd, nil))
		Expect(cfg.Jobs).To(Equal(config.Default().Jobs))
	})

	It("tags listings", func() {
		in := filepath.Join(dir, "ip.txt")
		Expect(os.WriteFile(in, []byte("1.2.3.4\n1.2.3.4 8443 JP\n\n192.0.2.1\nfoo\n5.6.7.8#DE\n"), 0o644)).To(Succeed())
		out := filepath.Join(dir, "out", "best.txt")

		display, err := execute("--config", cfgPath, in+"="+out)
		Expect(err).NotTo(HaveOccurred())
		Expect(content(out)).To(Equal(
			"1.2.3.4:443#US\n192.0.2.1:443#" + types.DefaultUnknownLocation + "\n5.6.7.8:443#DE\nfoo"))
		Expect(content(filepath.Join(dir, "failed.txt"))).To(Equal(
			"192.0.2.1:443#" + types.DefaultUnknownLocation + "\n"))
		Expect(display).To(ContainSubstring("saved 4 records"))
		Expect(display).To(ContainSubstring("1 lookups failed"))
	})

	It("writes empty output for unavailable listings", func() {
		out := filepath.Join(dir, "empty.txt")
		_, err := execute("--config", cfgPath, filepath.Join(dir, "missing.txt")+"="+out)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(BeAnExistingFile())
		Expect(content(out)).To(BeEmpty())
		Expect(filepath.Join(dir, "failed.txt")).NotTo(BeAnExistingFile())
	})

	It("reports unwritable outputs but finishes other jobs", func() {
		in := filepath.Join(dir, "ip.txt")
		Expect(os.WriteFile(in, []byte("1.2.3.4\n"), 0o644)).To(Succeed())
		out := filepath.Join(dir, "ok.txt")
		_, err := execute("--config", cfgPath, in+"="+dir, in+"="+out)
		Expect(err).To(HaveOccurred())
		Expect(content(out)).To(Equal("1.2.3.4:443#US"))
	})

	It("exits with an error code", func() {
		defer func(old func(int)) { osExit = old }(osExit)
		var code int
		osExit = func(c int) { code = c; panic(errors.New("exit")) }
		defer func(old []string) { os.Args = old }(os.Args)
		os.Args = []string{"ipgeotag", "--workers", "0"}
		Expect(func() { main() }).To(PanicWith(MatchError("exit")))
		Expect(code).To(Equal(1))
	})

})
