// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package geo

import (
	"context"
	"net"

	"github.com/miekg/dns"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

// startDNS runs a local UDP DNS server answering TXT queries from the
// specified name-to-text mapping, and returns its address.
func startDNS(answers map[string]string) string {
	pc := Successful(net.ListenPacket("udp", "127.0.0.1:0"))
	started := make(chan struct{})
	srv := &dns.Server{
		PacketConn:        pc,
		NotifyStartedFunc: func() { close(started) },
		Handler: dns.HandlerFunc(func(w dns.ResponseWriter, req *dns.Msg) {
			resp := new(dns.Msg)
			resp.SetReply(req)
			q := req.Question[0]
			txt, ok := answers[q.Name]
			if !ok || q.Qtype != dns.TypeTXT {
				resp.Rcode = dns.RcodeNameError
			} else {
				resp.Answer = append(resp.Answer, &dns.TXT{
					Hdr: dns.RR_Header{Name: q.Name, Rrtype: dns.TypeTXT, Class: dns.ClassINET, Ttl: 60},
					Txt: []string{txt},
				})
			}
			_ = w.WriteMsg(resp)
		}),
	}
	go func() {
		defer GinkgoRecover()
		_ = srv.ActivateAndServe()
	}()
	Eventually(started).Should(BeClosed())
	DeferCleanup(func() { _ = srv.Shutdown() })
	return pc.LocalAddr().String()
}

var _ = Describe("Team Cymru provider", func() {

	DescribeTable("deriving query names",
		func(addr, name string) {
			Expect(cymruName(addr)).To(Equal(name))
		},
		Entry("IPv4", "192.0.2.1", "1.2.0.192.origin.asn.cymru.com."),
		Entry("IPv6", "2001:db8::1",
			"1.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.8.b.d.0.1.0.0.2.origin6.asn.cymru.com."),
	)

	It("rejects invalid addresses", func() {
		_, err := cymruName("not-an-ip")
		Expect(err).To(HaveOccurred())
	})

	It("looks up the country code column", func(ctx context.Context) {
		server := startDNS(map[string]string{
			"1.2.0.192.origin.asn.cymru.com.": "64496 | 192.0.2.0/24 | DE | ripencc | 2001-01-01",
			"2.2.0.192.origin.asn.cymru.com.": "64496 | 192.0.2.0/24 |  | ripencc | 2001-01-01",
		})
		p := &CymruProvider{Server: server}
		Expect(p.Name()).To(Equal("cymru"))
		Expect(p.Lookup(ctx, "192.0.2.1")).To(Equal("DE"))

		_, err := p.Lookup(ctx, "192.0.2.2")
		Expect(err).To(MatchError(ContainSubstring("no usable answers")))

		_, err = p.Lookup(ctx, "192.0.2.3")
		Expect(err).To(MatchError(ContainSubstring("NXDOMAIN")))
	})

})
