// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package geo

import (
	"context"
	"fmt"
	"strings"

	"github.com/miekg/dns"
)

// DefaultCymruServer is the DNS resolver address CymruProvider queries unless
// told otherwise.
const DefaultCymruServer = "8.8.8.8:53"

// Team Cymru IP-to-ASN mapping zones.
const (
	cymruZone4 = "origin.asn.cymru.com."
	cymruZone6 = "origin6.asn.cymru.com."
)

// CymruProvider looks up the country code of the network announcing an IP
// address, using Team Cymru's IP-to-ASN mapping via DNS TXT records. The
// answers have the form "ASN | prefix | CC | registry | allocated".
type CymruProvider struct {
	Server string      // DNS resolver "host:port", defaults to DefaultCymruServer.
	Client *dns.Client // optional DNS client, defaults to UDP.
}

var _ Provider = (*CymruProvider)(nil)

// Name returns "cymru".
func (p *CymruProvider) Name() string { return "cymru" }

// Lookup queries the TXT record of the address in the corresponding origin
// zone and returns the country code column of the first answer having one.
func (p *CymruProvider) Lookup(ctx context.Context, addr string) (string, error) {
	name, err := cymruName(addr)
	if err != nil {
		return "", err
	}
	server := p.Server
	if server == "" {
		server = DefaultCymruServer
	}
	dnsclnt := p.Client
	if dnsclnt == nil {
		dnsclnt = &dns.Client{}
	}
	msg := dns.Msg{
		MsgHdr: dns.MsgHdr{Id: dns.Id()},
	}
	msg.SetQuestion(name, dns.TypeTXT)
	r, _, err := dnsclnt.ExchangeContext(ctx, &msg, server)
	if err != nil {
		return "", err
	}
	if r.Rcode != dns.RcodeSuccess {
		return "", fmt.Errorf("query for %q failed with %s", name, dns.RcodeToString[r.Rcode])
	}
	for _, rr := range r.Answer {
		txtRR, ok := rr.(*dns.TXT)
		if !ok {
			continue
		}
		columns := strings.Split(strings.Join(txtRR.Txt, ""), "|")
		if len(columns) < 3 {
			continue
		}
		if cc := strings.TrimSpace(columns[2]); cc != "" {
			return cc, nil
		}
	}
	return "", fmt.Errorf("query for %q yields no usable answers", name)
}

// cymruName returns the query name for the specified address, which is its
// reversed form inside either the IPv4 or IPv6 origin zone.
func cymruName(addr string) (string, error) {
	rev, err := dns.ReverseAddr(addr)
	if err != nil {
		return "", err
	}
	switch {
	case strings.HasSuffix(rev, ".in-addr.arpa."):
		return strings.TrimSuffix(rev, "in-addr.arpa.") + cymruZone4, nil
	case strings.HasSuffix(rev, ".ip6.arpa."):
		return strings.TrimSuffix(rev, "ip6.arpa.") + cymruZone6, nil
	}
	return "", fmt.Errorf("unsupported reverse name %q", rev)
}
