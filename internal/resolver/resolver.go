// Package resolver turns endpoint domains into IPv4 address sets.
package resolver

import (
	"context"
	"net"
	"sort"
	"time"

	"github.com/miekg/dns"
	"go.uber.org/zap"
)

type Config struct {
	// Servers are "host:port" upstreams tried in order. When empty the
	// system resolver configuration is used.
	Servers []string
	Timeout time.Duration
}

// Resolver performs A-record lookups with a hard per-query timeout.
// Any failure collapses to an empty address set; an unresolvable domain
// simply contributes no probe targets.
type Resolver struct {
	client  *dns.Client
	servers []string
	log     *zap.Logger

	// exchange is swapped out in tests.
	exchange func(ctx context.Context, m *dns.Msg, addr string) (*dns.Msg, error)
}

func New(cfg Config, log *zap.Logger) *Resolver {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	client := &dns.Client{Timeout: timeout}

	servers := cfg.Servers
	if len(servers) == 0 {
		servers = SystemServers()
	}

	r := &Resolver{client: client, servers: servers, log: log}
	r.exchange = func(ctx context.Context, m *dns.Msg, addr string) (*dns.Msg, error) {
		resp, _, err := r.client.ExchangeContext(ctx, m, addr)
		return resp, err
	}
	return r
}

// Resolve returns the deduplicated, ascending-sorted IPv4 addresses of
// domain. One attempt per upstream, no retry; empty on any failure.
func (r *Resolver) Resolve(ctx context.Context, domain string) []string {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(domain), dns.TypeA)
	m.RecursionDesired = true

	for _, server := range r.servers {
		resp, err := r.exchange(ctx, m, server)
		if err != nil {
			r.log.Debug("dns exchange", zap.String("domain", domain), zap.String("server", server), zap.Error(err))
			continue
		}
		if resp.Rcode != dns.RcodeSuccess {
			r.log.Debug("dns rcode", zap.String("domain", domain), zap.String("rcode", dns.RcodeToString[resp.Rcode]))
			return nil
		}
		return collectA(resp)
	}
	return nil
}

func collectA(resp *dns.Msg) []string {
	seen := make(map[string]struct{})
	for _, rr := range resp.Answer {
		a, ok := rr.(*dns.A)
		if !ok {
			continue
		}
		seen[a.A.String()] = struct{}{}
	}
	ips := make([]string, 0, len(seen))
	for ip := range seen {
		ips = append(ips, ip)
	}
	sort.Strings(ips)
	return ips
}

// SystemServers reads the upstreams from /etc/resolv.conf, with a
// public-resolver fallback when none are configured.
func SystemServers() []string {
	cc, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(cc.Servers) == 0 {
		return []string{"1.1.1.1:53"}
	}
	servers := make([]string, 0, len(cc.Servers))
	for _, s := range cc.Servers {
		servers = append(servers, net.JoinHostPort(s, cc.Port))
	}
	return servers
}
