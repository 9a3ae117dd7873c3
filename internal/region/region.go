// Package region derives cloud-region hints from reverse DNS.
package region

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NordCoder/Coloscope/internal/resolver"
	"github.com/miekg/dns"
	"go.uber.org/zap"
)

var errNoAnswer = errors.New("no PTR answer")

// NoPTR is returned when the reverse lookup fails for any reason.
const NoPTR = "No PTR"

// ptrMaxLen caps unrecognized PTR values in the report.
const ptrMaxLen = 50

// Rule maps a region marker substring to a display label. Rules are
// checked in order; the first match wins.
type Rule struct {
	Marker string
	Label  string
}

// DefaultRules covers the regions we care about today. Extending the
// classifier means appending more rules, each independent.
var DefaultRules = []Rule{
	{Marker: "ap-northeast-1", Label: "AWS TOKYO ap-northeast-1"},
}

type Config struct {
	Servers []string
	Timeout time.Duration
}

// Classifier performs PTR lookups and matches the result against its
// rule set. Lookup failures collapse to the NoPTR marker.
type Classifier struct {
	client  *dns.Client
	servers []string
	rules   []Rule
	log     *zap.Logger

	lookup func(ctx context.Context, ip string) (string, error)
}

func New(cfg Config, rules []Rule, log *zap.Logger) *Classifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	if len(rules) == 0 {
		rules = DefaultRules
	}
	servers := cfg.Servers
	if len(servers) == 0 {
		servers = resolver.SystemServers()
	}
	c := &Classifier{
		client:  &dns.Client{Timeout: timeout},
		servers: servers,
		rules:   rules,
		log:     log,
	}
	c.lookup = c.lookupPTR
	return c
}

// Classify returns the region label for ip: a rule label with the
// availability zone appended, the raw PTR truncated to 50 characters
// when no rule matches, or NoPTR on lookup failure.
func (c *Classifier) Classify(ctx context.Context, ip string) string {
	ptr, err := c.lookup(ctx, ip)
	if err != nil || ptr == "" {
		c.log.Debug("reverse dns", zap.String("ip", ip), zap.Error(err))
		return NoPTR
	}
	ptr = strings.ToLower(ptr)

	for _, rule := range c.rules {
		idx := strings.Index(ptr, rule.Marker)
		if idx < 0 {
			continue
		}
		return rule.Label + zoneAfter(ptr[idx+len(rule.Marker):])
	}
	if len(ptr) > ptrMaxLen {
		ptr = ptr[:ptrMaxLen]
	}
	return ptr
}

// zoneAfter reads the availability-zone letters immediately following
// the region marker, "?" when there are none.
func zoneAfter(rest string) string {
	var zone strings.Builder
	for _, r := range rest {
		if r < 'a' || r > 'f' {
			break
		}
		zone.WriteRune(r)
	}
	if zone.Len() == 0 {
		return "?"
	}
	return zone.String()
}

func (c *Classifier) lookupPTR(ctx context.Context, ip string) (string, error) {
	rev, err := dns.ReverseAddr(ip)
	if err != nil {
		return "", err
	}
	m := new(dns.Msg)
	m.SetQuestion(rev, dns.TypePTR)
	m.RecursionDesired = true

	var lastErr error
	for _, server := range c.servers {
		resp, _, err := c.client.ExchangeContext(ctx, m, server)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.Rcode != dns.RcodeSuccess {
			return "", fmt.Errorf("ptr lookup rcode %s", dns.RcodeToString[resp.Rcode])
		}
		for _, rr := range resp.Answer {
			if p, ok := rr.(*dns.PTR); ok {
				return strings.TrimSuffix(p.Ptr, "."), nil
			}
		}
		return "", errNoAnswer
	}
	return "", lastErr
}
