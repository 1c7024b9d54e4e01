// Package lookup provides a convenience API over the codec and the
// upstream gateway: build a query for a hostname, exchange it, and
// return the answer payloads.
package lookup

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/miekg/dns"
	"golang.org/x/net/idna"

	"github.com/kerren/dnswire/internal/dns/common/log"
	"github.com/kerren/dnswire/internal/dns/domain"
)

// Exchanger performs one query/response exchange against upstream
// nameservers.
type Exchanger interface {
	Exchange(ctx context.Context, query *domain.Message) (*domain.Message, error)
}

// Service resolves hostnames through an Exchanger.
type Service struct {
	exchanger Exchanger
	logger    log.Logger
}

// New creates a lookup Service.
func New(exchanger Exchanger, logger log.Logger) *Service {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Service{exchanger: exchanger, logger: logger}
}

// Query asks the upstream servers for records of the given type and
// returns the answer payloads. The hostname is normalized to its ASCII
// (punycode) form before querying.
func (s *Service) Query(ctx context.Context, host string, rrtype domain.RRType) ([]domain.RData, error) {
	name, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return nil, fmt.Errorf("invalid hostname %q: %w", host, err)
	}
	question, err := domain.NewQuestion(name, rrtype, domain.RRClassIN)
	if err != nil {
		return nil, err
	}

	query := domain.NewQuery(dns.Id())
	query.Questions = append(query.Questions, question)

	s.logger.Debug(map[string]any{
		"name":  name,
		"type":  rrtype.String(),
		"query": query.ID,
	}, "Sending DNS query")

	resp, err := s.exchanger.Exchange(ctx, query)
	if err != nil {
		return nil, err
	}
	if resp.RCode != domain.RCodeOK {
		return nil, fmt.Errorf("server returned %s for %q", resp.RCode, name)
	}

	data := make([]domain.RData, 0, len(resp.Answers))
	for _, answer := range resp.Answers {
		data = append(data, answer.Data)
	}
	return data, nil
}

// IPs queries A and then AAAA records for host and collects every
// address found. A failure of one of the two queries is tolerated as
// long as the other succeeds.
func (s *Service) IPs(ctx context.Context, host string) ([]netip.Addr, error) {
	var addrs []netip.Addr
	var lastErr error
	for _, rrtype := range []domain.RRType{domain.RRTypeA, domain.RRTypeAAAA} {
		data, err := s.Query(ctx, host, rrtype)
		if err != nil {
			lastErr = err
			continue
		}
		for _, d := range data {
			switch d := d.(type) {
			case domain.AData:
				addrs = append(addrs, d.Addr)
			case domain.AAAAData:
				addrs = append(addrs, d.Addr)
			}
		}
	}
	if len(addrs) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return addrs, nil
}
