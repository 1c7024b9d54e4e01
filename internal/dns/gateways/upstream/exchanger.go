// Package upstream sends DNS queries to external nameservers over UDP
// and decodes the replies. It is thin I/O glue around the codec: all
// format logic lives in internal/dns/codec.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/kerren/dnswire/internal/dns/codec"
	"github.com/kerren/dnswire/internal/dns/common/log"
	"github.com/kerren/dnswire/internal/dns/domain"
)

// DialFunc establishes a network connection. It matches the signature
// of net.Dialer.DialContext so the real dialer can be injected directly
// and tests can substitute an in-memory connection.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Options configures an Exchanger.
type Options struct {
	// Servers is the ordered list of nameservers to try, as host:port.
	Servers []string

	// Timeout bounds each exchange when the context has no deadline.
	// Defaults to 5 seconds.
	Timeout time.Duration

	// Logger defaults to a no-op logger.
	Logger log.Logger

	// Dial defaults to a plain net.Dialer.
	Dial DialFunc
}

// Exchanger performs one-shot query/response exchanges against a fixed
// list of upstream servers, trying each in order until one answers.
type Exchanger struct {
	servers []string
	timeout time.Duration
	logger  log.Logger
	dial    DialFunc
}

// NewExchanger creates an Exchanger from opts. At least one server is
// required.
func NewExchanger(opts Options) (*Exchanger, error) {
	if len(opts.Servers) == 0 {
		return nil, errors.New("no upstream DNS servers provided")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	if opts.Dial == nil {
		opts.Dial = (&net.Dialer{}).DialContext
	}
	return &Exchanger{
		servers: opts.Servers,
		timeout: opts.Timeout,
		logger:  opts.Logger,
		dial:    opts.Dial,
	}, nil
}

// Exchange encodes query, sends it to each configured server in turn
// and returns the first decoded response whose ID matches the query.
func (e *Exchanger) Exchange(ctx context.Context, query *domain.Message) (*domain.Message, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var lastErr error
	for _, server := range e.servers {
		resp, err := e.exchangeServer(ctx, server, query)
		if err == nil {
			return resp, nil
		}
		e.logger.Warn(map[string]any{
			"server": server,
			"error":  err.Error(),
		}, "Upstream exchange failed")
		lastErr = err
	}
	return nil, fmt.Errorf("all %d upstream servers failed: %w", len(e.servers), lastErr)
}

func (e *Exchanger) exchangeServer(ctx context.Context, server string, query *domain.Message) (*domain.Message, error) {
	conn, err := e.dial(ctx, "udp", server)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	var buf [codec.MaxMessageSize]byte
	n, err := codec.Encode(query, buf[:])
	if err != nil {
		return nil, fmt.Errorf("encode failed: %w", err)
	}
	if _, err := conn.Write(buf[:n]); err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}

	n, err = conn.Read(buf[:])
	if err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}
	consumed, resp, err := codec.Decode(buf[:n])
	if err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}
	if resp.ID != query.ID {
		return nil, fmt.Errorf("response ID %d does not match query ID %d", resp.ID, query.ID)
	}

	e.logger.Debug(map[string]any{
		"server":   server,
		"query_id": query.ID,
		"size":     consumed,
		"answers":  len(resp.Answers),
		"rcode":    resp.RCode.String(),
	}, "Received upstream response")
	return resp, nil
}
