// dnsq is a small DNS query tool built on the dnswire codec. It sends a
// question for the given hostname to the system nameservers (or a
// configured override) and prints the decoded answers.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/netip"
	"os"
	"time"

	"github.com/kerren/dnswire/internal/dns/common/log"
	"github.com/kerren/dnswire/internal/dns/domain"
	"github.com/kerren/dnswire/internal/dns/gateways/resolvconf"
	"github.com/kerren/dnswire/internal/dns/gateways/upstream"
	"github.com/kerren/dnswire/internal/dns/infra/config"
	"github.com/kerren/dnswire/internal/dns/services/lookup"
)

const (
	version = "0.1.0-dev"
	appName = "dnsq"
)

func main() {
	rrtypeFlag := flag.String("type", "A", "record type to query (A, AAAA, MX, PTR, RP, TXT)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	hostname := flag.Arg(0)

	rrtype := domain.RRTypeFromString(*rrtypeFlag)
	if rrtype == 0 {
		fmt.Fprintf(os.Stderr, "unknown record type: %s\n", *rrtypeFlag)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	servers := cfg.Servers
	if len(servers) == 0 {
		servers = discoverServers()
	}
	if len(servers) == 0 {
		fmt.Fprintln(os.Stderr, "no nameservers found; set DNSQ_SERVERS")
		os.Exit(1)
	}

	log.Debug(map[string]any{
		"version": version,
		"servers": servers,
		"name":    hostname,
		"type":    rrtype.String(),
	}, "Starting query")

	exchanger, err := upstream.NewExchanger(upstream.Options{
		Servers: servers,
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		Logger:  log.GetLogger(),
	})
	if err != nil {
		log.Fatal(map[string]any{"error": err.Error()}, "Failed to build exchanger")
	}

	service := lookup.New(exchanger, log.GetLogger())
	answers, err := service.Query(context.Background(), hostname, rrtype)
	if err != nil {
		log.Fatal(map[string]any{"error": err.Error()}, "Query failed")
	}

	if len(answers) == 0 {
		fmt.Println("no answers")
		return
	}
	for _, data := range answers {
		fmt.Printf("%s\t%s\n", data.RRType(), data)
	}
}

// discoverServers reads the OS resolver configuration and appends the
// standard DNS port to each address.
func discoverServers() []string {
	var servers []string
	for _, addr := range resolvconf.Nameservers() {
		servers = append(servers, netip.AddrPortFrom(addr, 53).String())
	}
	return servers
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-type TYPE] hostname\n", appName)
	flag.PrintDefaults()
}
