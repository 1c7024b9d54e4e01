// Package resolvconf discovers system nameservers from the resolver
// configuration file (/etc/resolv.conf on Unix-like systems).
package resolvconf

import (
	"bufio"
	"net/netip"
	"os"
	"strings"
)

// DefaultPath is where Unix-like systems keep the resolver configuration.
const DefaultPath = "/etc/resolv.conf"

// Source reads nameserver addresses from a resolv.conf style file.
// The zero value reads DefaultPath.
type Source struct {
	// Path overrides the file location. Empty means DefaultPath.
	Path string
}

// Nameservers returns the addresses listed on "nameserver" lines, in
// file order. Lines that do not parse as an IP address are skipped; a
// missing or unreadable file yields an empty list, matching the
// best-effort contract of OS resolver discovery.
func (s Source) Nameservers() []netip.Addr {
	path := s.Path
	if path == "" {
		path = DefaultPath
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var servers []netip.Addr
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		rest, ok := strings.CutPrefix(line, "nameserver")
		if !ok {
			continue
		}
		addr, err := netip.ParseAddr(strings.TrimSpace(rest))
		if err != nil {
			continue
		}
		servers = append(servers, addr)
	}
	return servers
}

// Nameservers reads the default resolver configuration.
func Nameservers() []netip.Addr {
	return Source{}.Nameservers()
}
