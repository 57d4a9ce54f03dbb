package artnet

import (
	"fmt"
	"net"
	"strings"
)

const (
	// DefaultCIDR specifies the network CIDR an art-net network should have.
	DefaultCIDR = "192.168.6.0/24"
)

// FindArtNetIP finds the matching interface with an IP address inside cidr.
func FindArtNetIP(cidr string) (net.IP, error) {
	if cidr == "" {
		cidr = DefaultCIDR
	}
	_, cidrNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, fmt.Errorf("bad art-net network %q: %w", cidr, err)
	}
	address, err := net.InterfaceAddrs()
	if err != nil {
		return nil, fmt.Errorf("error getting ips: %w", err)
	}

	for _, addr := range address {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipNet.IP

		if strings.Contains(ip.String(), ":") {
			continue
		}

		if cidrNet.Contains(ip) {
			return ip, nil
		}
	}

	return nil, nil
}
