package fetch

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"
)

// ErrForbiddenDestination marks references outside the allowed hosts, buckets
// or address ranges. Such references are rejected before any connection.
var ErrForbiddenDestination = errors.New("destination not allowed")

// allowedName reports whether name is in allowed. An empty list allows every
// name; an entry starting with "." also matches its subdomains.
func allowedName(name string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	name = strings.ToLower(strings.TrimSuffix(name, "."))
	for _, entry := range allowed {
		entry = strings.ToLower(strings.TrimSpace(entry))
		switch {
		case entry == "":
		case strings.HasPrefix(entry, "."):
			if name == entry[1:] || strings.HasSuffix(name, entry) {
				return true
			}
		case name == entry:
			return true
		}
	}
	return false
}

// cgnat is the shared address space of RFC 6598.
var cgnat = &net.IPNet{IP: net.IPv4(100, 64, 0, 0), Mask: net.CIDRMask(10, 32)}

// IsPublicIP reports whether ip is a globally routable unicast address.
func IsPublicIP(ip net.IP) bool {
	switch {
	case ip == nil,
		ip.IsUnspecified(),
		ip.IsLoopback(),
		ip.IsPrivate(),
		ip.IsLinkLocalUnicast(),
		ip.IsLinkLocalMulticast(),
		ip.IsInterfaceLocalMulticast(),
		ip.IsMulticast(),
		cgnat.Contains(ip):
		return false
	}
	return true
}

// publicOnly is a net.Dialer Control hook. It runs after name resolution, so
// a public hostname that resolves to a private address is refused too.
func publicOnly(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	if !IsPublicIP(net.ParseIP(host)) {
		return fmt.Errorf("%w: %s is not a public address", ErrForbiddenDestination, host)
	}
	return nil
}

// newTransport returns a transport that only dials public addresses unless
// allowPrivate is set. Proxies are disabled while guarding, since the guard
// would otherwise only see the proxy's address.
func newTransport(timeout time.Duration, allowPrivate bool) *http.Transport {
	dialer := &net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !allowPrivate {
		dialer.Control = publicOnly
		transport.Proxy = nil
	}
	transport.DialContext = dialer.DialContext
	return transport
}
