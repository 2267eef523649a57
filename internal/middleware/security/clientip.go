package security

import (
	"net"
	"net/http"
	"strings"
)

// trustedProxyNetworks lists the source networks whose forwarding headers
// are honored. Headers from any other peer are ignored.
var trustedProxyNetworks = mustParseCIDRs(
	"127.0.0.0/8",
	"::1/128",
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
)

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		_, n, err := net.ParseCIDR(c)
		if err != nil {
			panic("security: invalid CIDR " + c)
		}
		nets = append(nets, n)
	}
	return nets
}

func isTrustedProxy(ip net.IP) bool {
	for _, n := range trustedProxyNetworks {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// ExtractClientIP returns the originating client address for a request.
// X-Forwarded-For and X-Real-IP are only honored when the direct peer is
// a trusted proxy; otherwise the connection address wins.
func ExtractClientIP(r *http.Request) string {
	remoteIP := remoteAddrIP(r)
	if remoteIP == nil {
		return r.RemoteAddr
	}

	if isTrustedProxy(remoteIP) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first := strings.TrimSpace(strings.Split(xff, ",")[0])
			if ip := net.ParseIP(first); ip != nil {
				return ip.String()
			}
		}
		if xr := strings.TrimSpace(r.Header.Get("X-Real-IP")); xr != "" {
			if ip := net.ParseIP(xr); ip != nil {
				return ip.String()
			}
		}
	}

	return remoteIP.String()
}

func remoteAddrIP(r *http.Request) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return net.ParseIP(host)
}
