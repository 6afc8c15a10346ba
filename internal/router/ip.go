package router

import (
	"net"

	"github.com/labstack/echo/v4"
)

// ipExtractor picks how c.RealIP resolves the client address. Without trusted
// proxies the TCP peer is used and forwarding headers are ignored. With them,
// X-Forwarded-For is walked from the right and stops at the first hop that is
// not one of the listed proxies.
func ipExtractor(trustedProxies []string) echo.IPExtractor {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect()
	}

	options := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trustedProxies {
		// Entries are validated as CIDRs when the config loads.
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			continue
		}
		options = append(options, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(options...)
}
