package requestcontext

import (
	"context"
	"net"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/runeforge-network/launchpad/pkg/logger"
	"github.com/runeforge-network/launchpad/pkg/logger/slogx"
)

type clientIPKey struct{}

type WithClientIPConfig struct {
	// TrustedProxiesIP is a list of proxy IP ranges between the server and the
	// client. When set, the client IP is the last entry of X-Forwarded-For
	// that is not a trusted proxy.
	TrustedProxiesIP []string `mapstructure:"trusted_proxies_ip"`

	// TrustedHeader is a header carrying the client IP (e.g. CF-Connecting-IP).
	// Takes priority over everything else when set.
	TrustedHeader string `mapstructure:"trusted_proxies_header"`

	// EnableRejectMalformedRequest returns 403 when the request went through
	// proxies but no client IP can be extracted.
	EnableRejectMalformedRequest bool `mapstructure:"enable_reject_malformed_request"`
}

// WithClientIP resolves the client IP with X-Forwarded-For spoofing prevention.
func WithClientIP(config WithClientIPConfig) Option {
	var trustedProxies trustedProxy
	if len(config.TrustedProxiesIP) > 0 {
		proxy, err := newTrustedProxy(config.TrustedProxiesIP)
		if err != nil {
			logger.Panic("Failed to parse trusted proxies", slogx.Error(err))
		}
		trustedProxies = proxy
	}

	return func(ctx context.Context, c *fiber.Ctx) (context.Context, error) {
		if config.TrustedHeader != "" {
			headerIP := c.Get(config.TrustedHeader)
			if ip := net.ParseIP(headerIP); ip != nil {
				return context.WithValue(ctx, clientIPKey{}, headerIP), nil
			}
		}

		rawIPs := c.IPs()
		ips := make([]net.IP, 0, len(rawIPs))
		for _, raw := range rawIPs {
			ips = append(ips, net.ParseIP(raw))
		}

		// direct connection, no proxies involved
		if len(ips) == 0 {
			return context.WithValue(ctx, clientIPKey{}, c.IP()), nil
		}

		if len(trustedProxies) > 0 {
			for i := len(ips) - 1; i >= 0; i-- {
				if !trustedProxies.IsTrusted(ips[i]) {
					return context.WithValue(ctx, clientIPKey{}, ips[i].String()), nil
				}
			}
			return context.WithValue(ctx, clientIPKey{}, rawIPs[0]), nil
		}

		if config.EnableRejectMalformedRequest {
			logger.WarnContext(ctx, "IP spoofing detected, rejecting request",
				slogx.String("ip", c.IP()),
				slogx.Any("ips", rawIPs),
			)
			return nil, requestcontextError{
				status:  fiber.StatusForbidden,
				message: "not allowed to access",
			}
		}

		return context.WithValue(ctx, clientIPKey{}, rawIPs[0]), nil
	}
}

// GetClientIP returns the client IP from the context, or an empty string if
// the request context middleware is not mounted.
func GetClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}

type trustedProxy []*net.IPNet

func newTrustedProxy(ranges []string) (trustedProxy, error) {
	nets := make([]*net.IPNet, 0, len(ranges))
	for _, r := range ranges {
		_, ipnet, err := net.ParseCIDR(r)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse CIDR for %q", r)
		}
		nets = append(nets, ipnet)
	}
	return trustedProxy(nets), nil
}

func (t trustedProxy) IsTrusted(ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, r := range t {
		if r.Contains(ip) {
			return true
		}
	}
	return false
}
