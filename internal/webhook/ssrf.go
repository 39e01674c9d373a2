package webhook

import (
	"net"
	"net/url"

	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
)

// ValidateURL rejects webhook targets that are not a plain public http/https
// endpoint, at the point an agent registers its webhook (§4.8,
// §7 validation: "SSRF-disallowed webhook URL"). An empty URL is always
// valid — it means the agent receives no webhooks.
func ValidateURL(raw string) error {
	return ValidateURLAllowPrivate(raw, false)
}

// ValidateURLAllowPrivate is ValidateURL with the loopback/private-range
// check relaxed when allowPrivate is true — set from Config.NodeEnv ==
// "development" (§4.10) so local webhook receivers work outside production.
func ValidateURLAllowPrivate(raw string, allowPrivate bool) error {
	if raw == "" {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return clawerr.InvalidArgumentf("webhook url: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return clawerr.InvalidArgumentf("webhook url: scheme must be http or https, got %q", u.Scheme)
	}
	host := u.Hostname()
	if host == "" {
		return clawerr.InvalidArgument("webhook url: missing host")
	}
	if allowPrivate {
		return nil
	}

	ips, err := net.LookupIP(host)
	if err != nil {
		// A host that is a literal IP always resolves via ParseIP even
		// without a working resolver.
		if ip := net.ParseIP(host); ip != nil {
			ips = []net.IP{ip}
		} else {
			return clawerr.InvalidArgumentf("webhook url: cannot resolve host %q", host)
		}
	}
	for _, ip := range ips {
		if isDisallowedHost(ip) {
			return clawerr.InvalidArgumentf("webhook url: host %q resolves to a disallowed address (%s)", host, ip)
		}
	}
	return nil
}

// isDisallowedHost reports whether ip is loopback, RFC1918 private,
// link-local, or the IPv6 localhost/loopback form — the SSRF-sensitive
// ranges named by §4.8.
func isDisallowedHost(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return true
	}
	if ip.IsPrivate() {
		return true
	}
	if ip.IsUnspecified() {
		return true
	}
	return false
}
