// Package domains implements domain-name validation and the domain
// management workflows behind the `now domains` commands.
package domains

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ErrInvalidDomain indicates the supplied string is not a usable domain
// name. Validation is purely local; no network calls are made.
var ErrInvalidDomain = errors.New("invalid domain")

// ReservedSuffix is the platform-owned parent domain. Names under it are
// assigned automatically and never require ownership verification.
const ReservedSuffix = "now.sh"

// Name is a parsed domain argument: the registrable domain plus an
// optional subdomain prefix.
type Name struct {
	// Domain is the registrable domain (e.g. "example.com").
	Domain string

	// Subdomain is the label prefix before Domain, or "" for an apex
	// domain (e.g. "www" for "www.example.com").
	Subdomain string
}

// String returns the full domain name.
func (n Name) String() string {
	if n.Subdomain == "" {
		return n.Domain
	}
	return n.Subdomain + "." + n.Domain
}

// PlatformManaged reports whether the name lives under the reserved
// platform suffix.
func (n Name) PlatformManaged() bool {
	s := n.String()
	return s == ReservedSuffix || strings.HasSuffix(s, "."+ReservedSuffix)
}

// Parse validates a raw domain argument and decomposes it into the
// registrable domain and subdomain. It fails with ErrInvalidDomain when
// the string cannot be parsed as a domain name, or when it parses but
// contains no registrable domain (e.g. a bare public suffix like "co.uk").
func Parse(raw string) (Name, error) {
	host := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(raw), "."))
	if host == "" || !strings.Contains(host, ".") {
		return Name{}, fmt.Errorf("%w: unable to parse %q", ErrInvalidDomain, raw)
	}
	for _, label := range strings.Split(host, ".") {
		if !validLabel(label) {
			return Name{}, fmt.Errorf("%w: unable to parse %q", ErrInvalidDomain, raw)
		}
	}

	if suffix, _ := publicsuffix.PublicSuffix(host); suffix == host {
		return Name{}, fmt.Errorf("%w: %q contains no registrable domain", ErrInvalidDomain, raw)
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return Name{}, fmt.Errorf("%w: unable to parse %q", ErrInvalidDomain, raw)
	}

	sub := strings.TrimSuffix(strings.TrimSuffix(host, registrable), ".")
	return Name{Domain: registrable, Subdomain: sub}, nil
}

// validLabel checks a single DNS label: 1-63 characters from [a-z0-9-],
// not starting or ending with a hyphen.
func validLabel(label string) bool {
	if len(label) == 0 || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' {
			continue
		}
		return false
	}
	return true
}
