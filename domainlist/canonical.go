package domainlist

import (
	"strings"

	"github.com/miekg/dns"
)

const minTLDLength = 2

// Canonicalize validates and normalizes a candidate domain. The result is
// lowercase, restricted to [a-z0-9.-], has at least two non-empty labels
// and a final label of two or more characters. Canonicalize is idempotent.
func Canonicalize(candidate string) (string, bool) {
	domain := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return -1
	}, candidate)

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return "", false
	}
	for _, label := range labels {
		if label == "" {
			return "", false
		}
	}
	if len(labels[len(labels)-1]) < minTLDLength {
		return "", false
	}

	// label and name length limits
	if _, ok := dns.IsDomainName(domain); !ok {
		return "", false
	}

	return domain, true
}
