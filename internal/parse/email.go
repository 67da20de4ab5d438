package parse

import (
	"strings"

	"golang.org/x/net/idna"
)

// Email is the split form of a candidate address. Raw keeps the trimmed
// original for reporting; Domain is the lowercased ASCII form used for
// resolution and the SMTP dialogue.
type Email struct {
	Raw    string
	Local  string
	Domain string
	Valid  bool // false if Raw has no usable local@domain shape
}

// Split breaks a candidate address at its last "@".
// If the split fails, Valid is false but Raw is always populated,
// so the original string stays available for reporting.
func Split(raw string) Email {
	raw = strings.TrimSpace(raw)

	at := strings.LastIndex(raw, "@")
	if at < 1 || at == len(raw)-1 {
		return Email{Raw: raw}
	}

	local := raw[:at]
	domain := normalizeDomain(raw[at+1:])
	if domain == "" {
		return Email{Raw: raw}
	}

	return Email{
		Raw:    raw,
		Local:  local,
		Domain: domain,
		Valid:  true,
	}
}

// normalizeDomain lowercases the domain and converts internationalized
// domains to their ASCII/Punycode form so DNS and SMTP see a resolvable
// name. The lowercasing affects resolution only; the caller keeps the
// original address for reporting.
func normalizeDomain(domain string) string {
	domain = strings.ToLower(domain)

	ascii, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		// Not IDNA2008-clean. DNS will reject it if it is truly bogus,
		// and the verdict on the resolution step reports that.
		return domain
	}
	return ascii
}
