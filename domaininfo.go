package emailverifier

import (
	"strings"

	"github.com/devsahil2063/Email-Verifier/internal/disposable"
	"github.com/devsahil2063/Email-Verifier/internal/levenshtein"
	"github.com/devsahil2063/Email-Verifier/internal/parse"
	"github.com/devsahil2063/Email-Verifier/types"
)

// knownProviders are major mail providers used for the typo suggestion.
var knownProviders = []string{
	"gmail.com", "googlemail.com",
	"yahoo.com", "yahoo.co.uk", "yahoo.fr", "yahoo.de",
	"outlook.com", "hotmail.com", "hotmail.co.uk", "live.com",
	"icloud.com", "me.com", "mac.com",
	"protonmail.com", "proton.me",
	"aol.com",
	"zoho.com",
	"yandex.com", "yandex.ru",
	"mail.com",
	"gmx.com", "gmx.net", "gmx.de",
	"fastmail.com",
	"rediffmail.com",
}

// typoThreshold is the maximum edit distance for a provider suggestion.
const typoThreshold = 2

// DomainInfo gathers best-effort diagnostics about the address's domain:
// mail exchangers, address records, whether the domain belongs to a known
// disposable provider, and a typo suggestion when the domain sits close
// to a major provider. Purely informational - nothing here gates a
// verification verdict, and any lookup failure yields empty lists and
// false flags rather than an error.
func (v *Verifier) DomainInfo(address string) types.DomainInfo {
	em := parse.Split(address)
	if em.Domain == "" {
		return types.DomainInfo{Domain: "unknown"}
	}

	info := types.DomainInfo{Domain: em.Domain}

	if records, err := v.cache.LookupMX(em.Domain); err == nil {
		for _, r := range records {
			info.MXHosts = append(info.MXHosts, strings.TrimSuffix(r.Host, "."))
		}
	}
	info.HasMX = len(info.MXHosts) > 0

	if addrs, err := v.cache.LookupHost(em.Domain); err == nil {
		info.AddrHosts = addrs
	}
	info.Resolvable = len(info.AddrHosts) > 0

	info.Disposable = disposable.IsDisposable(em.Domain)
	info.Suggestion = suggestProvider(em.Domain)
	return info
}

// suggestProvider returns the closest known provider within typoThreshold
// edits, or "" when the domain is an exact match or nothing is close.
func suggestProvider(domain string) string {
	best := typoThreshold + 1
	match := ""
	for _, provider := range knownProviders {
		if domain == provider {
			return ""
		}
		if d := levenshtein.Distance(domain, provider); d < best {
			best = d
			match = provider
		}
	}
	if best > typoThreshold {
		return ""
	}
	return match
}
