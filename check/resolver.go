package check

import (
	"errors"
	"net"
	"sort"
	"strings"

	"github.com/devsahil2063/Email-Verifier/internal/dnscache"
	"github.com/devsahil2063/Email-Verifier/types"
)

// errNoRecords marks a lookup that succeeded but returned nothing.
var errNoRecords = errors.New("no MX records")

// Resolver answers the hard gate "can this domain receive mail at all"
// via MX lookup. It never falls back to address records: that lookup
// belongs to the diagnostics path, where it cannot change a verdict.
type Resolver struct {
	lookup func(domain string) ([]*net.MX, error) // injectable for testability
}

// NewResolver creates a Resolver backed by the shared DNS cache.
func NewResolver(cache *dnscache.Cache) *Resolver {
	return &Resolver{lookup: cache.LookupMX}
}

// NewResolverWithLookup is a test-oriented constructor that overrides the
// MX lookup function.
func NewResolverWithLookup(fn func(string) ([]*net.MX, error)) *Resolver {
	return &Resolver{lookup: fn}
}

// MailTargets resolves the domain's mail exchangers, ordered by ascending
// preference with trailing root dots trimmed. A failed lookup and an empty
// record set both yield a *ResolutionError; the caller decides what that
// means for the verdict.
func (r *Resolver) MailTargets(domain string) ([]types.MailTarget, error) {
	records, err := r.lookup(domain)
	if err != nil {
		return nil, &ResolutionError{Domain: domain, Reason: err}
	}
	if len(records) == 0 {
		return nil, &ResolutionError{Domain: domain, Reason: errNoRecords}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Pref < records[j].Pref
	})

	targets := make([]types.MailTarget, len(records))
	for i, rec := range records {
		targets[i] = types.MailTarget{
			Host: strings.TrimSuffix(rec.Host, "."),
			Pref: rec.Pref,
		}
	}
	return targets, nil
}
