package emailverifier

import (
	"context"
	"fmt"
	"time"

	"github.com/devsahil2063/Email-Verifier/check"
	"github.com/devsahil2063/Email-Verifier/internal/dnscache"
	"github.com/devsahil2063/Email-Verifier/internal/parse"
	"github.com/devsahil2063/Email-Verifier/types"
)

// Verifier runs the verification pipeline: format gate, MX resolution,
// SMTP recipient probe, verdict classification. It holds no global state
// and is safe to construct per use; all configuration comes in through
// Options.
type Verifier struct {
	opts     Options
	err      error // configuration error, returned on first use
	cache    *dnscache.Cache
	resolver *check.Resolver
	prober   *check.Prober
}

// New creates a Verifier. Omitted or zero-valued options get defaults.
// A configuration error is deferred to the first Verify/VerifyBatch call,
// so construction can stay chainable.
func New(opts ...Options) *Verifier {
	o := defaultOptions()
	if len(opts) > 0 {
		o = opts[0].withDefaults()
	}

	v := &Verifier{opts: o}
	switch {
	case !check.ValidFormat(o.SenderIdentity):
		v.err = ErrInvalidSender
	case o.Timeout < 0:
		v.err = ErrInvalidTimeout
	}

	if o.Resolver != nil {
		v.cache = dnscache.NewWithResolver(o.DNSTimeout, 5*time.Minute, o.Resolver)
	} else {
		v.cache = dnscache.New(o.DNSTimeout, 5*time.Minute)
	}
	if o.LookupMX != nil {
		v.resolver = check.NewResolverWithLookup(o.LookupMX)
	} else {
		v.resolver = check.NewResolver(v.cache)
	}
	v.prober = check.NewProber(check.SessionConfig{
		HeloDomain: o.HeloDomain,
		MailFrom:   o.SenderIdentity,
		Port:       o.Port,
		Timeout:    o.Timeout,
		Dial:       o.Dial,
	})
	return v
}

// Verify checks a single address and always produces exactly one verdict
// and one detail string for it. Every per-address failure mode - bad
// format, failed resolution, refused connection, timeout, mid-session
// disconnect - is recovered into the result; the returned error is
// non-nil only for configuration misuse.
func (v *Verifier) Verify(ctx context.Context, address string) (types.VerificationResult, error) {
	if v.err != nil {
		return types.VerificationResult{}, v.err
	}

	em := parse.Split(address)
	res := types.VerificationResult{Address: em.Raw}

	// Format gate: no network activity past this point for rejects.
	if !em.Valid || !check.ValidFormat(em.Raw) {
		res.Verdict = types.VerdictInvalidFormat
		res.Details = detailInvalidFormat
		return res, nil
	}

	// Hard gate: can the domain receive mail at all. Address-record
	// fallback is deliberately absent here; DomainInfo covers diagnostics.
	targets, err := v.resolver.MailTargets(em.Domain)
	if err != nil {
		res.Verdict = types.VerdictInvalid
		res.Details = fmt.Sprintf("No MX record found for domain: %s", em.Domain)
		return res, nil
	}

	maxHosts := v.opts.MaxMXHosts
	if maxHosts <= 0 || maxHosts > len(targets) {
		maxHosts = len(targets)
	}

	var probeErr error
	for i := 0; i < maxHosts; i++ {
		select {
		case <-ctx.Done():
			res.Verdict = types.VerdictError
			res.Details = "verification cancelled"
			return res, nil
		default:
		}

		code, _, err := v.prober.Probe(targets[i].Host, em.Raw)
		if err != nil {
			// Transport failure: the next MX host may still answer.
			probeErr = err
			continue
		}

		res.Verdict, res.Details = classifyCode(code)
		res.Code = code
		res.MXHost = targets[i].Host
		return res, nil
	}

	res.Verdict = types.VerdictError
	res.Details = classifyProbeErr(probeErr)
	return res, nil
}
