package emailverifier

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/devsahil2063/Email-Verifier/types"
)

// BatchOptions configures a VerifyBatch run.
type BatchOptions struct {
	// InterAttemptDelay overrides the verifier's delay for this run.
	// Zero keeps the verifier's setting; a negative value disables
	// pacing entirely.
	InterAttemptDelay time.Duration
	// OnProgress, when set, is called after every address with the
	// running counters. The callback runs on the calling goroutine, so
	// it must not block if pacing matters.
	OnProgress func(types.Progress)
}

// BatchResult is the outcome of a batch run: one result per attempted
// address, in input order, plus the final counters. Partial marks a run
// stopped by cancellation before every address was attempted.
type BatchResult struct {
	Results  []types.VerificationResult
	Progress types.Progress
	Partial  bool
}

// VerifyBatch verifies the addresses strictly sequentially, pausing
// between attempts to avoid tripping abuse defenses on the receiving
// servers. Per-address failures never abort the run; cancellation via ctx
// stops it between addresses and returns what was collected so far with
// Partial set. No in-flight probe is force-killed - it finishes or times
// out naturally.
func (v *Verifier) VerifyBatch(ctx context.Context, addresses []string, opts ...BatchOptions) (BatchResult, error) {
	if v.err != nil {
		return BatchResult{}, v.err
	}

	var o BatchOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	delay := v.opts.InterAttemptDelay
	if o.InterAttemptDelay != 0 {
		delay = o.InterAttemptDelay
	}

	// A limiter rather than a bare sleep keeps the suspension point
	// cancellable through ctx. Burst 1 with the full bucket makes the
	// first Wait immediate and every later one spaced by the delay.
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	limiter := rate.NewLimiter(limit, 1)

	out := BatchResult{
		Results:  make([]types.VerificationResult, 0, len(addresses)),
		Progress: types.Progress{Total: len(addresses)},
	}

	for _, addr := range addresses {
		if err := limiter.Wait(ctx); err != nil {
			out.Partial = true
			return out, nil
		}

		res, err := v.Verify(ctx, addr)
		if err != nil {
			return out, err
		}
		out.Results = append(out.Results, res)

		out.Progress.Attempted++
		switch res.Verdict {
		case types.VerdictValid:
			out.Progress.Valid++
		case types.VerdictInvalid:
			out.Progress.Invalid++
		case types.VerdictInvalidFormat:
			out.Progress.InvalidFormat++
		default:
			out.Progress.Errors++
		}

		if o.OnProgress != nil {
			o.OnProgress(out.Progress)
		}
	}

	return out, nil
}
