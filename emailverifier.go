// Package emailverifier verifies whether an email address is deliverable
// without sending a message. It resolves the domain's mail exchangers and
// performs a partial SMTP handshake (EHLO, MAIL FROM, RCPT TO) to observe
// whether the receiving server accepts or rejects the recipient, then maps
// the outcome to a verdict with a human-readable reason.
//
// Basic usage:
//
//	v := emailverifier.New()
//	result, err := v.Verify(ctx, "user@example.com")
//
// Batch verification with pacing and progress:
//
//	batch, err := v.VerifyBatch(ctx, addresses, emailverifier.BatchOptions{
//	    OnProgress: func(p emailverifier.Progress) {
//	        fmt.Printf("%d/%d\n", p.Attempted, p.Total)
//	    },
//	})
//
// The verifier reports what the server said, not ground truth: greylisting
// and catch-all servers can still answer ambiguously.
package emailverifier

import "github.com/devsahil2063/Email-Verifier/types"

// VerificationResult is a re-export from the types package so that
// consumers don't need to import the types package directly.
type VerificationResult = types.VerificationResult

// Verdict is a re-export.
type Verdict = types.Verdict

// Progress is a re-export.
type Progress = types.Progress

// Verdict constants re-exported.
const (
	VerdictValid         = types.VerdictValid
	VerdictInvalid       = types.VerdictInvalid
	VerdictInvalidFormat = types.VerdictInvalidFormat
	VerdictError         = types.VerdictError
)
