package emailverifier

import "errors"

var (
	// ErrInvalidSender is returned when Options.SenderIdentity is not a
	// structurally valid address. Configuration misuse is the one failure
	// that is fatal to a call; everything that happens per-address is
	// recovered into its VerificationResult.
	ErrInvalidSender = errors.New("emailverifier: SenderIdentity must be a valid email address")

	// ErrInvalidTimeout is returned when Options.Timeout is negative.
	ErrInvalidTimeout = errors.New("emailverifier: Timeout must not be negative")
)
