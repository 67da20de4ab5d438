package emailverifier

import (
	"errors"
	"fmt"

	"github.com/devsahil2063/Email-Verifier/check"
	"github.com/devsahil2063/Email-Verifier/types"
)

// Fixed detail strings for the non-code outcomes.
const (
	detailInvalidFormat = "Invalid email format"
	detailConnect       = "Cannot connect to SMTP server"
	detailDisconnect    = "SMTP server disconnected"
	detailTimeout       = "SMTP connection timeout"
)

// classifyCode maps the recipient-step status code to a verdict and its
// detail string. Pure: the same code always yields the same pair.
func classifyCode(code int) (types.Verdict, string) {
	switch code {
	case 250:
		return types.VerdictValid, "Email address exists"
	case 550:
		return types.VerdictInvalid, "Email address does not exist"
	case 552:
		return types.VerdictInvalid, "Mailbox full or quota exceeded"
	case 553:
		return types.VerdictInvalid, "Invalid email address"
	default:
		return types.VerdictInvalid, fmt.Sprintf("SMTP error code: %d", code)
	}
}

// classifyProbeErr maps a transport failure to its detail string. These
// all carry VerdictError: the probe failed, which says nothing definitive
// about the address itself.
func classifyProbeErr(err error) string {
	var (
		timeoutErr    *check.TimeoutError
		connectErr    *check.ConnectError
		disconnectErr *check.DisconnectError
	)
	switch {
	case errors.As(err, &timeoutErr):
		return detailTimeout
	case errors.As(err, &connectErr):
		return detailConnect
	case errors.As(err, &disconnectErr):
		return detailDisconnect
	default:
		// ProtocolError, TransportError and anything unforeseen
		return "SMTP error: " + err.Error()
	}
}
