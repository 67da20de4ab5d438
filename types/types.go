// Package types contains the shared types for the verifier.
// This package does not import anything from other packages of this
// module to avoid circular imports.
package types

// Verdict is the final classification of a verified address.
type Verdict string

const (
	// VerdictValid means the receiving server accepted the recipient.
	VerdictValid Verdict = "valid"
	// VerdictInvalid means the server (or DNS) rejected the address.
	VerdictInvalid Verdict = "invalid"
	// VerdictInvalidFormat means the address failed the structural check
	// and no network activity took place.
	VerdictInvalidFormat Verdict = "invalid-format"
	// VerdictError means the probe itself failed; the address was not
	// necessarily bad.
	VerdictError Verdict = "error"
)

// MailTarget is a resolved mail exchanger host. Targets are ordered by
// ascending Pref (lower = higher priority) and carry no trailing root dot.
type MailTarget struct {
	Host string `json:"host"`
	Pref uint16 `json:"pref"`
}

// VerificationResult is the outcome for a single address.
// Immutable once produced.
type VerificationResult struct {
	Address string  `json:"address"`
	Verdict Verdict `json:"verdict"`
	Details string  `json:"details"`
	Code    int     `json:"code,omitempty"`   // RCPT-step SMTP code, when one was received
	MXHost  string  `json:"mxHost,omitempty"` // host that produced the verdict
}

// Progress holds the running counters of a batch. Counters are
// monotonically non-decreasing within a run and always satisfy
// Valid+Invalid+Errors+InvalidFormat == Attempted.
type Progress struct {
	Attempted     int `json:"attempted"`
	Valid         int `json:"valid"`
	Invalid       int `json:"invalid"`
	Errors        int `json:"errors"`
	InvalidFormat int `json:"invalidFormat"`
	Total         int `json:"total"`
}

// DomainInfo is best-effort diagnostic data about an address's domain.
// It never gates verification: failed lookups yield empty lists and
// false flags, not errors.
type DomainInfo struct {
	Domain     string   `json:"domain"`
	MXHosts    []string `json:"mxHosts"`
	AddrHosts  []string `json:"addrHosts"`
	HasMX      bool     `json:"hasMX"`
	Resolvable bool     `json:"resolvable"`
	Disposable bool     `json:"disposable"`
	Suggestion string   `json:"suggestion,omitempty"` // likely intended provider domain, if any
}
