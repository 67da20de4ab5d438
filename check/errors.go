package check

import "fmt"

// The probe's failure modes are distinct types rather than one opaque
// error so callers can match them exhaustively with errors.As and map
// each to its own operator-facing message.

// ResolutionError reports a domain with no usable mail exchanger.
// It covers nonexistent domains, domains without MX records and DNS
// transport failures alike; Reason keeps the underlying cause.
type ResolutionError struct {
	Domain string
	Reason error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.Domain, e.Reason)
}

func (e *ResolutionError) Unwrap() error { return e.Reason }

// ConnectError means the TCP connection to the mail server could not be
// established.
type ConnectError struct {
	Addr string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect to %s: %v", e.Addr, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// DisconnectError means the server dropped the connection mid-session.
type DisconnectError struct {
	Op  string // the handshake step that was in progress
	Err error
}

func (e *DisconnectError) Error() string {
	return fmt.Sprintf("%s: server disconnected: %v", e.Op, e.Err)
}

func (e *DisconnectError) Unwrap() error { return e.Err }

// TimeoutError means the probe's overall deadline elapsed.
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timed out: %v", e.Op, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// ProtocolError means the server answered, but with an unexpected status
// code or a reply the session could not parse.
type ProtocolError struct {
	Op   string
	Code int
	Msg  string
}

func (e *ProtocolError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: unexpected reply %d %s", e.Op, e.Code, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// TransportError is the catch-all for transport failures that fit none of
// the kinds above.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
