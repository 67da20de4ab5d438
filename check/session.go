package check

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"syscall"
	"time"
)

// SessionConfig configures the SMTP probe session.
type SessionConfig struct {
	HeloDomain string        // identity sent in the EHLO command
	MailFrom   string        // placeholder sender address; no mail is ever sent
	Port       string        // default "25"
	Timeout    time.Duration // single budget covering connect and all commands
	// Dial is injectable for testing. Defaults to net.DialTimeout.
	Dial func(network, address string, timeout time.Duration) (net.Conn, error)
}

// Prober opens one connection per probe, walks the greeting/sender/
// recipient handshake and tears the session down again. Connections are
// never reused: batch probing is strictly sequential and paced, so a held
// socket would only linger against servers that treat that as abuse.
type Prober struct {
	cfg SessionConfig
}

// NewProber creates a Prober. Zero config fields get defaults.
func NewProber(cfg SessionConfig) *Prober {
	if cfg.Dial == nil {
		cfg.Dial = net.DialTimeout
	}
	if cfg.Port == "" {
		cfg.Port = "25"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Prober{cfg: cfg}
}

// Probe performs the partial handshake against one mail exchanger:
// banner, EHLO, MAIL FROM, then RCPT TO for the candidate recipient.
// The RCPT reply is the verdict-bearing response and is returned as-is,
// whatever its code; every transport failure comes back as one of the
// typed errors in this package. QUIT is sent best-effort on every path.
func (p *Prober) Probe(mxHost, recipient string) (code int, msg string, err error) {
	deadline := time.Now().Add(p.cfg.Timeout)
	addr := net.JoinHostPort(mxHost, p.cfg.Port)

	netConn, err := p.cfg.Dial("tcp", addr, p.cfg.Timeout)
	if err != nil {
		if isTimeout(err) {
			return 0, "", &TimeoutError{Op: "connect", Err: err}
		}
		return 0, "", &ConnectError{Addr: addr, Err: err}
	}
	defer func() { _ = netConn.Close() }()

	if err := netConn.SetDeadline(deadline); err != nil {
		return 0, "", &TransportError{Op: "set deadline", Err: err}
	}

	s := &session{
		conn:   netConn,
		reader: bufio.NewReader(netConn),
		writer: bufio.NewWriter(netConn),
	}
	defer s.quit()

	code, msg, err = s.read("banner")
	if err != nil {
		return 0, "", err
	}
	if code >= 400 {
		return 0, "", &ProtocolError{Op: "banner", Code: code, Msg: msg}
	}

	code, msg, err = s.cmd("greeting", "EHLO "+p.cfg.HeloDomain)
	if err != nil {
		return 0, "", err
	}
	if code >= 400 {
		return 0, "", &ProtocolError{Op: "greeting", Code: code, Msg: msg}
	}

	code, msg, err = s.cmd("sender", fmt.Sprintf("MAIL FROM:<%s>", p.cfg.MailFrom))
	if err != nil {
		return 0, "", err
	}
	if code >= 400 {
		return 0, "", &ProtocolError{Op: "sender", Code: code, Msg: msg}
	}

	return s.cmd("recipient", fmt.Sprintf("RCPT TO:<%s>", recipient))
}

type session struct {
	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer
}

// cmd sends one command line and reads the reply.
func (s *session) cmd(op, line string) (int, string, error) {
	if _, err := s.writer.WriteString(line + "\r\n"); err != nil {
		return 0, "", transportErr(op, err)
	}
	if err := s.writer.Flush(); err != nil {
		return 0, "", transportErr(op, err)
	}
	return s.read(op)
}

// read consumes one (possibly multi-line) SMTP reply.
func (s *session) read(op string) (int, string, error) {
	var lines []string
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return 0, "", transportErr(op, err)
		}
		line = strings.TrimRight(line, "\r\n")
		if len(line) < 3 {
			return 0, "", &ProtocolError{Op: op, Msg: fmt.Sprintf("reply line too short: %q", line)}
		}
		lines = append(lines, line)
		// a '-' after the code marks a continuation line
		if len(line) < 4 || line[3] != '-' {
			break
		}
	}

	last := lines[len(lines)-1]
	var code int
	if _, err := fmt.Sscanf(last[:3], "%d", &code); err != nil {
		return 0, "", &ProtocolError{Op: op, Msg: fmt.Sprintf("malformed status code %q", last[:3])}
	}
	return code, strings.Join(lines, " | "), nil
}

// quit ends the session cleanly, ignoring errors: the verdict is already
// decided by the time this runs.
func (s *session) quit() {
	_ = s.conn.SetDeadline(time.Now().Add(2 * time.Second))
	_, _ = s.writer.WriteString("QUIT\r\n")
	_ = s.writer.Flush()
}

// transportErr sorts a raw read/write failure into its reported kind.
func transportErr(op string, err error) error {
	switch {
	case isTimeout(err):
		return &TimeoutError{Op: op, Err: err}
	case errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.ErrClosedPipe),
		errors.Is(err, net.ErrClosed),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.EPIPE):
		return &DisconnectError{Op: op, Err: err}
	default:
		return &TransportError{Op: op, Err: err}
	}
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
