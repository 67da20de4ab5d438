package check_test

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/devsahil2063/Email-Verifier/check"
)

// fakeServer simulates a mail server on one end of a net.Pipe.
// responses maps command prefixes to reply lines.
func fakeServer(server net.Conn, banner string, responses map[string]string) {
	defer func() { _ = server.Close() }()

	_, _ = fmt.Fprintf(server, "%s\r\n", banner)

	buf := make([]byte, 4096)
	for {
		n, err := server.Read(buf)
		if err != nil {
			return
		}
		cmd := string(buf[:n])

		if strings.HasPrefix(cmd, "QUIT") {
			_, _ = fmt.Fprintf(server, "221 Bye\r\n")
			return
		}

		for prefix, resp := range responses {
			if strings.HasPrefix(cmd, prefix) {
				_, _ = fmt.Fprintf(server, "%s\r\n", resp)
				break
			}
		}
	}
}

func newTestProber(t *testing.T, timeout time.Duration, dial func(string, string, time.Duration) (net.Conn, error)) *check.Prober {
	t.Helper()
	return check.NewProber(check.SessionConfig{
		HeloDomain: "probe.test",
		MailFrom:   "verify@probe.test",
		Timeout:    timeout,
		Dial:       dial,
	})
}

func pipeDialer(banner string, responses map[string]string) func(string, string, time.Duration) (net.Conn, error) {
	return func(network, address string, timeout time.Duration) (net.Conn, error) {
		client, server := net.Pipe()
		go fakeServer(server, banner, responses)
		return client, nil
	}
}

func TestProbe_RecipientAccepted(t *testing.T) {
	p := newTestProber(t, 5*time.Second, pipeDialer("220 mx.example.com ESMTP", map[string]string{
		"EHLO":      "250 OK",
		"MAIL FROM": "250 OK",
		"RCPT TO":   "250 Recipient OK",
	}))

	code, msg, err := p.Probe("mx.example.com", "user@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 250, code)
	assert.Contains(t, msg, "Recipient OK")
}

func TestProbe_RecipientRejected(t *testing.T) {
	// A definitive RCPT rejection is a reply, not a transport error.
	p := newTestProber(t, 5*time.Second, pipeDialer("220 mx.example.com ESMTP", map[string]string{
		"EHLO":      "250 OK",
		"MAIL FROM": "250 OK",
		"RCPT TO":   "550 No such user",
	}))

	code, msg, err := p.Probe("mx.example.com", "ghost@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 550, code)
	assert.Contains(t, msg, "No such user")
}

func TestProbe_MultilineReply(t *testing.T) {
	dial := func(network, address string, timeout time.Duration) (net.Conn, error) {
		client, server := net.Pipe()
		go func() {
			defer func() { _ = server.Close() }()
			_, _ = fmt.Fprintf(server, "220 mx.example.com ESMTP\r\n")
			buf := make([]byte, 4096)
			for {
				n, err := server.Read(buf)
				if err != nil {
					return
				}
				cmd := string(buf[:n])
				switch {
				case strings.HasPrefix(cmd, "EHLO"):
					_, _ = fmt.Fprintf(server, "250-mx.example.com\r\n250-SIZE 35882577\r\n250 OK\r\n")
				case strings.HasPrefix(cmd, "MAIL FROM"):
					_, _ = fmt.Fprintf(server, "250 OK\r\n")
				case strings.HasPrefix(cmd, "RCPT TO"):
					_, _ = fmt.Fprintf(server, "250 OK\r\n")
				case strings.HasPrefix(cmd, "QUIT"):
					_, _ = fmt.Fprintf(server, "221 Bye\r\n")
					return
				}
			}
		}()
		return client, nil
	}

	p := newTestProber(t, 5*time.Second, dial)
	code, _, err := p.Probe("mx.example.com", "user@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 250, code)
}

func TestProbe_ConnectionRefused(t *testing.T) {
	p := newTestProber(t, 5*time.Second, func(network, address string, timeout time.Duration) (net.Conn, error) {
		return nil, errors.New("connection refused")
	})

	_, _, err := p.Probe("mx.example.com", "user@example.com")

	var connErr *check.ConnectError
	assert.True(t, errors.As(err, &connErr))
	assert.Contains(t, connErr.Addr, "mx.example.com")
}

// timeoutErr satisfies net.Error with Timeout() == true.
type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestProbe_ConnectTimeout(t *testing.T) {
	p := newTestProber(t, 5*time.Second, func(network, address string, timeout time.Duration) (net.Conn, error) {
		return nil, timeoutErr{}
	})

	_, _, err := p.Probe("mx.example.com", "user@example.com")

	var toErr *check.TimeoutError
	assert.True(t, errors.As(err, &toErr))
}

func TestProbe_SessionTimeout(t *testing.T) {
	// Banner arrives, then the server goes silent; the overall deadline
	// must cut the read.
	dial := func(network, address string, timeout time.Duration) (net.Conn, error) {
		client, server := net.Pipe()
		go func() {
			_, _ = fmt.Fprintf(server, "220 mx.example.com ESMTP\r\n")
			// swallow input, never answer
			buf := make([]byte, 4096)
			for {
				if _, err := server.Read(buf); err != nil {
					return
				}
			}
		}()
		return client, nil
	}

	p := newTestProber(t, 100*time.Millisecond, dial)
	_, _, err := p.Probe("mx.example.com", "user@example.com")

	var toErr *check.TimeoutError
	assert.True(t, errors.As(err, &toErr), "got %v", err)
}

func TestProbe_ServerDisconnects(t *testing.T) {
	dial := func(network, address string, timeout time.Duration) (net.Conn, error) {
		client, server := net.Pipe()
		go func() {
			_, _ = fmt.Fprintf(server, "220 mx.example.com ESMTP\r\n")
			buf := make([]byte, 4096)
			_, _ = server.Read(buf) // consume EHLO, then drop the line
			_ = server.Close()
		}()
		return client, nil
	}

	p := newTestProber(t, 5*time.Second, dial)
	_, _, err := p.Probe("mx.example.com", "user@example.com")

	var discErr *check.DisconnectError
	assert.True(t, errors.As(err, &discErr), "got %v", err)
}

func TestProbe_BannerRejection(t *testing.T) {
	p := newTestProber(t, 5*time.Second, pipeDialer("554 Go away", nil))

	_, _, err := p.Probe("mx.example.com", "user@example.com")

	var protoErr *check.ProtocolError
	assert.True(t, errors.As(err, &protoErr))
	assert.Equal(t, 554, protoErr.Code)
}

func TestProbe_GreetingRejection(t *testing.T) {
	p := newTestProber(t, 5*time.Second, pipeDialer("220 mx.example.com ESMTP", map[string]string{
		"EHLO": "502 Command not implemented",
	}))

	_, _, err := p.Probe("mx.example.com", "user@example.com")

	var protoErr *check.ProtocolError
	assert.True(t, errors.As(err, &protoErr))
	assert.Equal(t, "greeting", protoErr.Op)
}

func TestProbe_MalformedReply(t *testing.T) {
	p := newTestProber(t, 5*time.Second, pipeDialer("garbled banner line", nil))

	_, _, err := p.Probe("mx.example.com", "user@example.com")

	var protoErr *check.ProtocolError
	assert.True(t, errors.As(err, &protoErr))
}
