package emailverifier

import (
	"context"
	"net"
	"os"
	"time"
)

// Options configures a Verifier. Zero-valued fields keep their defaults,
// so callers only set what they care about.
type Options struct {
	// Timeout bounds each probe end to end, connection establishment
	// included. Default: 10s
	Timeout time.Duration
	// SenderIdentity is the placeholder address sent in MAIL FROM.
	// No mail is ever sent to or from it. Default: "test@example.com"
	SenderIdentity string
	// HeloDomain is the identity sent in the EHLO command.
	// Default: the local hostname.
	HeloDomain string
	// Port is the SMTP port. Default: "25"
	Port string
	// MaxMXHosts is how many MX hosts to try sequentially when a probe
	// fails at the transport level. A definitive RCPT reply from any host
	// ends the attempt. Default: 2
	MaxMXHosts int
	// DNSTimeout bounds each MX or address lookup. Default: 5s
	DNSTimeout time.Duration
	// InterAttemptDelay is the pause between addresses in a batch, a
	// deliberate rate limit against abuse defenses on receiving servers.
	// Expected range 500ms-5s. Default: 1s. To disable pacing, pass a
	// negative BatchOptions.InterAttemptDelay to VerifyBatch.
	InterAttemptDelay time.Duration

	// Dial is injectable for testing. Defaults to net.DialTimeout.
	Dial func(network, address string, timeout time.Duration) (net.Conn, error)
	// LookupMX is injectable for testing. Defaults to the shared
	// caching resolver.
	LookupMX func(domain string) ([]*net.MX, error)
	// Resolver backs the caching DNS layer used for resolution and
	// diagnostics. Injectable for testing; defaults to net.Resolver.
	Resolver interface {
		LookupMX(ctx context.Context, name string) ([]*net.MX, error)
		LookupHost(ctx context.Context, name string) ([]string, error)
	}
}

func defaultOptions() Options {
	helo, err := os.Hostname()
	if err != nil || helo == "" {
		helo = "localhost"
	}
	return Options{
		Timeout:           10 * time.Second,
		SenderIdentity:    "test@example.com",
		HeloDomain:        helo,
		Port:              "25",
		MaxMXHosts:        2,
		DNSTimeout:        5 * time.Second,
		InterAttemptDelay: time.Second,
	}
}

// withDefaults fills zero-valued fields from defaultOptions.
func (o Options) withDefaults() Options {
	def := defaultOptions()
	if o.Timeout == 0 {
		o.Timeout = def.Timeout
	}
	if o.SenderIdentity == "" {
		o.SenderIdentity = def.SenderIdentity
	}
	if o.HeloDomain == "" {
		o.HeloDomain = def.HeloDomain
	}
	if o.Port == "" {
		o.Port = def.Port
	}
	if o.MaxMXHosts == 0 {
		o.MaxMXHosts = def.MaxMXHosts
	}
	if o.DNSTimeout == 0 {
		o.DNSTimeout = def.DNSTimeout
	}
	if o.InterAttemptDelay == 0 {
		o.InterAttemptDelay = def.InterAttemptDelay
	}
	return o
}
