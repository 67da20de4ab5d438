// Package dnscache provides a thread-safe, TTL-based cache for the DNS
// lookups the verifier performs (MX for the resolution gate, host addresses
// for diagnostics). Concurrent lookups for the same domain are deduplicated:
// only one query is in flight, and all waiters receive its result.
package dnscache

import (
	"context"
	"net"
	"sync"
	"time"
)

// Resolver is the subset of net.Resolver the cache needs.
// Injectable for testing.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, name string) ([]string, error)
}

// Cache caches MX and host lookups per domain.
// A batch run revisits the same domains repeatedly, so even a short TTL
// removes most duplicate queries.
type Cache struct {
	mu            sync.Mutex
	mx            map[string]*mxEntry
	hosts         map[string]*hostEntry
	cacheTTL      time.Duration
	lookupTimeout time.Duration
	resolver      Resolver
}

type mxEntry struct {
	records []*net.MX
	err     error
	expires time.Time
	done    chan struct{} // closed when the lookup completes
}

type hostEntry struct {
	addrs   []string
	err     error
	expires time.Time
	done    chan struct{}
}

// New creates a cache with the given per-lookup timeout and entry TTL.
func New(lookupTimeout, cacheTTL time.Duration) *Cache {
	return &Cache{
		mx:            make(map[string]*mxEntry),
		hosts:         make(map[string]*hostEntry),
		cacheTTL:      cacheTTL,
		lookupTimeout: lookupTimeout,
		resolver:      &net.Resolver{},
	}
}

// NewWithResolver creates a cache backed by a custom resolver (for testing).
func NewWithResolver(lookupTimeout, cacheTTL time.Duration, r Resolver) *Cache {
	c := New(lookupTimeout, cacheTTL)
	c.resolver = r
	return c
}

// LookupMX returns the MX record set for the domain, using the cache when
// possible. Lookup errors are cached too, so a dead domain does not get
// re-queried for every address at it.
func (c *Cache) LookupMX(domain string) ([]*net.MX, error) {
	c.mu.Lock()

	if e, ok := c.mx[domain]; ok {
		select {
		case <-e.done:
			if time.Now().Before(e.expires) {
				c.mu.Unlock()
				return copyMX(e.records), e.err
			}
			// expired, fall through to refresh
		default:
			// lookup in progress, wait for it
			c.mu.Unlock()
			<-e.done
			return copyMX(e.records), e.err
		}
	}

	e := &mxEntry{done: make(chan struct{})}
	c.mx[domain] = e
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.lookupTimeout)
	defer cancel()

	e.records, e.err = c.resolver.LookupMX(ctx, domain)
	e.expires = time.Now().Add(c.cacheTTL)
	close(e.done)

	return copyMX(e.records), e.err
}

// LookupHost returns the address records for the domain, using the cache
// when possible. Used by the diagnostics path only.
func (c *Cache) LookupHost(domain string) ([]string, error) {
	c.mu.Lock()

	if e, ok := c.hosts[domain]; ok {
		select {
		case <-e.done:
			if time.Now().Before(e.expires) {
				c.mu.Unlock()
				return append([]string(nil), e.addrs...), e.err
			}
		default:
			c.mu.Unlock()
			<-e.done
			return append([]string(nil), e.addrs...), e.err
		}
	}

	e := &hostEntry{done: make(chan struct{})}
	c.hosts[domain] = e
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.lookupTimeout)
	defer cancel()

	e.addrs, e.err = c.resolver.LookupHost(ctx, domain)
	e.expires = time.Now().Add(c.cacheTTL)
	close(e.done)

	return append([]string(nil), e.addrs...), e.err
}

// Len returns the number of cached MX entries (for diagnostics).
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.mx)
}

// copyMX returns a deep copy of MX records to prevent callers from
// mutating cached data (e.g., via sort.Slice).
func copyMX(records []*net.MX) []*net.MX {
	if records == nil {
		return nil
	}
	out := make([]*net.MX, len(records))
	for i, r := range records {
		cp := *r
		out[i] = &cp
	}
	return out
}
