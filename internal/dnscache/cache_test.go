package dnscache_test

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/devsahil2063/Email-Verifier/internal/dnscache"
)

// mockResolver tracks how many lookups of each kind were performed.
type mockResolver struct {
	records   []*net.MX
	addrs     []string
	err       error
	mxCalls   atomic.Int64
	hostCalls atomic.Int64
}

func (m *mockResolver) LookupMX(_ context.Context, _ string) ([]*net.MX, error) {
	m.mxCalls.Add(1)
	return m.records, m.err
}

func (m *mockResolver) LookupHost(_ context.Context, _ string) ([]string, error) {
	m.hostCalls.Add(1)
	return m.addrs, m.err
}

func TestCache_BasicCaching(t *testing.T) {
	r := &mockResolver{
		records: []*net.MX{{Host: "mx.example.com.", Pref: 10}},
	}
	c := dnscache.NewWithResolver(2*time.Second, 1*time.Minute, r)

	recs, err := c.LookupMX("example.com")
	assert.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Equal(t, int64(1), r.mxCalls.Load())

	recs, err = c.LookupMX("example.com")
	assert.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Equal(t, int64(1), r.mxCalls.Load()) // still 1, served from cache
}

func TestCache_HostLookupsCachedSeparately(t *testing.T) {
	r := &mockResolver{
		records: []*net.MX{{Host: "mx.example.com.", Pref: 10}},
		addrs:   []string{"192.0.2.1"},
	}
	c := dnscache.NewWithResolver(2*time.Second, 1*time.Minute, r)

	_, _ = c.LookupMX("example.com")
	addrs, err := c.LookupHost("example.com")
	assert.NoError(t, err)
	assert.Equal(t, []string{"192.0.2.1"}, addrs)

	_, _ = c.LookupHost("example.com")
	assert.Equal(t, int64(1), r.mxCalls.Load())
	assert.Equal(t, int64(1), r.hostCalls.Load())
}

func TestCache_TTLExpiry(t *testing.T) {
	r := &mockResolver{
		records: []*net.MX{{Host: "mx.test.", Pref: 10}},
	}
	c := dnscache.NewWithResolver(2*time.Second, 50*time.Millisecond, r)

	_, _ = c.LookupMX("example.com")
	assert.Equal(t, int64(1), r.mxCalls.Load())

	time.Sleep(100 * time.Millisecond)

	_, _ = c.LookupMX("example.com")
	assert.Equal(t, int64(2), r.mxCalls.Load()) // refreshed after expiry
}

func TestCache_Singleflight(t *testing.T) {
	r := &mockResolver{
		records: []*net.MX{{Host: "mx.test.", Pref: 10}},
	}
	c := dnscache.NewWithResolver(2*time.Second, 1*time.Minute, r)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recs, err := c.LookupMX("example.com")
			assert.NoError(t, err)
			assert.Len(t, recs, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), r.mxCalls.Load())
}

func TestCache_CachesErrors(t *testing.T) {
	// A dead domain must not be re-queried for every address at it.
	r := &mockResolver{err: &net.DNSError{Err: "no such host"}}
	c := dnscache.NewWithResolver(2*time.Second, 1*time.Minute, r)

	_, err := c.LookupMX("bad.com")
	assert.Error(t, err)
	_, err = c.LookupMX("bad.com")
	assert.Error(t, err)
	assert.Equal(t, int64(1), r.mxCalls.Load())
}

func TestCache_ReturnsCopy(t *testing.T) {
	r := &mockResolver{
		records: []*net.MX{
			{Host: "mx2.", Pref: 20},
			{Host: "mx1.", Pref: 10},
		},
	}
	c := dnscache.NewWithResolver(2*time.Second, 1*time.Minute, r)

	recs1, _ := c.LookupMX("example.com")
	recs2, _ := c.LookupMX("example.com")

	recs1[0].Host = "modified."
	assert.NotEqual(t, recs1[0].Host, recs2[0].Host)
}
