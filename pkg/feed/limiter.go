package feed

import (
	"context"
	"net"
	"net/url"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
)

// domainLimiter bounds concurrent requests per registrable domain and spaces them by a minimal delay
type domainLimiter struct {
	concurrency int
	delay       time.Duration

	mu          sync.Mutex
	semaphores  map[string]chan struct{}
	lastRequest map[string]time.Time
}

func newDomainLimiter(concurrency int, delay time.Duration) *domainLimiter {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &domainLimiter{
		concurrency: concurrency,
		delay:       delay,
		semaphores:  make(map[string]chan struct{}),
		lastRequest: make(map[string]time.Time),
	}
}

// acquire takes a slot for the domain, waiting for a free slot and for the delay since the last request
func (dl *domainLimiter) acquire(ctx context.Context, domain string) error {
	dl.mu.Lock()
	sem, ok := dl.semaphores[domain]
	if !ok {
		sem = make(chan struct{}, dl.concurrency)
		dl.semaphores[domain] = sem
	}
	dl.mu.Unlock()

	select {
	case sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	if dl.delay <= 0 {
		return nil
	}

	dl.mu.Lock()
	lastReq := dl.lastRequest[domain]
	dl.mu.Unlock()
	if lastReq.IsZero() {
		return nil
	}
	if wait := dl.delay - time.Since(lastReq); wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			<-sem
			return ctx.Err()
		}
	}
	return nil
}

// release frees the slot and records the request time
func (dl *domainLimiter) release(domain string) {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	dl.lastRequest[domain] = time.Now()
	if sem, ok := dl.semaphores[domain]; ok {
		<-sem
	}
}

// limiterKey returns the registrable domain (eTLD+1) of the url, so a.example.com and b.example.com share a slot.
// IP hosts and hosts without a public suffix are used as is.
func limiterKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	host := u.Hostname()
	if net.ParseIP(host) != nil {
		return host
	}
	if domain, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return domain
	}
	return host
}
