package telegraph

import (
	"errors"
	"math/rand"
	"net/http"
	"sync"
)

// HeaderSet is the pair of headers sent with every request
type HeaderSet struct {
	UserAgent string
	Referer   string
}

// HeaderGenerator produces a fresh HeaderSet per request, picking the
// User-Agent uniformly at random from a fixed pool.
type HeaderGenerator struct {
	userAgents []string
	referer    string

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewHeaderGenerator copies userAgents so later changes by the caller do not
// affect the pool.
func NewHeaderGenerator(src rand.Source, userAgents []string, referer string) (*HeaderGenerator, error) {
	if len(userAgents) == 0 {
		return nil, errors.New("user agent pool is empty")
	}
	if referer == "" {
		return nil, errors.New("referer is empty")
	}

	pool := make([]string, len(userAgents))
	copy(pool, userAgents)

	return &HeaderGenerator{
		userAgents: pool,
		referer:    referer,
		rnd:        rand.New(src),
	}, nil
}

// Headers returns a new HeaderSet
func (g *HeaderGenerator) Headers() HeaderSet {
	g.mu.Lock()
	i := g.rnd.Intn(len(g.userAgents))
	g.mu.Unlock()

	return HeaderSet{
		UserAgent: g.userAgents[i],
		Referer:   g.referer,
	}
}

// Apply sets a freshly generated HeaderSet on req
func (g *HeaderGenerator) Apply(req *http.Request) HeaderSet {
	h := g.Headers()
	req.Header.Set("User-Agent", h.UserAgent)
	req.Header.Set("Referer", h.Referer)
	return h
}

// UserAgents returns a copy of the pool
func (g *HeaderGenerator) UserAgents() []string {
	pool := make([]string, len(g.userAgents))
	copy(pool, g.userAgents)
	return pool
}
