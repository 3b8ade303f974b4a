package telegraph

import (
	"math/rand"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHeaderGeneratorValidation(t *testing.T) {
	_, err := NewHeaderGenerator(rand.NewSource(1), nil, DefaultReferer)
	assert.Error(t, err)

	_, err = NewHeaderGenerator(rand.NewSource(1), []string{"ua"}, "")
	assert.Error(t, err)
}

func TestHeadersDeterministicWithSeededSource(t *testing.T) {
	pool := []string{"ua-0", "ua-1", "ua-2", "ua-3"}
	g, err := NewHeaderGenerator(rand.NewSource(42), pool, DefaultReferer)
	require.NoError(t, err)

	expected := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		h := g.Headers()
		assert.Equal(t, pool[expected.Intn(len(pool))], h.UserAgent)
		assert.Equal(t, "https://telegra.ph/", h.Referer)
	}
}

func TestHeadersCoverPool(t *testing.T) {
	pool := []string{"a", "b", "c"}
	g, err := NewHeaderGenerator(rand.NewSource(7), pool, DefaultReferer)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[g.Headers().UserAgent] = true
	}
	assert.Len(t, seen, 3)
}

func TestPoolIsCopied(t *testing.T) {
	pool := []string{"first-agent"}
	g, err := NewHeaderGenerator(rand.NewSource(1), pool, DefaultReferer)
	require.NoError(t, err)

	pool[0] = "mutated"
	assert.Equal(t, "first-agent", g.Headers().UserAgent)

	got := g.UserAgents()
	got[0] = "mutated again"
	assert.Equal(t, []string{"first-agent"}, g.UserAgents())
}

func TestApply(t *testing.T) {
	g, err := NewHeaderGenerator(rand.NewSource(1), []string{"only-agent"}, DefaultReferer)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, "https://telegra.ph/x", nil)
	require.NoError(t, err)

	h := g.Apply(req)
	assert.Equal(t, "only-agent", req.Header.Get("User-Agent"))
	assert.Equal(t, DefaultReferer, req.Header.Get("Referer"))
	assert.Equal(t, HeaderSet{UserAgent: "only-agent", Referer: DefaultReferer}, h)
}
