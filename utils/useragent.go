package utils

import "math/rand"

const fallbackUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"

// UserAgentPool hands out a browser User-Agent chosen uniformly at random
// per request.
type UserAgentPool struct {
	agents []string
}

func NewUserAgentPool(agents []string) *UserAgentPool {
	pool := make([]string, 0, len(agents))
	for _, a := range agents {
		if a != "" {
			pool = append(pool, a)
		}
	}
	if len(pool) == 0 {
		pool = append(pool, fallbackUserAgent)
	}
	return &UserAgentPool{agents: pool}
}

// Pick returns a random agent from the pool.
func (p *UserAgentPool) Pick() string {
	return p.agents[rand.Intn(len(p.agents))]
}

// Size returns the number of agents in the pool.
func (p *UserAgentPool) Size() int {
	return len(p.agents)
}
