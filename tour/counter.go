package tour

import (
	"fmt"
	"sync/atomic"
)

var GlobalStats = &Stats{}

type Stats struct {
	Broadcast, Gathered atomic.Uint64
	Visited             atomic.Uint64
	CacheHits           atomic.Uint64
}

func (s *Stats) String() string {
	b := s.Broadcast.Load()
	g := s.Gathered.Load()
	v := s.Visited.Load()
	h := s.CacheHits.Load()
	return fmt.Sprintf("Broadcast: %d, Gathered: %d, Visited: %d, CacheHits: %d", b, g, v, h)
}
