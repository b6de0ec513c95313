package evol

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

const DEBUG = false

// pooledRand uses sync.Pool to give each goroutine its own *rand.Rand,
// eliminating mutex contention when eval functions fan work out to
// goroutines of their own.
type pooledRand struct {
	pool sync.Pool
}

func newPooledRand(seed int64) *pooledRand {
	var counter int64
	return &pooledRand{
		pool: sync.Pool{
			New: func() any {
				s := atomic.AddInt64(&counter, 1) - 1
				return rand.New(rand.NewSource(seed + s))
			},
		},
	}
}

func (pr *pooledRand) Intn(n int) int {
	r := pr.pool.Get().(*rand.Rand)
	v := r.Intn(n)
	pr.pool.Put(r)
	return v
}

func (pr *pooledRand) Float64() float64 {
	r := pr.pool.Get().(*rand.Rand)
	v := r.Float64()
	pr.pool.Put(r)
	return v
}

// rng is the package-level random source behind contest scheduling, luck
// survival and the stock parent pickers.
var rng *pooledRand = newPooledRand(time.Now().UnixNano())

// InitRNG seeds the package-level rng. If seed is 0, the current
// time is used (non-deterministic). A non-zero seed gives
// reproducible results.
func InitRNG(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng = newPooledRand(seed)
}
