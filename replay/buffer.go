package replay

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

type step struct {
	s    []float64
	a    int
	logp float64
	r    float64
}

// Buffer combines a short-term n-step tracer with a capacity-bounded
// replay store. Added steps mature into Transitions once n further steps
// (or the episode end) have been observed; matured transitions evict the
// oldest when the store is full.
type Buffer struct {
	n        int
	gamma    float64
	capacity int

	pending []step
	storage []Transition
	next    int
}

func New(n int, gamma float64, capacity int) *Buffer {
	if n <= 0 {
		panic("n-step buffer needs n >= 1")
	}
	if gamma < 0 || gamma > 1 {
		panic(fmt.Sprintf("gamma must be in [0, 1], got %v", gamma))
	}
	if capacity <= 0 {
		panic("buffer needs a positive capacity")
	}
	return &Buffer{n: n, gamma: gamma, capacity: capacity}
}

// Add records one step of experience: the observed state, the action taken
// with its log-propensity, the received reward, and whether the episode
// ended. A done step flushes every pending step with In = 0.
func (b *Buffer) Add(s []float64, a int, r float64, done bool, logp float64) {
	b.pending = append(b.pending, step{s: s, a: a, logp: logp, r: r})

	if done {
		for i := range b.pending {
			b.store(b.mature(i, len(b.pending)-i, nil))
		}
		b.pending = b.pending[:0]
		return
	}

	if len(b.pending) == b.n+1 {
		bootstrap := b.pending[b.n].s
		b.store(b.mature(0, b.n, bootstrap))
		b.pending = b.pending[1:]
	}
}

// mature builds the transition for pending index i from the following
// steps rewards. A nil bootstrap state marks an episode end (In = 0).
func (b *Buffer) mature(i, steps int, bootstrap []float64) Transition {
	rn := 0.0
	for j := steps - 1; j >= 0; j-- {
		rn = b.pending[i+j].r + b.gamma*rn
	}

	in := 0.0
	sn := b.pending[i].s
	if bootstrap != nil {
		in = math.Pow(b.gamma, float64(steps))
		sn = bootstrap
	}

	return Transition{
		S:    b.pending[i].s,
		A:    b.pending[i].a,
		LogP: b.pending[i].logp,
		Rn:   rn,
		In:   in,
		Sn:   sn,
	}
}

func (b *Buffer) store(t Transition) {
	if len(b.storage) < b.capacity {
		b.storage = append(b.storage, t)
		return
	}
	b.storage[b.next] = t
	b.next = (b.next + 1) % b.capacity
}

// Sample draws a batch uniformly with replacement.
func (b *Buffer) Sample(rng *rand.Rand, batchSize int) Batch {
	if len(b.storage) == 0 {
		panic("cannot sample from an empty buffer")
	}
	if batchSize <= 0 {
		panic("batch size must be positive")
	}
	transitions := make([]Transition, batchSize)
	for i := range transitions {
		transitions[i] = b.storage[rng.Intn(len(b.storage))]
	}
	return Batch{Transitions: transitions}
}

// Len returns the number of matured transitions in the store.
func (b *Buffer) Len() int {
	return len(b.storage)
}

// Capacity returns the maximum number of stored transitions.
func (b *Buffer) Capacity() int {
	return b.capacity
}

// Clear drops stored transitions and any pending steps.
func (b *Buffer) Clear() {
	b.storage = b.storage[:0]
	b.pending = b.pending[:0]
	b.next = 0
}
