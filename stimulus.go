package main

import (
	"math/rand"

	"github.com/Readm/rv_cosim/core"
	"github.com/Readm/rv_cosim/dut"
)

// StimulusGenerator decides, cycle by cycle, what the producer offers and
// whether the consumer is ready. The held-offer rule is not its concern: the
// driver stops consulting NextOffer while a transaction is pending, so a
// generator is asked for each transaction exactly once.
type StimulusGenerator interface {
	// NextOffer returns the transaction to offer this cycle, if any.
	NextOffer(cycle int) (core.Transaction, bool)

	// NextReady returns the consumer-ready decision for this cycle. It is
	// consulted every cycle, pending offer or not.
	NextReady(cycle int) bool

	// Done reports that the generator has no further transactions. The
	// harness moves to the drain phase once Done and nothing is pending.
	Done() bool

	// Reset rewinds the generator to its initial state.
	Reset()
}

// DirectedGenerator replays a fixed vector list with the consumer always
// ready. It runs before randomized traffic to pin down boundary values.
type DirectedGenerator struct {
	vectors []core.Transaction
	pos     int
}

// NewDirectedGenerator wraps an explicit vector list.
func NewDirectedGenerator(vectors []core.Transaction) *DirectedGenerator {
	return &DirectedGenerator{vectors: vectors}
}

// BoundaryVectors is the directed smoke set for a binary DUT: zeros, ones,
// all-bits-set and the overflow-inducing combinations.
func BoundaryVectors(width int) []core.Transaction {
	mask := dut.WidthMask(width)
	return []core.Transaction{
		{A: 0, B: 0, Arity: 2},
		{A: 1, B: 0, Arity: 2},
		{A: 0, B: 1, Arity: 2},
		{A: 1, B: 1, Arity: 2},
		{A: mask, B: 1, Arity: 2},
		{A: mask, B: mask, Arity: 2},
	}
}

// UnaryBoundaryVectors is the smoke set for a unary DUT.
func UnaryBoundaryVectors(width int) []core.Transaction {
	mask := dut.WidthMask(width)
	return []core.Transaction{
		{A: 0, Arity: 1},
		{A: 1, Arity: 1},
		{A: mask, Arity: 1},
	}
}

func (g *DirectedGenerator) NextOffer(cycle int) (core.Transaction, bool) {
	if g.pos >= len(g.vectors) {
		return core.Transaction{}, false
	}
	tx := g.vectors[g.pos]
	g.pos++
	return tx, true
}

func (g *DirectedGenerator) NextReady(cycle int) bool { return true }

func (g *DirectedGenerator) Done() bool { return g.pos >= len(g.vectors) }

func (g *DirectedGenerator) Reset() { g.pos = 0 }

// RandomGenerator produces seeded pseudo-random traffic: each cycle it
// independently decides whether to offer a fresh transaction and whether the
// consumer is ready. Deterministic given its rand source.
type RandomGenerator struct {
	rng       *rand.Rand
	mask      core.Word
	arity     int
	offerRate float64
	readyRate float64
}

// NewRandomGenerator builds a generator from validated config values. The
// rand source must be seeded by the caller; the generator never touches the
// wall clock.
func NewRandomGenerator(rng *rand.Rand, width, arity int, offerRate, readyRate float64) *RandomGenerator {
	return &RandomGenerator{
		rng:       rng,
		mask:      dut.WidthMask(width),
		arity:     arity,
		offerRate: offerRate,
		readyRate: readyRate,
	}
}

func (g *RandomGenerator) NextOffer(cycle int) (core.Transaction, bool) {
	if g.rng.Float64() >= g.offerRate {
		return core.Transaction{}, false
	}
	tx := core.Transaction{
		A:     core.Word(g.rng.Uint64()) & g.mask,
		Arity: g.arity,
	}
	if g.arity == 2 {
		tx.B = core.Word(g.rng.Uint64()) & g.mask
	}
	return tx, true
}

func (g *RandomGenerator) NextReady(cycle int) bool {
	return g.rng.Float64() < g.readyRate
}

// Done always reports false: random traffic is bounded by the harness cycle
// budget, not by the generator.
func (g *RandomGenerator) Done() bool { return false }

func (g *RandomGenerator) Reset() {}

// ScheduleGenerator scripts exact per-cycle behavior; tests use it to force
// specific stall patterns.
type ScheduleGenerator struct {
	// Offers maps cycle -> transaction offered on that cycle.
	Offers map[int]core.Transaction
	// Ready maps cycle -> consumer readiness; missing cycles default to
	// DefaultReady.
	Ready        map[int]bool
	DefaultReady bool
	// LastCycle marks when the schedule is exhausted.
	LastCycle int

	issued map[int]bool
}

func (g *ScheduleGenerator) NextOffer(cycle int) (core.Transaction, bool) {
	tx, ok := g.Offers[cycle]
	if !ok {
		return core.Transaction{}, false
	}
	if g.issued == nil {
		g.issued = make(map[int]bool)
	}
	if g.issued[cycle] {
		return core.Transaction{}, false
	}
	g.issued[cycle] = true
	return tx, true
}

func (g *ScheduleGenerator) NextReady(cycle int) bool {
	if r, ok := g.Ready[cycle]; ok {
		return r
	}
	return g.DefaultReady
}

func (g *ScheduleGenerator) Done() bool {
	for cycle := range g.Offers {
		if g.issued == nil || !g.issued[cycle] {
			return false
		}
	}
	return true
}

func (g *ScheduleGenerator) Reset() { g.issued = nil }

// ChainGenerator runs its members in order, moving on once each reports
// Done. The reference flow chains directed vectors ahead of random traffic
// with one shared scoreboard.
type ChainGenerator struct {
	gens []StimulusGenerator
	idx  int
}

// NewChainGenerator concatenates generators.
func NewChainGenerator(gens ...StimulusGenerator) *ChainGenerator {
	return &ChainGenerator{gens: gens}
}

func (g *ChainGenerator) current() StimulusGenerator {
	for g.idx < len(g.gens) && g.gens[g.idx].Done() {
		g.idx++
	}
	if g.idx >= len(g.gens) {
		return nil
	}
	return g.gens[g.idx]
}

func (g *ChainGenerator) NextOffer(cycle int) (core.Transaction, bool) {
	cur := g.current()
	if cur == nil {
		return core.Transaction{}, false
	}
	return cur.NextOffer(cycle)
}

func (g *ChainGenerator) NextReady(cycle int) bool {
	cur := g.current()
	if cur == nil {
		return true
	}
	return cur.NextReady(cycle)
}

func (g *ChainGenerator) Done() bool { return g.current() == nil }

func (g *ChainGenerator) Reset() {
	for _, gen := range g.gens {
		gen.Reset()
	}
	g.idx = 0
}
