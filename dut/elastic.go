package dut

import (
	"github.com/Readm/rv_cosim/core"
	"github.com/Readm/rv_cosim/queue"
)

// Transform computes the result committed when a transaction is accepted.
type Transform func(tx core.Transaction) core.Word

type pipeSlot struct {
	valid bool
	value core.Word
}

// Elastic models a synchronous ready/valid pipeline with internal elastic
// storage: a fixed-latency delay line feeding a bounded result buffer. It
// can accept a new transaction on the same edge it retires a result
// (drain-first refill), which is exactly the case the scoreboard's
// pop-before-push ordering exists for.
type Elastic struct {
	name      string
	depth     int
	latency   int
	transform Transform

	in   core.DriveSignals
	pipe []pipeSlot
	buf  *queue.TrackedQueue[core.Word]

	cycle int
}

// NewElastic builds an elastic pipeline. depth is the result buffer capacity
// (>= 1); latency is the accept-to-result-valid delay in cycles assuming an
// empty, unstalled pipe (>= 1).
func NewElastic(name string, depth, latency int, transform Transform) *Elastic {
	if depth < 1 {
		depth = 1
	}
	if latency < 1 {
		latency = 1
	}
	return &Elastic{
		name:      name,
		depth:     depth,
		latency:   latency,
		transform: transform,
		pipe:      make([]pipeSlot, latency-1),
		buf:       queue.NewTrackedQueue[core.Word](name+"_results", depth, nil, queue.Hooks[core.Word]{}),
	}
}

// NewElasticAdder returns the binary example DUT: out = (a + b) mod 2^width.
func NewElasticAdder(width, depth, latency int) *Elastic {
	mask := WidthMask(width)
	return NewElastic("adder", depth, latency, func(tx core.Transaction) core.Word {
		return (tx.A + tx.B) & mask
	})
}

// NewElasticSquarer returns the unary example DUT: out = a*a, widened to
// 2*width bits with no wraparound. width must be <= 32 so the widened result
// fits the bus.
func NewElasticSquarer(width, depth, latency int) *Elastic {
	mask := WidthMask(width)
	return NewElastic("squarer", depth, latency, func(tx core.Transaction) core.Word {
		a := tx.A & mask
		return a * a
	})
}

// WidthMask returns the all-ones mask for a width in [1,64].
func WidthMask(width int) core.Word {
	if width <= 0 {
		return 0
	}
	if width >= 64 {
		return ^core.Word(0)
	}
	return (core.Word(1) << uint(width)) - 1
}

// Depth returns the result buffer capacity.
func (e *Elastic) Depth() int { return e.depth }

// Latency returns the accept-to-result delay in cycles.
func (e *Elastic) Latency() int { return e.latency }

// InFlightBound is the maximum number of accepted-but-not-completed
// transactions the circuit can hold: buffer depth plus delay line slots.
func (e *Elastic) InFlightBound() int { return e.depth + e.latency - 1 }

// ApplyInputs latches the driven signals for the upcoming edge.
func (e *Elastic) ApplyInputs(in core.DriveSignals) {
	e.in = in
}

// ReadOutputs presents the pre-edge combinational view. AcceptReady is
// registered occupancy, not a ready/valid passthrough: the circuit accepts
// whenever its first stage has room, independent of the consumer.
func (e *Elastic) ReadOutputs() core.ObserveSignals {
	if e.in.Reset {
		return core.ObserveSignals{}
	}
	out := core.ObserveSignals{
		AcceptReady: e.stageFree(),
	}
	if v, ok := e.buf.Front(); ok {
		out.ResultValid = true
		out.Result = v
	}
	return out
}

// AdvanceOneEdge commits this edge's transfers in drain-first order: retire
// the head result, move the delay line, then admit the offered transaction.
func (e *Elastic) AdvanceOneEdge() {
	e.cycle++
	if e.in.Reset {
		e.Reset()
		return
	}

	pre := e.ReadOutputs()

	// Retire first so a full buffer can refill on the same edge.
	if pre.ResultValid && e.in.ConsumerReady {
		e.buf.PopFront(e.cycle)
	}

	// Shift the delay line toward the buffer, back to front.
	if n := len(e.pipe); n > 0 {
		last := &e.pipe[n-1]
		if last.valid && e.buf.CanAccept(1) {
			e.buf.Enqueue(last.value, e.cycle)
			last.valid = false
		}
		for i := n - 1; i > 0; i-- {
			if !e.pipe[i].valid && e.pipe[i-1].valid {
				e.pipe[i] = e.pipe[i-1]
				e.pipe[i-1].valid = false
			}
		}
	}

	// Admit the offer using the pre-edge ready, matching what the driver
	// observed.
	if pre.AcceptReady && e.in.OfferValid {
		tx := core.Transaction{A: e.in.A, B: e.in.B, Arity: e.in.Arity}
		v := e.transform(tx)
		if len(e.pipe) > 0 {
			e.pipe[0] = pipeSlot{valid: true, value: v}
		} else {
			e.buf.Enqueue(v, e.cycle)
		}
	}
}

func (e *Elastic) stageFree() bool {
	if len(e.pipe) > 0 {
		return !e.pipe[0].valid
	}
	return e.buf.CanAccept(1)
}

// Reset clears all elastic storage.
func (e *Elastic) Reset() {
	for i := range e.pipe {
		e.pipe[i] = pipeSlot{}
	}
	e.buf.Clear()
}
