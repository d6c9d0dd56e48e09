package dut

import "github.com/Readm/rv_cosim/core"

// Fault-injection wrappers. These exist so the harness can be tested against
// a misbehaving DUT: each wrapper perturbs exactly one aspect of the inner
// circuit's observable behavior.

// CorruptResult flips the low bit of the Nth completed result (0-based),
// counting completions in transfer order. Every other transfer is passed
// through untouched.
type CorruptResult struct {
	Inner Circuit
	Index int

	in        core.DriveSignals
	completed int
}

func (c *CorruptResult) ApplyInputs(in core.DriveSignals) {
	c.in = in
	c.Inner.ApplyInputs(in)
}

func (c *CorruptResult) ReadOutputs() core.ObserveSignals {
	out := c.Inner.ReadOutputs()
	if out.ResultValid && c.completed == c.Index {
		out.Result ^= 1
	}
	return out
}

func (c *CorruptResult) AdvanceOneEdge() {
	pre := c.Inner.ReadOutputs()
	if pre.ResultValid && c.in.ConsumerReady {
		c.completed++
	}
	c.Inner.AdvanceOneEdge()
}

func (c *CorruptResult) Reset() {
	c.completed = 0
	c.Inner.Reset()
}

// SilentDrop swallows the Nth accepted transaction (0-based): the producer
// sees a normal accept, the inner circuit never receives the payload. The
// downstream symptom is a scoreboard that can never drain.
type SilentDrop struct {
	Inner Circuit
	Index int

	offered  bool
	accepted int
}

func (s *SilentDrop) ApplyInputs(in core.DriveSignals) {
	s.offered = in.OfferValid
	// The inner circuit must see the fresh inputs before AcceptReady is
	// judged; a stale reset flag would hide an accept on the first live
	// cycle. Re-applying with the offer masked is harmless, inputs only
	// latch.
	s.Inner.ApplyInputs(in)
	if in.OfferValid && s.accepted == s.Index && s.Inner.ReadOutputs().AcceptReady {
		in.OfferValid = false
		s.Inner.ApplyInputs(in)
	}
}

// ReadOutputs passes through: the dropped offer still looks accepted to the
// driver because AcceptReady is occupancy-based, not offer-based.
func (s *SilentDrop) ReadOutputs() core.ObserveSignals {
	return s.Inner.ReadOutputs()
}

func (s *SilentDrop) AdvanceOneEdge() {
	pre := s.Inner.ReadOutputs()
	if s.offered && pre.AcceptReady {
		// Count accepts as the driver sees them, dropped one included.
		s.accepted++
	}
	s.Inner.AdvanceOneEdge()
}

func (s *SilentDrop) Reset() {
	s.offered = false
	s.accepted = 0
	s.Inner.Reset()
}

// StuckOutput masks the inner circuit's completion side entirely: results are
// never presented, so accepted work never completes. Used to exercise the
// drain-timeout path.
type StuckOutput struct {
	Inner Circuit
}

func (s *StuckOutput) ApplyInputs(in core.DriveSignals) {
	in.ConsumerReady = false
	s.Inner.ApplyInputs(in)
}

func (s *StuckOutput) ReadOutputs() core.ObserveSignals {
	out := s.Inner.ReadOutputs()
	out.ResultValid = false
	out.Result = 0
	return out
}

func (s *StuckOutput) AdvanceOneEdge() { s.Inner.AdvanceOneEdge() }

func (s *StuckOutput) Reset() { s.Inner.Reset() }
