package dut

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Readm/rv_cosim/core"
)

// step drives one full cycle against the circuit and returns the pre-edge
// snapshot, mirroring the harness's drive/sample/advance discipline.
func step(c Circuit, in core.DriveSignals) core.ObserveSignals {
	c.ApplyInputs(in)
	pre := c.ReadOutputs()
	c.AdvanceOneEdge()
	return pre
}

func TestElasticAdderSingleTransfer(t *testing.T) {
	d := NewElasticAdder(32, 2, 1)

	pre := step(d, core.DriveSignals{OfferValid: true, A: 5, B: 7, ConsumerReady: true})
	require.True(t, pre.AcceptReady, "empty adder must accept")
	require.False(t, pre.ResultValid, "no result before any accept")

	pre = step(d, core.DriveSignals{ConsumerReady: true})
	require.True(t, pre.ResultValid, "result due one cycle after accept")
	require.Equal(t, core.Word(12), pre.Result)

	pre = step(d, core.DriveSignals{ConsumerReady: true})
	require.False(t, pre.ResultValid, "result consumed on previous edge")
}

func TestElasticAdderWraparound(t *testing.T) {
	d := NewElasticAdder(32, 2, 1)

	step(d, core.DriveSignals{OfferValid: true, A: 0xFFFFFFFF, B: 1, ConsumerReady: true})
	pre := step(d, core.DriveSignals{ConsumerReady: true})
	require.True(t, pre.ResultValid)
	require.Equal(t, core.Word(0), pre.Result, "32-bit add must wrap")
}

func TestElasticAdderBackpressureFillsAndHolds(t *testing.T) {
	d := NewElasticAdder(32, 2, 1)

	// Consumer never ready: buffer fills to depth, then AcceptReady drops.
	for i := 0; i < 2; i++ {
		pre := step(d, core.DriveSignals{OfferValid: true, A: core.Word(i), B: 0})
		require.True(t, pre.AcceptReady, "accept %d while room remains", i)
	}
	pre := step(d, core.DriveSignals{OfferValid: true, A: 9, B: 0})
	require.False(t, pre.AcceptReady, "full buffer must deassert accept")
	require.True(t, pre.ResultValid)
	require.Equal(t, core.Word(0), pre.Result, "head must hold while stalled")

	// Draining restores acceptance and preserves order.
	pre = step(d, core.DriveSignals{ConsumerReady: true})
	require.Equal(t, core.Word(0), pre.Result)
	pre = step(d, core.DriveSignals{ConsumerReady: true})
	require.True(t, pre.AcceptReady, "room again after retiring head")
	require.Equal(t, core.Word(1), pre.Result)
}

func TestElasticAdderSameEdgePopPush(t *testing.T) {
	d := NewElasticAdder(32, 2, 1)

	step(d, core.DriveSignals{OfferValid: true, A: 1, B: 0, ConsumerReady: false})

	// Head valid, buffer has room: this edge both retires 1 and admits 2.
	pre := step(d, core.DriveSignals{OfferValid: true, A: 2, B: 0, ConsumerReady: true})
	require.True(t, pre.ResultValid)
	require.True(t, pre.AcceptReady)
	require.Equal(t, core.Word(1), pre.Result)

	pre = step(d, core.DriveSignals{ConsumerReady: true})
	require.True(t, pre.ResultValid)
	require.Equal(t, core.Word(2), pre.Result, "admitted value follows retired one")
}

func TestElasticLatencyDelaysResult(t *testing.T) {
	d := NewElasticAdder(32, 2, 3)

	pre := step(d, core.DriveSignals{OfferValid: true, A: 4, B: 4, ConsumerReady: true})
	require.True(t, pre.AcceptReady)

	// Two delay line slots before the buffer: result surfaces on cycle 3.
	for i := 0; i < 2; i++ {
		pre = step(d, core.DriveSignals{ConsumerReady: true})
		require.False(t, pre.ResultValid, "cycle %d still in flight", i+1)
	}
	pre = step(d, core.DriveSignals{ConsumerReady: true})
	require.True(t, pre.ResultValid)
	require.Equal(t, core.Word(8), pre.Result)
}

func TestElasticSquarerWidens(t *testing.T) {
	d := NewElasticSquarer(16, 2, 1)

	step(d, core.DriveSignals{OfferValid: true, A: 0xFFFF, ConsumerReady: true})
	pre := step(d, core.DriveSignals{ConsumerReady: true})
	require.True(t, pre.ResultValid)
	require.Equal(t, core.Word(0xFFFE0001), pre.Result, "square must widen, not wrap")
}

func TestElasticResetClearsState(t *testing.T) {
	d := NewElasticAdder(32, 2, 1)

	step(d, core.DriveSignals{OfferValid: true, A: 3, B: 3})
	step(d, core.DriveSignals{Reset: true})

	pre := step(d, core.DriveSignals{ConsumerReady: true})
	require.False(t, pre.ResultValid, "reset must drop buffered results")
}

func TestCorruptResultFlipsExactlyOne(t *testing.T) {
	inner := NewElasticAdder(32, 2, 1)
	d := &CorruptResult{Inner: inner, Index: 1}

	step(d, core.DriveSignals{OfferValid: true, A: 10, B: 0, ConsumerReady: true})
	pre := step(d, core.DriveSignals{OfferValid: true, A: 20, B: 0, ConsumerReady: true})
	require.Equal(t, core.Word(10), pre.Result, "transfer 0 untouched")

	pre = step(d, core.DriveSignals{ConsumerReady: true})
	require.Equal(t, core.Word(21), pre.Result, "transfer 1 corrupted")
}

func TestSilentDropSwallowsFirstOfferAfterReset(t *testing.T) {
	d := &SilentDrop{Inner: NewElasticAdder(32, 2, 1), Index: 0}
	d.Reset()

	step(d, core.DriveSignals{Reset: true})

	// First live cycle after reset: the driver must still see an accept.
	pre := step(d, core.DriveSignals{OfferValid: true, A: 3, B: 4, ConsumerReady: true})
	require.True(t, pre.AcceptReady, "drop must look like a normal accept")

	for i := 0; i < 4; i++ {
		pre = step(d, core.DriveSignals{ConsumerReady: true})
		require.False(t, pre.ResultValid, "dropped transaction must never surface")
	}

	// The next offer is past the drop index and flows through.
	step(d, core.DriveSignals{OfferValid: true, A: 5, B: 6, ConsumerReady: true})
	pre = step(d, core.DriveSignals{ConsumerReady: true})
	require.True(t, pre.ResultValid)
	require.Equal(t, core.Word(11), pre.Result)
}

func TestStuckOutputNeverCompletes(t *testing.T) {
	d := &StuckOutput{Inner: NewElasticAdder(32, 2, 1)}

	step(d, core.DriveSignals{OfferValid: true, A: 1, B: 1, ConsumerReady: true})
	for i := 0; i < 8; i++ {
		pre := step(d, core.DriveSignals{ConsumerReady: true})
		require.False(t, pre.ResultValid, "stuck DUT must never present a result")
	}
}
