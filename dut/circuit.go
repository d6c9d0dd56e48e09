// Package dut defines the evaluable-circuit capability the harness drives,
// plus in-process reference implementations used when no external simulator
// is attached.
package dut

import "github.com/Readm/rv_cosim/core"

// Circuit is a black-box synchronous device exposing the ready/valid
// handshake contract. The harness interacts with it in a fixed per-cycle
// order: ApplyInputs, ReadOutputs (pre-edge), AdvanceOneEdge.
type Circuit interface {
	// ApplyInputs drives the producer/consumer side signals for the
	// upcoming edge. Safe to call once per cycle, before ReadOutputs.
	ApplyInputs(in core.DriveSignals)

	// ReadOutputs returns the combinational outputs as they stand before
	// the edge. Calling it must not change circuit state.
	ReadOutputs() core.ObserveSignals

	// AdvanceOneEdge commits the transfers implied by the currently
	// applied inputs and pre-edge outputs, then updates internal state.
	AdvanceOneEdge()

	// Reset clears all internal state, equivalent to holding the reset
	// wire through an edge.
	Reset()
}
