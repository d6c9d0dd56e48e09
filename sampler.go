package main

import "github.com/Readm/rv_cosim/core"

// CaptureEdge folds the driven inputs and the DUT's combinational outputs
// into the authoritative pre-edge snapshot for the upcoming clock edge. It
// must run after the drive phase and before the DUT state advances: once the
// edge has been taken, the observable values may already belong to the next
// state and no longer say what transferred at this edge.
func CaptureEdge(drive core.DriveSignals, obs core.ObserveSignals) core.EdgeSample {
	sample := core.EdgeSample{
		DidAccept:   drive.OfferValid && obs.AcceptReady,
		DidComplete: obs.ResultValid && drive.ConsumerReady,
	}
	if sample.DidAccept {
		sample.Tx = core.Transaction{A: drive.A, B: drive.B, Arity: drive.Arity}
	}
	if sample.DidComplete {
		sample.Result = obs.Result
	}
	return sample
}
