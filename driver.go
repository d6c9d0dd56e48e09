package main

import "github.com/Readm/rv_cosim/core"

// HandshakeDriver owns the producer side of the handshake. Its one hard
// contract is the held-offer rule: a transaction that has been offered but
// not yet accepted is re-driven with an identical payload every cycle until
// the DUT takes it. The DUT deasserting accept must never cause the payload
// to change or the offer to be withdrawn.
type HandshakeDriver struct {
	gen StimulusGenerator

	pending    core.Transaction
	hasPending bool

	draining bool
	sent     int
}

// NewHandshakeDriver wraps a stimulus generator.
func NewHandshakeDriver(gen StimulusGenerator) *HandshakeDriver {
	return &HandshakeDriver{gen: gen}
}

// Drive computes the signals for the upcoming edge. Called once per cycle in
// the drive phase, before anything is sampled.
func (d *HandshakeDriver) Drive(cycle int) core.DriveSignals {
	if d.draining {
		// Drain: no fresh offers, consumer takes everything.
		return core.DriveSignals{ConsumerReady: true}
	}

	if !d.hasPending {
		if tx, ok := d.gen.NextOffer(cycle); ok {
			d.pending = tx
			d.hasPending = true
		}
	}

	out := core.DriveSignals{
		ConsumerReady: d.gen.NextReady(cycle),
	}
	if d.hasPending {
		out.OfferValid = true
		out.A = d.pending.A
		out.B = d.pending.B
		out.Arity = d.pending.Arity
	}
	return out
}

// NoteAccept tells the driver its pending offer was taken at the last edge.
func (d *HandshakeDriver) NoteAccept() {
	if !d.hasPending {
		return
	}
	d.hasPending = false
	d.sent++
}

// BeginDrain switches the driver into the terminal drain mode.
func (d *HandshakeDriver) BeginDrain() { d.draining = true }

// Pending reports whether an offer is awaiting acceptance.
func (d *HandshakeDriver) Pending() (core.Transaction, bool) {
	return d.pending, d.hasPending
}

// Sent returns the count of accepted transactions.
func (d *HandshakeDriver) Sent() int { return d.sent }

// Idle reports that the driver has nothing pending and its generator has
// nothing further to offer.
func (d *HandshakeDriver) Idle() bool {
	return !d.hasPending && d.gen.Done()
}
