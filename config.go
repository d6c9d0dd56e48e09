package main

// Default knobs; unset Config fields fall back to these. Rates default on
// negative values so an explicit 0 survives validation.
const (
	DefaultOfferRate        = 0.70
	DefaultReadyRate        = 0.60
	DefaultResetCycles      = 4
	DefaultDrainBudget      = 64
	DefaultAcceptBudget     = 64
	DefaultMismatchPrintCap = 10
	DefaultTotalCycles      = 2000
	DefaultDUTDepth         = 2
	DefaultDUTLatency       = 1
)

// Config describes one harness run.
type Config struct {
	// Operand width in bits. For unary (squaring) DUTs the result widens
	// to 2*Width bits, so Width is capped at 32 there.
	Width int
	// Arity is the DUT's operand count: 1 or 2.
	Arity int

	// TotalCycles bounds the main stimulus phase.
	TotalCycles int

	// Seed drives every pseudo-random decision. Stored explicitly so a
	// failing run is replayable; the core never seeds from the clock.
	Seed int64

	// Per-cycle probability that a new transaction is offered / that the
	// consumer is ready, in [0,1]. Zero is a legal rate; a negative value
	// selects the default.
	OfferRate float64
	ReadyRate float64

	// ResetCycles is the warm-up window with reset asserted.
	ResetCycles int

	// DrainBudget bounds the terminal drain phase; exceeding it is a
	// liveness failure, not a mismatch.
	DrainBudget int

	// AcceptBudget bounds how long one offer may stay pending before the
	// DUT is declared stuck.
	AcceptBudget int

	// MismatchPrintCap bounds per-mismatch diagnostic lines.
	MismatchPrintCap int

	// Declared DUT elasticity, used for the scoreboard depth assertion.
	DUTDepth   int
	DUTLatency int

	Verbose bool
}
