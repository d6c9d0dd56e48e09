package core

// Word is the widest value any payload or result bus in the harness carries.
// Narrower configured widths are enforced by masking at the model boundary.
type Word uint64

// Transaction is one input tuple offered to the DUT. It is created by a
// stimulus generator, consumed by the handshake driver on acceptance, and
// never mutated.
type Transaction struct {
	A Word
	B Word

	// Arity is the number of operands the DUT consumes: 1 for unary
	// transforms (B is ignored), 2 for binary ones.
	Arity int
}

// DriveSignals is everything the harness drives into the DUT for one cycle:
// producer side (offer + payload), consumer side (ready) and reset.
type DriveSignals struct {
	Reset bool

	// OfferValid asserts that A/B carry data the producer wants accepted.
	// While an offer is pending acceptance the same payload must be
	// re-driven unchanged every cycle.
	OfferValid bool
	A          Word
	B          Word

	// Arity tags how many of A/B carry operands. It rides along with the
	// payload so pre-edge samples reconstruct the offered transaction
	// exactly, unary shape included.
	Arity int

	// ConsumerReady asserts that the external consumer will take a result
	// at the upcoming edge.
	ConsumerReady bool
}

// ObserveSignals is what the DUT presents combinationally, read before the
// clock edge that commits transfers.
type ObserveSignals struct {
	// AcceptReady asserts the DUT will accept the offered payload at the
	// upcoming edge.
	AcceptReady bool

	// ResultValid asserts Result carries a completed value.
	ResultValid bool
	Result      Word
}

// EdgeSample is the authoritative pre-edge snapshot for one clock edge. Both
// transfer decisions are folded from values read before state advanced; a
// post-edge read may already reflect the next state and must not be used.
type EdgeSample struct {
	// DidAccept is OfferValid && AcceptReady as they stood before the edge.
	DidAccept bool
	// Tx is the transaction transferred when DidAccept is true.
	Tx Transaction

	// DidComplete is ResultValid && ConsumerReady as they stood before the
	// edge.
	DidComplete bool
	// Result is the value actually transferred when DidComplete is true.
	Result Word
}
