package main

import (
	"github.com/Readm/rv_cosim/core"
	"github.com/Readm/rv_cosim/queue"
)

// MismatchRecord captures one failed comparison for diagnostics.
type MismatchRecord struct {
	Index int // completion index, in transfer order
	Tx    core.Transaction
	Got   core.Word
	Want  core.Word
}

type expectedEntry struct {
	tx    core.Transaction
	value core.Word
}

// Scoreboard holds the ordered model of expected results. Transactions enter
// on accept, leave on completion, and the order never changes: the DUT is an
// elastic pipe, not a reorderer.
type Scoreboard struct {
	model RefModel
	fifo  *queue.TrackedQueue[expectedEntry]
	log   *Logger

	completed  int
	mismatches int
	violations int

	records   []MismatchRecord
	recordCap int
}

// NewScoreboard builds a scoreboard around the reference model. recordCap
// bounds retained mismatch detail and the per-mismatch lines it logs.
func NewScoreboard(model RefModel, recordCap int, log *Logger) *Scoreboard {
	if recordCap <= 0 {
		recordCap = DefaultMismatchPrintCap
	}
	return &Scoreboard{
		model:     model,
		fifo:      queue.NewTrackedQueue[expectedEntry]("expected", queue.UnlimitedCapacity, nil, queue.Hooks[expectedEntry]{}),
		log:       log,
		recordCap: recordCap,
	}
}

// OnEdge applies one pre-edge sample. When a completion and an acceptance
// land on the same edge the completion is processed first: an elastic buffer
// can retire its head and admit a new item atomically, and the retiring item
// must be compared against what was in the queue before this edge's push.
func (sb *Scoreboard) OnEdge(sample core.EdgeSample, cycle int) {
	if sample.DidComplete {
		entry, ok := sb.fifo.PopFront(cycle)
		if !ok {
			sb.violations++
			// recordCap bounds printed lines too; a badly broken DUT
			// fires on nearly every cycle.
			if sb.violations <= sb.recordCap {
				sb.log.Errorf("cycle %d: unexpected completion %#x with empty scoreboard", cycle, uint64(sample.Result))
			} else if sb.violations == sb.recordCap+1 {
				sb.log.Errorf("cycle %d: further spurious completions suppressed", cycle)
			}
		} else {
			idx := sb.completed
			sb.completed++
			if sample.Result != entry.value {
				if sb.mismatches < sb.recordCap {
					sb.records = append(sb.records, MismatchRecord{
						Index: idx,
						Tx:    entry.tx,
						Got:   sample.Result,
						Want:  entry.value,
					})
				}
				sb.mismatches++
				if sb.mismatches <= sb.recordCap {
					sb.log.Errorf("cycle %d: mismatch @%d a=%#x b=%#x got=%#x exp=%#x",
						cycle, idx, uint64(entry.tx.A), uint64(entry.tx.B),
						uint64(sample.Result), uint64(entry.value))
				} else if sb.mismatches == sb.recordCap+1 {
					sb.log.Errorf("cycle %d: further mismatches suppressed", cycle)
				}
			}
		}
	}

	if sample.DidAccept {
		sb.fifo.Enqueue(expectedEntry{
			tx:    sample.Tx,
			value: sb.model(sample.Tx),
		}, cycle)
	}
}

// Pending returns the number of accepted-but-uncompleted transactions.
func (sb *Scoreboard) Pending() int { return sb.fifo.Len() }

// MaxDepth returns the deepest the queue has been; with a well behaved DUT
// it never exceeds the DUT's in-flight bound.
func (sb *Scoreboard) MaxDepth() int { return sb.fifo.MaxLen() }

// Completed returns the number of observed completions matched to entries.
func (sb *Scoreboard) Completed() int { return sb.completed }

// Mismatches returns the data-mismatch count.
func (sb *Scoreboard) Mismatches() int { return sb.mismatches }

// Violations returns the protocol-violation count (spurious completions).
func (sb *Scoreboard) Violations() int { return sb.violations }

// Records returns the retained mismatch detail, capped at recordCap.
func (sb *Scoreboard) Records() []MismatchRecord { return sb.records }
