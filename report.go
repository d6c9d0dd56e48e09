package main

import (
	"fmt"
	"io"
)

// Outcome classifies a finished run. Every class gets its own exit code so
// CI can tell a hang from a correctness bug from a broken setup.
type Outcome int

const (
	OutcomePass Outcome = iota
	OutcomeSetupFailure
	OutcomeStimulusWriteFailure
	OutcomeLaunchFailure
	OutcomeReadbackFailure
	OutcomeMismatch
	OutcomeDrainTimeout
)

// ExitCode maps an outcome to the process exit status. Codes 2-4 are shared
// with the file-based flow; drain timeout gets its own code so a liveness
// failure is never misread as a data mismatch.
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomePass:
		return 0
	case OutcomeSetupFailure:
		return 1
	case OutcomeStimulusWriteFailure:
		return 2
	case OutcomeLaunchFailure:
		return 3
	case OutcomeReadbackFailure:
		return 4
	case OutcomeMismatch:
		return 5
	case OutcomeDrainTimeout:
		return 6
	}
	return 1
}

func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "pass"
	case OutcomeSetupFailure:
		return "setup failure"
	case OutcomeStimulusWriteFailure:
		return "stimulus write failure"
	case OutcomeLaunchFailure:
		return "DUT launch failure"
	case OutcomeReadbackFailure:
		return "output read failure"
	case OutcomeMismatch:
		return "data mismatch"
	case OutcomeDrainTimeout:
		return "drain timeout"
	}
	return "unknown"
}

// Report aggregates the result of one harness run.
type Report struct {
	Sent       int
	Completed  int
	Mismatches int
	Violations int
	Records    []MismatchRecord

	DrainTimeout bool
	StuckOffer   bool // an offer stayed pending past the accept budget
	Undrained    int  // entries left in the scoreboard after drain

	Cycles   int
	MaxDepth int
}

// Outcome classifies the run. Liveness failures dominate: a DUT that hangs
// may also show zero mismatches, and reporting that as a pass would hide the
// hang.
func (r *Report) Outcome() Outcome {
	switch {
	case r.DrainTimeout || r.StuckOffer:
		return OutcomeDrainTimeout
	case r.Mismatches > 0 || r.Violations > 0:
		return OutcomeMismatch
	default:
		return OutcomePass
	}
}

// Print writes the bounded per-mismatch detail followed by the single
// summary line.
func (r *Report) Print(w io.Writer) {
	for _, rec := range r.Records {
		fmt.Fprintf(w, "MISMATCH @%d a=%x b=%x out=%x exp=%x\n",
			rec.Index, uint64(rec.Tx.A), uint64(rec.Tx.B),
			uint64(rec.Got), uint64(rec.Want))
	}
	if r.Violations > 0 {
		fmt.Fprintf(w, "protocol violations: %d unexpected completion(s)\n", r.Violations)
	}
	if r.StuckOffer {
		fmt.Fprintf(w, "liveness: offer stayed pending past the accept budget\n")
	}
	if r.DrainTimeout {
		fmt.Fprintf(w, "liveness: %d item(s) still in flight after drain budget\n", r.Undrained)
	}

	switch r.Outcome() {
	case OutcomePass:
		fmt.Fprintf(w, "PASS: all %d matched (%d cycles)\n", r.Completed, r.Cycles)
	default:
		fmt.Fprintf(w, "FAIL (%s): sent=%d completed=%d mismatches=%d violations=%d (%d cycles)\n",
			r.Outcome(), r.Sent, r.Completed, r.Mismatches, r.Violations, r.Cycles)
	}
}
