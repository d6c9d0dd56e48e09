package main

import (
	"errors"

	"github.com/Readm/rv_cosim/core"
	"github.com/Readm/rv_cosim/dut"
)

// Harness multiplexes two independently paced agents, producer and consumer,
// onto one shared clock. Each loop iteration is one clock period split into
// two ordered phases: drive (apply this cycle's stimulus) and sample/update
// (snapshot the pre-edge signals, advance the DUT, then do the scoreboard
// bookkeeping). Edge N+1 is never evaluated before edge N's bookkeeping is
// complete, and nothing in the core suspends outside this loop.
type Harness struct {
	cfg     *Config
	circuit dut.Circuit
	gen     StimulusGenerator
	driver  *HandshakeDriver
	board   *Scoreboard
	log     *Logger

	cycle int
}

// NewHarness validates the config and wires the verification core around the
// circuit. The reference model is derived from the configured width/arity,
// so a width mismatch dies here rather than mid-run.
func NewHarness(cfg *Config, circuit dut.Circuit, gen StimulusGenerator) (*Harness, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if circuit == nil {
		return nil, errors.New("no circuit attached")
	}
	if gen == nil {
		return nil, errors.New("no stimulus generator attached")
	}
	log := GetLogger()
	if cfg.Verbose {
		log.SetLevel(LogLevelDebug)
	}
	return &Harness{
		cfg:     cfg,
		circuit: circuit,
		gen:     gen,
		driver:  NewHandshakeDriver(gen),
		board:   NewScoreboard(ModelFor(cfg), cfg.MismatchPrintCap, log),
		log:     log,
	}, nil
}

// Board exposes the scoreboard for inspection after a run.
func (h *Harness) Board() *Scoreboard { return h.board }

// Run executes reset warm-up, the bounded stimulus phase and the bounded
// drain phase, and returns the aggregated report.
func (h *Harness) Run() *Report {
	h.applyReset()

	stuck := false
	pendingAge := 0
	// Generators see stimulus-relative cycle numbers; h.cycle also counts
	// the reset warm-up.
	for stim := 0; stim < h.cfg.TotalCycles; stim++ {
		if h.driver.Idle() {
			break
		}
		drive := h.driver.Drive(stim)
		sample := h.step(drive)

		// An offer the DUT refuses forever is a hang, not backpressure.
		if _, pending := h.driver.Pending(); pending && !sample.DidAccept {
			pendingAge++
			if pendingAge > h.cfg.AcceptBudget {
				stuck = true
				h.log.Errorf("cycle %d: offer pending for %d cycles, DUT stuck", h.cycle, pendingAge)
				break
			}
		} else {
			pendingAge = 0
		}
	}

	// Drain: no new offers, consumer-ready held true until everything in
	// flight has completed or the budget runs out.
	h.driver.BeginDrain()
	for i := 0; i < h.cfg.DrainBudget; i++ {
		if h.board.Pending() == 0 && !h.circuit.ReadOutputs().ResultValid {
			break
		}
		h.step(h.driver.Drive(i))
	}
	drained := h.board.Pending() == 0 && !h.circuit.ReadOutputs().ResultValid

	report := &Report{
		Sent:         h.driver.Sent(),
		Completed:    h.board.Completed(),
		Mismatches:   h.board.Mismatches(),
		Violations:   h.board.Violations(),
		Records:      h.board.Records(),
		DrainTimeout: !drained,
		StuckOffer:   stuck,
		Undrained:    h.board.Pending(),
		Cycles:       h.cycle,
		MaxDepth:     h.board.MaxDepth(),
	}
	h.log.Infof("run finished: outcome=%s sent=%d completed=%d cycles=%d",
		report.Outcome(), report.Sent, report.Completed, report.Cycles)
	return report
}

// step performs one full clock period: drive, pre-edge snapshot, edge,
// bookkeeping. The snapshot taken before AdvanceOneEdge is the only evidence
// used to decide what transferred at this edge.
func (h *Harness) step(drive core.DriveSignals) core.EdgeSample {
	h.circuit.ApplyInputs(drive)
	sample := CaptureEdge(drive, h.circuit.ReadOutputs())
	h.circuit.AdvanceOneEdge()
	h.board.OnEdge(sample, h.cycle)
	if sample.DidAccept {
		h.driver.NoteAccept()
	}
	h.cycle++
	return sample
}

// applyReset holds the reset wire through the warm-up window with offers and
// readiness deasserted.
func (h *Harness) applyReset() {
	for i := 0; i < h.cfg.ResetCycles; i++ {
		h.circuit.ApplyInputs(core.DriveSignals{Reset: true})
		h.circuit.AdvanceOneEdge()
		h.cycle++
	}
}
