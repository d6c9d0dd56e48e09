package filedut

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/Readm/rv_cosim/core"
)

// Failure classes for the file-based run. The CLI maps each to a distinct
// exit code; an external DUT that exits non-zero is a launch failure, and a
// result file of the wrong length is a read-back failure, never a data
// mismatch.
var (
	ErrWriteStimulus = errors.New("cannot write stimulus file")
	ErrLaunch        = errors.New("DUT process failed")
	ErrReadback      = errors.New("cannot read DUT outputs")
)

// CommandRunner launches the external DUT process and blocks until it exits.
// Tests substitute an in-process fake.
type CommandRunner interface {
	Run(ctx context.Context, dir string, name string, args ...string) error
}

// ExecRunner runs the DUT command through os/exec, inheriting stdio so
// simulator banners stay visible.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// MismatchRecord describes one position where the DUT output differed from
// the reference value.
type MismatchRecord struct {
	Index int
	Tx    core.Transaction
	Got   core.Word
	Want  core.Word
}

// BatchReport summarizes one file-based run.
type BatchReport struct {
	Total      int
	Mismatches int
	Records    []MismatchRecord // capped at RecordCap
}

// Passed reports whether every output matched.
func (r *BatchReport) Passed() bool {
	return r != nil && r.Mismatches == 0
}

// Runner owns one file-based co-simulation round trip.
type Runner struct {
	InputPath  string
	OutputPath string
	Command    []string // DUT invocation, argv style
	Dir        string   // working directory for the DUT process
	Base       Base
	Width      int

	// Model is the golden transform applied to each transaction.
	Model func(tx core.Transaction) core.Word

	// RecordCap bounds retained mismatch detail (default 10).
	RecordCap int

	// Exec launches the DUT process; defaults to ExecRunner.
	Exec CommandRunner
}

// Run writes the stimulus file, launches the DUT, reads the result file back
// and compares it against the reference model. Setup failures are returned
// as wrapped sentinel errors; data mismatches are not errors, they are
// reported through BatchReport.
func (r *Runner) Run(ctx context.Context, txs []core.Transaction) (*BatchReport, error) {
	if r.Model == nil {
		return nil, fmt.Errorf("%w: no reference model configured", ErrLaunch)
	}
	if len(r.Command) == 0 {
		return nil, fmt.Errorf("%w: no DUT command configured", ErrLaunch)
	}
	recordCap := r.RecordCap
	if recordCap <= 0 {
		recordCap = 10
	}
	runner := r.Exec
	if runner == nil {
		runner = ExecRunner{}
	}

	f, err := os.Create(r.InputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteStimulus, err)
	}
	if err := WriteInputs(f, txs, r.Base, r.Width); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrWriteStimulus, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteStimulus, err)
	}

	// Stale results must not be mistaken for fresh ones.
	_ = os.Remove(r.OutputPath)

	if err := runner.Run(ctx, r.Dir, r.Command[0], r.Command[1:]...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLaunch, err)
	}

	out, err := r.readBack()
	if err != nil {
		return nil, err
	}
	if len(out) != len(txs) {
		return nil, fmt.Errorf("%w: length mismatch outputs=%d inputs=%d",
			ErrReadback, len(out), len(txs))
	}

	report := &BatchReport{Total: len(txs)}
	for i, tx := range txs {
		want := r.Model(tx)
		if out[i] == want {
			continue
		}
		if report.Mismatches < recordCap {
			report.Records = append(report.Records, MismatchRecord{
				Index: i, Tx: tx, Got: out[i], Want: want,
			})
		}
		report.Mismatches++
	}
	return report, nil
}

func (r *Runner) readBack() ([]core.Word, error) {
	f, err := os.Open(r.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadback, err)
	}
	defer f.Close()
	out, err := ReadOutputs(f, r.Base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadback, err)
	}
	return out, nil
}
