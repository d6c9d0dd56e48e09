package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Readm/rv_cosim/core"
	"github.com/Readm/rv_cosim/dut"
	"github.com/Readm/rv_cosim/filedut"
)

func main() {
	exitCode := 0

	rootCmd := &cobra.Command{
		Use:          "rv_cosim",
		Short:        "Cycle-accurate ready/valid co-simulation harness",
		SilenceUsage: true,
	}

	cfg := &Config{}
	var op string

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Drive the in-process elastic DUT: directed vectors, then randomized traffic",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch op {
			case "add":
				cfg.Arity = 2
			case "square":
				cfg.Arity = 1
			default:
				exitCode = OutcomeSetupFailure.ExitCode()
				return fmt.Errorf("unknown op %q (want add or square)", op)
			}
			if err := ValidateConfig(cfg); err != nil {
				exitCode = OutcomeSetupFailure.ExitCode()
				return err
			}

			var circuit dut.Circuit
			var directed []core.Transaction
			if cfg.Arity == 1 {
				circuit = dut.NewElasticSquarer(cfg.Width, cfg.DUTDepth, cfg.DUTLatency)
				directed = UnaryBoundaryVectors(cfg.Width)
			} else {
				circuit = dut.NewElasticAdder(cfg.Width, cfg.DUTDepth, cfg.DUTLatency)
				directed = BoundaryVectors(cfg.Width)
			}

			rng := rand.New(rand.NewSource(cfg.Seed))
			gen := NewChainGenerator(
				NewDirectedGenerator(directed),
				NewRandomGenerator(rng, cfg.Width, cfg.Arity, cfg.OfferRate, cfg.ReadyRate),
			)

			h, err := NewHarness(cfg, circuit, gen)
			if err != nil {
				exitCode = OutcomeSetupFailure.ExitCode()
				return err
			}
			report := h.Run()
			report.Print(os.Stdout)
			exitCode = report.Outcome().ExitCode()
			return nil
		},
	}
	runCmd.Flags().IntVar(&cfg.Width, "width", 32, "Operand width in bits")
	runCmd.Flags().StringVar(&op, "op", "add", "DUT transform: add or square")
	runCmd.Flags().IntVar(&cfg.TotalCycles, "cycles", DefaultTotalCycles, "Randomized stimulus cycle budget")
	runCmd.Flags().Int64Var(&cfg.Seed, "seed", 1, "Stimulus seed (stored for replay)")
	runCmd.Flags().Float64Var(&cfg.OfferRate, "offer-rate", DefaultOfferRate, "Per-cycle offer probability")
	runCmd.Flags().Float64Var(&cfg.ReadyRate, "ready-rate", DefaultReadyRate, "Per-cycle consumer-ready probability")
	runCmd.Flags().IntVar(&cfg.DUTDepth, "depth", DefaultDUTDepth, "DUT elastic buffer depth")
	runCmd.Flags().IntVar(&cfg.DUTLatency, "latency", DefaultDUTLatency, "DUT accept-to-result latency")
	runCmd.Flags().IntVar(&cfg.DrainBudget, "drain-budget", DefaultDrainBudget, "Drain phase cycle bound")
	runCmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Debug logging")

	var (
		fileIn    string
		fileOut   string
		fileBase  string
		fileN     int
		fileSeed  int64
		fileWidth int
		fileOp    string
		fileDir   string
		fileTmo   time.Duration
	)
	fileCmd := &cobra.Command{
		Use:   "file -- <dut-command> [args...]",
		Short: "File-based co-simulation against an external DUT process",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fcfg := &Config{Width: fileWidth, Seed: fileSeed}
			switch fileOp {
			case "add":
				fcfg.Arity = 2
			case "square":
				fcfg.Arity = 1
			default:
				exitCode = OutcomeSetupFailure.ExitCode()
				return fmt.Errorf("unknown op %q (want add or square)", fileOp)
			}
			if err := ValidateConfig(fcfg); err != nil {
				exitCode = OutcomeSetupFailure.ExitCode()
				return err
			}
			base, err := filedut.ParseBase(fileBase)
			if err != nil {
				exitCode = OutcomeSetupFailure.ExitCode()
				return err
			}
			if fileN <= 0 {
				exitCode = OutcomeSetupFailure.ExitCode()
				return fmt.Errorf("transaction count must be positive, got %d", fileN)
			}

			rng := rand.New(rand.NewSource(fcfg.Seed))
			mask := dut.WidthMask(fcfg.Width)
			txs := make([]core.Transaction, fileN)
			for i := range txs {
				txs[i] = core.Transaction{
					A:     core.Word(rng.Uint64()) & mask,
					Arity: fcfg.Arity,
				}
				if fcfg.Arity == 2 {
					txs[i].B = core.Word(rng.Uint64()) & mask
				}
			}

			runner := &filedut.Runner{
				InputPath:  fileIn,
				OutputPath: fileOut,
				Command:    args,
				Dir:        fileDir,
				Base:       base,
				Width:      fcfg.Width,
				Model:      ModelFor(fcfg),
				RecordCap:  DefaultMismatchPrintCap,
			}

			ctx := context.Background()
			if fileTmo > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, fileTmo)
				defer cancel()
			}

			report, err := runner.Run(ctx, txs)
			if err != nil {
				exitCode = fileExitCode(err)
				return err
			}
			for _, rec := range report.Records {
				fmt.Printf("MISMATCH @%d a=%x b=%x out=%x exp=%x\n",
					rec.Index, uint64(rec.Tx.A), uint64(rec.Tx.B),
					uint64(rec.Got), uint64(rec.Want))
			}
			if report.Passed() {
				fmt.Printf("PASS: all %d matched\n", report.Total)
				exitCode = OutcomePass.ExitCode()
			} else {
				fmt.Printf("FAIL: %d mismatches of %d\n", report.Mismatches, report.Total)
				exitCode = OutcomeMismatch.ExitCode()
			}
			return nil
		},
	}
	fileCmd.Flags().StringVar(&fileIn, "input", "inputs.txt", "Stimulus file path")
	fileCmd.Flags().StringVar(&fileOut, "output", "outputs.txt", "Result file path")
	fileCmd.Flags().StringVar(&fileBase, "base", "hex", "Record token base: hex or dec")
	fileCmd.Flags().IntVar(&fileN, "n", 1024, "Transaction count")
	fileCmd.Flags().Int64Var(&fileSeed, "seed", 1, "Stimulus seed")
	fileCmd.Flags().IntVar(&fileWidth, "width", 32, "Operand width in bits")
	fileCmd.Flags().StringVar(&fileOp, "op", "add", "DUT transform: add or square")
	fileCmd.Flags().StringVar(&fileDir, "dir", ".", "Working directory for the DUT process")
	fileCmd.Flags().DurationVar(&fileTmo, "timeout", 0, "DUT process timeout (0 = none)")

	rootCmd.AddCommand(runCmd, fileCmd)

	if err := rootCmd.Execute(); err != nil {
		if exitCode == 0 {
			exitCode = OutcomeSetupFailure.ExitCode()
		}
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode)
}

// fileExitCode maps a file-based run error to the legacy status codes.
func fileExitCode(err error) int {
	switch {
	case errors.Is(err, filedut.ErrWriteStimulus):
		return OutcomeStimulusWriteFailure.ExitCode()
	case errors.Is(err, filedut.ErrLaunch):
		return OutcomeLaunchFailure.ExitCode()
	case errors.Is(err, filedut.ErrReadback):
		return OutcomeReadbackFailure.ExitCode()
	}
	return OutcomeSetupFailure.ExitCode()
}
