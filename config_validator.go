package main

import (
	"errors"
	"fmt"
)

// ValidateConfig applies structural checks to Config and populates defaults
// where required. Width/arity problems are caught here, before any cycle
// runs: a model/DUT width mismatch is a configuration error, never a runtime
// one.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if cfg.Arity == 0 {
		cfg.Arity = 2
	}
	if cfg.Arity != 1 && cfg.Arity != 2 {
		return fmt.Errorf("Arity must be 1 or 2, got %d", cfg.Arity)
	}
	if cfg.Width <= 0 || cfg.Width > 64 {
		return fmt.Errorf("Width must be within [1,64], got %d", cfg.Width)
	}
	if cfg.Arity == 1 && cfg.Width > 32 {
		return fmt.Errorf("unary Width must be within [1,32] so the widened result fits the bus, got %d", cfg.Width)
	}
	if cfg.OfferRate > 1 {
		return fmt.Errorf("OfferRate must be within [0,1], got %.3f", cfg.OfferRate)
	}
	if cfg.ReadyRate > 1 {
		return fmt.Errorf("ReadyRate must be within [0,1], got %.3f", cfg.ReadyRate)
	}
	if cfg.TotalCycles < 0 {
		return fmt.Errorf("TotalCycles must be non-negative, got %d", cfg.TotalCycles)
	}

	if cfg.TotalCycles == 0 {
		cfg.TotalCycles = DefaultTotalCycles
	}
	// A rate of exactly 0 is legal (offer-free or pure-backpressure runs),
	// so "use the default" is requested with a negative value, not zero.
	if cfg.OfferRate < 0 {
		cfg.OfferRate = DefaultOfferRate
	}
	if cfg.ReadyRate < 0 {
		cfg.ReadyRate = DefaultReadyRate
	}
	if cfg.ResetCycles <= 0 {
		cfg.ResetCycles = DefaultResetCycles
	}
	if cfg.DrainBudget <= 0 {
		cfg.DrainBudget = DefaultDrainBudget
	}
	if cfg.AcceptBudget <= 0 {
		cfg.AcceptBudget = DefaultAcceptBudget
	}
	if cfg.MismatchPrintCap <= 0 {
		cfg.MismatchPrintCap = DefaultMismatchPrintCap
	}
	if cfg.DUTDepth <= 0 {
		cfg.DUTDepth = DefaultDUTDepth
	}
	if cfg.DUTLatency <= 0 {
		cfg.DUTLatency = DefaultDUTLatency
	}

	return nil
}
