package main

import "testing"

func TestValidateConfigFillsDefaults(t *testing.T) {
	cfg := &Config{Width: 32, OfferRate: -1, ReadyRate: -1}
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("minimal config rejected: %v", err)
	}

	if cfg.Arity != 2 {
		t.Fatalf("default arity should be 2, got %d", cfg.Arity)
	}
	if cfg.OfferRate != DefaultOfferRate || cfg.ReadyRate != DefaultReadyRate {
		t.Fatalf("rates not defaulted: offer=%.2f ready=%.2f", cfg.OfferRate, cfg.ReadyRate)
	}
	if cfg.TotalCycles != DefaultTotalCycles {
		t.Fatalf("cycles not defaulted: %d", cfg.TotalCycles)
	}
	if cfg.ResetCycles != DefaultResetCycles || cfg.DrainBudget != DefaultDrainBudget {
		t.Fatalf("budgets not defaulted: reset=%d drain=%d", cfg.ResetCycles, cfg.DrainBudget)
	}
	if cfg.MismatchPrintCap != DefaultMismatchPrintCap {
		t.Fatalf("print cap not defaulted: %d", cfg.MismatchPrintCap)
	}
	if cfg.DUTDepth != DefaultDUTDepth || cfg.DUTLatency != DefaultDUTLatency {
		t.Fatalf("DUT elasticity not defaulted: depth=%d latency=%d", cfg.DUTDepth, cfg.DUTLatency)
	}
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero width", Config{Width: 0}},
		{"width too wide", Config{Width: 65}},
		{"unary width exceeds result bus", Config{Width: 40, Arity: 1}},
		{"bad arity", Config{Width: 32, Arity: 3}},
		{"offer rate above one", Config{Width: 32, OfferRate: 1.5}},
		{"ready rate above one", Config{Width: 32, ReadyRate: 1.01}},
		{"negative cycles", Config{Width: 32, TotalCycles: -5}},
	}
	for _, tc := range cases {
		cfg := tc.cfg
		if err := ValidateConfig(&cfg); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestValidateConfigKeepsExplicitZeroRates(t *testing.T) {
	// Offer-free and pure-backpressure runs are configured with a rate of
	// exactly 0; only a negative value asks for the default.
	cfg := &Config{Width: 32, OfferRate: 0, ReadyRate: 0}
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("zero rates rejected: %v", err)
	}
	if cfg.OfferRate != 0 || cfg.ReadyRate != 0 {
		t.Fatalf("explicit zero rates overwritten: offer=%.2f ready=%.2f", cfg.OfferRate, cfg.ReadyRate)
	}
}

func TestValidateConfigNil(t *testing.T) {
	if err := ValidateConfig(nil); err == nil {
		t.Fatalf("nil config must be rejected")
	}
}
