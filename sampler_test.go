package main

import (
	"testing"

	"github.com/Readm/rv_cosim/core"
)

func TestCaptureEdgeTransferDecisions(t *testing.T) {
	cases := []struct {
		name         string
		drive        core.DriveSignals
		obs          core.ObserveSignals
		accept, done bool
	}{
		{"both transfer", core.DriveSignals{OfferValid: true, ConsumerReady: true}, core.ObserveSignals{AcceptReady: true, ResultValid: true}, true, true},
		{"offer without ready", core.DriveSignals{OfferValid: true}, core.ObserveSignals{}, false, false},
		{"ready without offer", core.DriveSignals{}, core.ObserveSignals{AcceptReady: true}, false, false},
		{"result without consumer", core.DriveSignals{}, core.ObserveSignals{ResultValid: true}, false, false},
	}
	for _, tc := range cases {
		sample := CaptureEdge(tc.drive, tc.obs)
		if sample.DidAccept != tc.accept || sample.DidComplete != tc.done {
			t.Fatalf("%s: accept=%v complete=%v", tc.name, sample.DidAccept, sample.DidComplete)
		}
	}
}

func TestCaptureEdgePayloadKeepsShape(t *testing.T) {
	sample := CaptureEdge(
		core.DriveSignals{OfferValid: true, A: 9, Arity: 1},
		core.ObserveSignals{AcceptReady: true},
	)
	if !sample.DidAccept {
		t.Fatalf("offer met ready, expected accept")
	}
	want := core.Transaction{A: 9, Arity: 1}
	if sample.Tx != want {
		t.Fatalf("sampled transaction %+v, want %+v", sample.Tx, want)
	}
}
