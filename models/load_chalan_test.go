package models

import "testing"

func TestChalanStatusForwardOnly(t *testing.T) {
	cases := []struct {
		from    ChalanStatus
		to      ChalanStatus
		allowed bool
	}{
		{ChalanCreated, ChalanDispatched, true},
		{ChalanCreated, ChalanClosed, true},
		{ChalanDispatched, ChalanCreated, false},
		{ChalanInTransit, ChalanArrived, true},
		{ChalanArrived, ChalanInTransit, false},
		{ChalanClosed, ChalanClosed, false},
		{ChalanClosed, ChalanCreated, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestChalanRecalculateTotals(t *testing.T) {
	ch := LoadChalan{
		Consignments: []ChalanLineItem{
			{Packages: 10, Weight: 500, Freight: 4000},
			{Packages: 5, Weight: 250, Freight: 2000},
		},
		AdvancePaid:  1500,
		TDSDeduction: 120,
	}
	ch.RecalculateTotals()

	if ch.TotalLRCount != 2 {
		t.Errorf("lr count = %d, want 2", ch.TotalLRCount)
	}
	if ch.TotalPackages != 15 {
		t.Errorf("packages = %d, want 15", ch.TotalPackages)
	}
	if ch.TotalWeight != 750 {
		t.Errorf("weight = %v, want 750", ch.TotalWeight)
	}
	if ch.TotalFreight != 6000 {
		t.Errorf("freight = %v, want 6000", ch.TotalFreight)
	}
	if ch.BalanceFreight != 4380 {
		t.Errorf("balance = %v, want 4380", ch.BalanceFreight)
	}
}
