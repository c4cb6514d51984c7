package models

import "testing"

func TestBillStatusForwardOnly(t *testing.T) {
	cases := []struct {
		from    BillStatus
		to      BillStatus
		allowed bool
	}{
		{BillDraft, BillGenerated, true},
		{BillDraft, BillPaid, true},
		{BillGenerated, BillSent, true},
		{BillGenerated, BillDraft, false},
		{BillSent, BillPartiallyPaid, true},
		{BillPartiallyPaid, BillPaid, true},
		{BillPartiallyPaid, BillSent, false},
		{BillGenerated, BillCancelled, true},
		{BillPaid, BillCancelled, false},
		{BillPaid, BillPaid, true},
		{BillCancelled, BillCancelled, true},
		{BillCancelled, BillGenerated, false},
		{BillPaid, BillSent, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestBillRecalculateTotals(t *testing.T) {
	bill := FreightBill{
		Consignments: []BillLineItem{
			{GrandTotal: 1000},
			{GrandTotal: 2500},
		},
		Adjustments: []BillAdjustment{
			{Type: AdjustmentDiscount, Description: "volume discount", Amount: 500},
			{Type: AdjustmentFuelSurcharge, Description: "diesel hike", Amount: 200},
		},
	}
	bill.RecalculateTotals()
	if bill.TotalAmount != 3500 {
		t.Fatalf("total = %v, want 3500", bill.TotalAmount)
	}
	if bill.FinalAmount != 3200 {
		t.Fatalf("final = %v, want 3200", bill.FinalAmount)
	}
}

func TestBillDiscountUsesAbsoluteValue(t *testing.T) {
	bill := FreightBill{
		Consignments: []BillLineItem{{GrandTotal: 1000}},
		Adjustments: []BillAdjustment{
			{Type: AdjustmentDiscount, Description: "negative entry", Amount: -100},
		},
	}
	bill.RecalculateTotals()
	if bill.FinalAmount != 900 {
		t.Fatalf("final = %v, want 900", bill.FinalAmount)
	}
}

func TestBillFinalAmountFloor(t *testing.T) {
	bill := FreightBill{
		Consignments: []BillLineItem{{GrandTotal: 100}},
		Adjustments: []BillAdjustment{
			{Type: AdjustmentDiscount, Description: "too large", Amount: 500},
		},
	}
	bill.RecalculateTotals()
	if bill.FinalAmount != 0 {
		t.Fatalf("final = %v, want 0", bill.FinalAmount)
	}
}

func TestFilterAdjustments(t *testing.T) {
	in := []BillAdjustment{
		{Type: AdjustmentDiscount, Description: "keep", Amount: 10},
		{Type: "", Description: "no type", Amount: 10},
		{Type: AdjustmentOther, Description: "", Amount: 10},
		{Type: AdjustmentOther, Description: "zero", Amount: 0},
	}
	out := FilterAdjustments(in)
	if len(out) != 1 || out[0].Description != "keep" {
		t.Fatalf("filtered = %v, want only the complete entry", out)
	}
}
