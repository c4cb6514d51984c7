package utils

import "testing"

func TestNumberToWords(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, ""},
		{7, "Seven"},
		{13, "Thirteen"},
		{42, "Forty Two"},
		{100, "One Hundred"},
		{305, "Three Hundred Five"},
		{1000, "One Thousand"},
		{12345, "Twelve Thousand Three Hundred Forty Five"},
		{100000, "One Lakh"},
		{2550000, "Twenty Five Lakh Fifty Thousand"},
		{10000000, "One Crore"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight"},
	}
	for _, tc := range cases {
		if got := NumberToWords(tc.in); got != tc.want {
			t.Errorf("NumberToWords(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNumberToCurrencyWords(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "Zero Rupees Only"},
		{1, "One Rupees Only"},
		{1500, "One Thousand Five Hundred Rupees Only"},
		{250.75, "Two Hundred Fifty Rupees and Seventy Five Paise Only"},
		{0.50, "Fifty Paise Only"},
	}
	for _, tc := range cases {
		if got := NumberToCurrencyWords(tc.in); got != tc.want {
			t.Errorf("NumberToCurrencyWords(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
