package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
}

func TestMoneyString(t *testing.T) {
	cases := map[int64]string{
		0:        "0,00\u00a0€",
		105000:   "1\u00a0050,00\u00a0€",
		15050:    "150,50\u00a0€",
		-123456:  "-1\u00a0234,56\u00a0€",
		10000000: "100\u00a0000,00\u00a0€",
	}
	for cents, want := range cases {
		if got := (Money{Cents: cents}).String(); got != want {
			t.Fatalf("%d: got %q, want %q", cents, got, want)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	out, err := (Money{Cents: 105050}).MarshalJSON()
	if err != nil || string(out) != "1050.5" {
		t.Fatalf("got %s (err=%v)", out, err)
	}
	var m Money
	if err := m.UnmarshalJSON([]byte("150")); err != nil || m.Cents != 15000 {
		t.Fatalf("got %d (err=%v)", m.Cents, err)
	}
}
