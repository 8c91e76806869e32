package domain

import "testing"

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoney(1000)
	b := NewMoney(250)

	if got := a.Add(b).ToInt(); got != 1250 {
		t.Errorf("expected 1250, got %d", got)
	}
	if got := a.Subtract(b).ToInt(); got != 750 {
		t.Errorf("expected 750, got %d", got)
	}
	if got := b.Subtract(a).ToInt(); got != -750 {
		t.Errorf("expected -750, got %d", got)
	}
}

func TestMoneyPercentage(t *testing.T) {
	if got := NewMoney(8800).Percentage(30).ToInt(); got != 2640 {
		t.Errorf("expected 2640, got %d", got)
	}
	// 30% of 8.85 is 2.655, rounds to 2.66.
	if got := NewMoney(885).Percentage(30).ToInt(); got != 266 {
		t.Errorf("expected 266, got %d", got)
	}
	if got := NewMoney(0).Percentage(50).ToInt(); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		value int
		want  string
	}{
		{1000, "10.00"},
		{1099, "10.99"},
		{0, "0.00"},
		{-1250, "-12.50"},
		{5, "0.05"},
	}

	for _, tc := range cases {
		if got := NewMoney(tc.value).String(); got != tc.want {
			t.Errorf("NewMoney(%d).String() = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestMoneyEquals(t *testing.T) {
	if !NewMoney(100).Equals(NewMoney(100)) {
		t.Error("expected equal amounts to be equal")
	}
	if NewMoney(100).Equals(NewMoney(101)) {
		t.Error("expected different amounts to differ")
	}
	if !MoneyZero.Equals(NewMoney(0)) {
		t.Error("expected zero money to equal NewMoney(0)")
	}
}
