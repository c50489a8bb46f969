package tui

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	if got := formatDate(nil); got != "-" {
		t.Errorf("nil = %q", got)
	}
	zero := time.Time{}
	if got := formatDate(&zero); got != "-" {
		t.Errorf("zero = %q", got)
	}
	d := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)
	if got := formatDate(&d); got != "31 Dec 2025" {
		t.Errorf("date = %q", got)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{9.5, "usd", "9.50 USD"},
		{0, "", "0.00 USD"},
		{1200, "EUR", "1200.00 EUR"},
	}
	for _, tc := range tests {
		if got := formatMoney(tc.amount, tc.currency); got != tc.want {
			t.Errorf("formatMoney(%v, %q) = %q, want %q", tc.amount, tc.currency, got, tc.want)
		}
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("hello", 10); got != "hello" {
		t.Errorf("short = %q", got)
	}
	if got := truncStr("hello world", 5); got != "hell…" {
		t.Errorf("long = %q", got)
	}
	if got := truncStr("abc", 0); got != "" {
		t.Errorf("zero = %q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("pad = %q", got)
	}
	if got := padRight("abcdef", 4); got != "abc…" {
		t.Errorf("trunc = %q", got)
	}
}

func TestTruncateToHeight(t *testing.T) {
	s := "a\nb\nc\nd\n"
	if got := truncateToHeight(s, 2); got != "a\nb\n" {
		t.Errorf("got %q", got)
	}
	if got := truncateToHeight(s, 0); got != s {
		t.Errorf("maxLines 0 should return input")
	}
}

func TestMoveCursor(t *testing.T) {
	tests := []struct{ cursor, delta, n, want int }{
		{0, 1, 3, 1},
		{2, 1, 3, 2},
		{0, -1, 3, 0},
		{0, 1, 0, 0},
	}
	for _, tc := range tests {
		if got := moveCursor(tc.cursor, tc.delta, tc.n); got != tc.want {
			t.Errorf("moveCursor(%d,%d,%d) = %d, want %d", tc.cursor, tc.delta, tc.n, got, tc.want)
		}
	}
}
