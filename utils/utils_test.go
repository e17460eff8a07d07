package utils

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewIDsCarryPrefix(t *testing.T) {
	if id := NewBookingID(); !strings.HasPrefix(id, "BK") || len(id) < 15 {
		t.Errorf("booking id %q malformed", id)
	}
	if id := NewTransactionID(); !strings.HasPrefix(id, "TXN") || len(id) < 16 {
		t.Errorf("transaction id %q malformed", id)
	}
	if id := NewWalkInID(); !strings.HasPrefix(id, "WI") || len(id) < 15 {
		t.Errorf("walk-in id %q malformed", id)
	}
}

func TestValidRwandanPhone(t *testing.T) {
	valid := []string{"+250788123456", "250788123456", "0788123456", "788123456"}
	for _, p := range valid {
		if !ValidRwandanPhone(p) {
			t.Errorf("ValidRwandanPhone(%q) = false, want true", p)
		}
	}
	invalid := []string{"", "12345", "+2507881234569999", "notaphone", "+1555123456"}
	for _, p := range invalid {
		if ValidRwandanPhone(p) {
			t.Errorf("ValidRwandanPhone(%q) = true, want false", p)
		}
	}
}

func TestValidEmail(t *testing.T) {
	if !ValidEmail("claire@example.rw") {
		t.Error("valid email rejected")
	}
	if ValidEmail("not-an-email") {
		t.Error("invalid email accepted")
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		url       string
		wantSkip  int64
		wantLimit int64
	}{
		{"/x", 0, 20},
		{"/x?page=1&limit=10", 0, 10},
		{"/x?page=3&limit=10", 20, 10},
		{"/x?limit=500", 0, 100},
		{"/x?page=-1&limit=-5", 0, 20},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.url, nil)
		skip, limit := ParsePagination(r, 20, 100)
		if skip != tt.wantSkip || limit != tt.wantLimit {
			t.Errorf("ParsePagination(%q) = (%d, %d), want (%d, %d)",
				tt.url, skip, limit, tt.wantSkip, tt.wantLimit)
		}
	}
}

func TestDayBounds(t *testing.T) {
	d := time.Date(2026, 3, 2, 14, 30, 45, 123456789, time.UTC)
	start, end := DayBounds(d)

	if start != time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) {
		t.Errorf("start = %v", start)
	}
	if end != time.Date(2026, 3, 2, 23, 59, 59, int(999*time.Millisecond), time.UTC) {
		t.Errorf("end = %v", end)
	}
	if !start.Before(d) || !d.Before(end) {
		t.Error("bounds do not bracket the input time")
	}
}

func TestWeekdayKey(t *testing.T) {
	monday := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	if got := WeekdayKey(monday); got != "monday" {
		t.Errorf("WeekdayKey = %q, want monday", got)
	}
	sunday := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if got := WeekdayKey(sunday); got != "sunday" {
		t.Errorf("WeekdayKey = %q, want sunday", got)
	}
}
