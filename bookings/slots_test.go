package bookings

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"hawurwanda/models"
)

// monday is a known Monday used across slot tests.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func hhmm(t time.Time) string { return t.Format("15:04") }

func TestCandidateSlotsMorningWindow(t *testing.T) {
	windows := []models.TimeWindow{
		{Start: "08:00", End: "12:00", Available: true},
	}

	got := CandidateSlots(monday, windows)

	want := []string{"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	if len(got) != len(want) {
		t.Fatalf("slot count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i, w := range want {
		if hhmm(got[i]) != w {
			t.Errorf("slot[%d] = %s, want %s", i, hhmm(got[i]), w)
		}
		if got[i].Day() != monday.Day() {
			t.Errorf("slot[%d] not on the requested day: %v", i, got[i])
		}
	}
}

func TestCandidateSlotsSkipsUnavailableWindows(t *testing.T) {
	windows := []models.TimeWindow{
		{Start: "08:00", End: "09:00", Available: true},
		{Start: "14:00", End: "15:00", Available: false},
	}

	got := CandidateSlots(monday, windows)

	if len(got) != 2 {
		t.Fatalf("slot count = %d, want 2 (%v)", len(got), got)
	}
	if hhmm(got[0]) != "08:00" || hhmm(got[1]) != "08:30" {
		t.Errorf("slots = %v, want 08:00 and 08:30", got)
	}
}

func TestCandidateSlotsInvalidWindow(t *testing.T) {
	windows := []models.TimeWindow{
		{Start: "12:00", End: "08:00", Available: true},
		{Start: "bad", End: "10:00", Available: true},
	}
	if got := CandidateSlots(monday, windows); len(got) != 0 {
		t.Errorf("invalid windows should yield no slots, got %v", got)
	}
}

func TestFilterFreeExcludesBookedSlot(t *testing.T) {
	candidates := CandidateSlots(monday, []models.TimeWindow{
		{Start: "08:00", End: "12:00", Available: true},
	})
	booked := []time.Time{
		time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}

	got := FilterFree(candidates, booked)

	want := []string{"08:00", "08:30", "09:30", "10:00", "10:30", "11:00", "11:30"}
	if len(got) != len(want) {
		t.Fatalf("slot count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i, w := range want {
		if hhmm(got[i]) != w {
			t.Errorf("slot[%d] = %s, want %s", i, hhmm(got[i]), w)
		}
	}
}

func TestFilterFreeNoBookings(t *testing.T) {
	candidates := CandidateSlots(monday, []models.TimeWindow{
		{Start: "09:00", End: "10:00", Available: true},
	})
	got := FilterFree(candidates, nil)
	if len(got) != 2 {
		t.Errorf("slot count = %d, want 2", len(got))
	}
}

func TestScheduleLookupErr(t *testing.T) {
	missing, err := scheduleLookupErr(mongo.ErrNoDocuments)
	if !missing || err != nil {
		t.Errorf("no-documents should mean missing schedule, got (%v, %v)", missing, err)
	}

	dbErr := errors.New("connection reset")
	missing, err = scheduleLookupErr(dbErr)
	if missing {
		t.Error("a database failure must not read as a missing schedule")
	}
	if err != dbErr {
		t.Errorf("err = %v, want the original failure", err)
	}
}

func TestReceiptPayloadRoundTrip(t *testing.T) {
	b := models.Booking{
		BookingID:   "BK1234ABCDE",
		TimeSlot:    time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		AmountTotal: 5000,
	}

	payload := ReceiptPayload(b)
	if !VerifyReceiptPayload(payload) {
		t.Fatal("freshly issued payload failed verification")
	}
	if VerifyReceiptPayload(payload[:len(payload)-2] + "xx") {
		t.Error("tampered signature verified")
	}
	tampered := "BK9999ZZZZZ" + payload[len("BK1234ABCDE"):]
	if VerifyReceiptPayload(tampered) {
		t.Error("tampered booking id verified")
	}
}
