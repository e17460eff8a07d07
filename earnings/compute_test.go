package earnings

import (
	"reflect"
	"testing"
	"time"

	"hawurwanda/models"
)

var testDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestComputeDailyMixedSources(t *testing.T) {
	bookings := []models.Booking{
		{BookingID: "BK1", BarberID: "staff1", ServiceID: "svc-cut", PaymentMethod: models.MethodCash, Status: models.BookingCompleted},
	}
	services := map[string]models.Service{
		"svc-cut": {ServiceID: "svc-cut", Title: "Haircut", Price: 5000},
	}
	walkIns := []models.WalkInCustomer{
		{WalkInID: "WI1", BarberID: "staff1", ServiceID: "svc-beard", ServiceName: "Beard Trim", Amount: 3000, PaymentMethod: models.MethodAirtel},
	}

	got := ComputeDaily("staff1", "salon1", testDay, bookings, services, walkIns)

	if got.BookingEarnings != 3500 {
		t.Errorf("bookingEarnings = %v, want 3500", got.BookingEarnings)
	}
	if got.WalkInEarnings != 2100 {
		t.Errorf("walkInEarnings = %v, want 2100", got.WalkInEarnings)
	}
	if got.TotalEarnings != 5600 {
		t.Errorf("totalEarnings = %v, want 5600", got.TotalEarnings)
	}
	if got.CommissionAmount != got.TotalEarnings {
		t.Errorf("commissionAmount = %v, want %v", got.CommissionAmount, got.TotalEarnings)
	}
	if got.PaymentMethodBreakdown.Cash != 5000 || got.PaymentMethodBreakdown.Airtel != 3000 {
		t.Errorf("breakdown = %+v, want cash 5000 airtel 3000", got.PaymentMethodBreakdown)
	}
	if got.TotalBookings != 1 || got.TotalWalkIns != 1 {
		t.Errorf("counts = %d bookings %d walk-ins, want 1 and 1", got.TotalBookings, got.TotalWalkIns)
	}
	if len(got.Services) != 2 {
		t.Fatalf("service lines = %d, want 2", len(got.Services))
	}
	if got.Services[0].ServiceName != "Haircut" || got.Services[0].Commission != 3500 {
		t.Errorf("first line = %+v, want Haircut with commission 3500", got.Services[0])
	}
	if got.Services[1].ServiceName != "Beard Trim" || got.Services[1].Commission != 2100 {
		t.Errorf("second line = %+v, want Beard Trim with commission 2100", got.Services[1])
	}
}

func TestComputeDailyGroupsRepeatedServices(t *testing.T) {
	bookings := []models.Booking{
		{BookingID: "BK1", ServiceID: "svc-cut", PaymentMethod: models.MethodCash},
		{BookingID: "BK2", ServiceID: "svc-cut", PaymentMethod: models.MethodAirtel},
		{BookingID: "BK3", ServiceID: "svc-color", PaymentMethod: models.MethodCash},
	}
	services := map[string]models.Service{
		"svc-cut":   {ServiceID: "svc-cut", Title: "Haircut", Price: 5000},
		"svc-color": {ServiceID: "svc-color", Title: "Coloring", Price: 12000},
	}

	got := ComputeDaily("staff1", "salon1", testDay, bookings, services, nil)

	if len(got.Services) != 2 {
		t.Fatalf("service lines = %d, want 2", len(got.Services))
	}
	cut := got.Services[0]
	if cut.Count != 2 || cut.TotalAmount != 10000 || cut.Commission != 7000 {
		t.Errorf("haircut line = %+v, want count 2 amount 10000 commission 7000", cut)
	}
	if got.TotalEarnings != (10000+12000)*CommissionRate {
		t.Errorf("totalEarnings = %v, want %v", got.TotalEarnings, (10000+12000)*CommissionRate)
	}
	if got.PaymentMethodBreakdown.Cash != 17000 || got.PaymentMethodBreakdown.Airtel != 5000 {
		t.Errorf("breakdown = %+v, want cash 17000 airtel 5000", got.PaymentMethodBreakdown)
	}
}

func TestComputeDailyEmptyDay(t *testing.T) {
	got := ComputeDaily("staff1", "salon1", testDay, nil, nil, nil)

	if got.TotalEarnings != 0 || got.BookingEarnings != 0 || got.WalkInEarnings != 0 {
		t.Errorf("empty day should earn nothing, got %+v", got)
	}
	if got.Services == nil || len(got.Services) != 0 {
		t.Errorf("services should be an empty slice, got %#v", got.Services)
	}
	if got.CommissionRate != CommissionRate {
		t.Errorf("commissionRate = %v, want %v", got.CommissionRate, CommissionRate)
	}
}

func TestComputeDailyUnknownService(t *testing.T) {
	bookings := []models.Booking{
		{BookingID: "BK1", ServiceID: "svc-gone", PaymentMethod: models.MethodCash},
	}

	got := ComputeDaily("staff1", "salon1", testDay, bookings, map[string]models.Service{}, nil)

	// A booking whose service was deleted contributes a zero-price line
	// rather than failing the whole day.
	if got.TotalEarnings != 0 {
		t.Errorf("totalEarnings = %v, want 0", got.TotalEarnings)
	}
	if len(got.Services) != 1 || got.Services[0].ServiceName != "Unknown Service" {
		t.Errorf("services = %+v, want one Unknown Service line", got.Services)
	}
}

func TestComputeDailyDeterministic(t *testing.T) {
	bookings := []models.Booking{
		{BookingID: "BK1", ServiceID: "svc-cut", PaymentMethod: models.MethodCash},
		{BookingID: "BK2", ServiceID: "svc-color", PaymentMethod: models.MethodAirtel},
	}
	services := map[string]models.Service{
		"svc-cut":   {ServiceID: "svc-cut", Title: "Haircut", Price: 5000},
		"svc-color": {ServiceID: "svc-color", Title: "Coloring", Price: 12000},
	}
	walkIns := []models.WalkInCustomer{
		{WalkInID: "WI1", ServiceID: "svc-cut", ServiceName: "Haircut", Amount: 5000, PaymentMethod: models.MethodCash},
	}

	first := ComputeDaily("staff1", "salon1", testDay, bookings, services, walkIns)
	second := ComputeDaily("staff1", "salon1", testDay, bookings, services, walkIns)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated runs over the same inputs diverged:\n%+v\n%+v", first, second)
	}
}
