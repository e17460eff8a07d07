// Package earnings computes and serves per-staff daily commission summaries.
// The computation lives in one pure function shared by every trigger
// (booking completion, walk-in completion, manual payment recording, the
// nightly sweep) so the three call sites can never drift apart.
package earnings

import (
	"time"

	"hawurwanda/models"
)

// CommissionRate is the share of each service price a staff member keeps.
const CommissionRate = 0.7

// ComputeDaily aggregates completed bookings and walk-ins for one staff
// member's day into a StaffEarnings document. Booking prices come from the
// services map (keyed by serviceId); walk-ins carry their own amount.
// Callers pre-fetch the inputs, so this is deterministic and unit-testable.
// Services appear in first-seen order, bookings before walk-ins, which keeps
// repeated runs over the same data byte-identical.
func ComputeDaily(staffID, salonID string, day time.Time, bookings []models.Booking, services map[string]models.Service, walkIns []models.WalkInCustomer) models.StaffEarnings {
	summary := models.StaffEarnings{
		StaffID:        staffID,
		SalonID:        salonID,
		Date:           day,
		CommissionRate: CommissionRate,
		TotalBookings:  len(bookings),
		TotalWalkIns:   len(walkIns),
		Services:       []models.ServiceLine{},
	}

	lineIndex := map[string]int{}

	addLine := func(serviceID, serviceName string, price, commission float64) {
		if i, ok := lineIndex[serviceID]; ok {
			summary.Services[i].Count++
			summary.Services[i].TotalAmount += price
			summary.Services[i].Commission += commission
			return
		}
		lineIndex[serviceID] = len(summary.Services)
		summary.Services = append(summary.Services, models.ServiceLine{
			ServiceID:   serviceID,
			ServiceName: serviceName,
			Count:       1,
			TotalAmount: price,
			Commission:  commission,
		})
	}

	addMethod := func(method string, price float64) {
		if method == models.MethodCash {
			summary.PaymentMethodBreakdown.Cash += price
		} else {
			summary.PaymentMethodBreakdown.Airtel += price
		}
	}

	for _, b := range bookings {
		svc := services[b.ServiceID]
		price := svc.Price
		name := svc.Title
		if name == "" {
			name = "Unknown Service"
		}
		commission := price * CommissionRate

		summary.BookingEarnings += commission
		summary.TotalEarnings += commission
		addMethod(b.PaymentMethod, price)
		addLine(b.ServiceID, name, price, commission)
	}

	for _, wi := range walkIns {
		price := wi.Amount
		name := wi.ServiceName
		if name == "" {
			name = "Walk-in Service"
		}
		commission := price * CommissionRate

		summary.WalkInEarnings += commission
		summary.TotalEarnings += commission
		addMethod(wi.PaymentMethod, price)
		addLine(wi.ServiceID, name, price, commission)
	}

	summary.CommissionAmount = summary.TotalEarnings
	return summary
}
