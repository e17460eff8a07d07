package models

import "time"

type ServiceLine struct {
	ServiceID   string  `bson:"serviceId" json:"serviceId"`
	ServiceName string  `bson:"serviceName" json:"serviceName"`
	Count       int     `bson:"count" json:"count"`
	TotalAmount float64 `bson:"totalAmount" json:"totalAmount"`
	Commission  float64 `bson:"commission" json:"commission"`
}

type PaymentBreakdown struct {
	Cash   float64 `bson:"cash" json:"cash"`
	Airtel float64 `bson:"airtel" json:"airtel"`
}

// StaffEarnings is one staff member's aggregated earnings for a single day,
// keyed by (staffId, date). It is fully derived from completed bookings and
// walk-ins and is regenerated by upsert, never appended.
type StaffEarnings struct {
	StaffID                string           `bson:"staffId" json:"staffId"`
	SalonID                string           `bson:"salonId,omitempty" json:"salonId,omitempty"`
	Date                   time.Time        `bson:"date" json:"date"`
	TotalEarnings          float64          `bson:"totalEarnings" json:"totalEarnings"`
	CommissionRate         float64          `bson:"commissionRate" json:"commissionRate"`
	CommissionAmount       float64          `bson:"commissionAmount" json:"commissionAmount"`
	BookingEarnings        float64          `bson:"bookingEarnings" json:"bookingEarnings"`
	WalkInEarnings         float64          `bson:"walkInEarnings" json:"walkInEarnings"`
	TotalBookings          int              `bson:"totalBookings" json:"totalBookings"`
	TotalWalkIns           int              `bson:"totalWalkIns" json:"totalWalkIns"`
	PaymentMethodBreakdown PaymentBreakdown `bson:"paymentMethodBreakdown" json:"paymentMethodBreakdown"`
	Services               []ServiceLine    `bson:"services" json:"services"`
	CreatedAt              time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time        `bson:"updatedAt" json:"updatedAt"`
}
