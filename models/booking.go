package models

import "time"

// Booking statuses
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Payment statuses
const (
	PaymentNone    = "none"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"
)

// Payment methods
const (
	MethodCash   = "cash"
	MethodAirtel = "airtel"
)

// Payment options on booking creation
const (
	PayOptionFull    = "full"
	PayOptionDeposit = "deposit"
	PayOptionCash    = "cash"
)

type Booking struct {
	BookingID        string    `bson:"bookingId" json:"bookingId"`
	ClientID         string    `bson:"clientId" json:"clientId"`
	BarberID         string    `bson:"barberId" json:"barberId"`
	SalonID          string    `bson:"salonId" json:"salonId"`
	ServiceID        string    `bson:"serviceId" json:"serviceId"`
	Date             time.Time `bson:"date" json:"date"`
	TimeSlot         time.Time `bson:"timeSlot" json:"timeSlot"`
	AmountTotal      float64   `bson:"amountTotal" json:"amountTotal"`
	DepositPaid      float64   `bson:"depositPaid" json:"depositPaid"`
	BalanceRemaining float64   `bson:"balanceRemaining" json:"balanceRemaining"`
	PaymentStatus    string    `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod    string    `bson:"paymentMethod" json:"paymentMethod"`
	Status           string    `bson:"status" json:"status"`
	Notes            string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ActiveStatuses are the booking states that hold a time slot.
var ActiveStatuses = []string{BookingPending, BookingConfirmed}

func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

type WalkInCustomer struct {
	WalkInID      string     `bson:"walkInId" json:"walkInId"`
	ClientName    string     `bson:"clientName" json:"clientName"`
	ClientPhone   string     `bson:"clientPhone" json:"clientPhone"`
	ClientEmail   string     `bson:"clientEmail,omitempty" json:"clientEmail,omitempty"`
	BarberID      string     `bson:"barberId" json:"barberId"`
	SalonID       string     `bson:"salonId" json:"salonId"`
	ServiceID     string     `bson:"serviceId" json:"serviceId"`
	ServiceName   string     `bson:"serviceName" json:"serviceName"`
	Amount        float64    `bson:"amount" json:"amount"`
	PaymentMethod string     `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus string     `bson:"paymentStatus" json:"paymentStatus"`
	Status        string     `bson:"status" json:"status"`
	Notes         string     `bson:"notes,omitempty" json:"notes,omitempty"`
	CompletedAt   *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
}

type Transaction struct {
	TransactionID         string    `bson:"transactionId" json:"transactionId"`
	BookingID             string    `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	BarberID              string    `bson:"barberId,omitempty" json:"barberId,omitempty"`
	SalonID               string    `bson:"salonId,omitempty" json:"salonId,omitempty"`
	Amount                float64   `bson:"amount" json:"amount"`
	Method                string    `bson:"method" json:"method"`
	AirtelTransactionCode string    `bson:"airtelTransactionCode,omitempty" json:"airtelTransactionCode,omitempty"`
	Status                string    `bson:"status" json:"status"`
	Timestamp             time.Time `bson:"timestamp" json:"timestamp"`
	Notes                 string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt             time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Transaction statuses
const (
	TxnPending   = "pending"
	TxnCompleted = "completed"
	TxnFailed    = "failed"
	TxnCancelled = "cancelled"
)

func ValidTxnStatus(s string) bool {
	switch s {
	case TxnPending, TxnCompleted, TxnFailed, TxnCancelled:
		return true
	}
	return false
}
