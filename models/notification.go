package models

import "time"

// Notification types
const (
	NotifBookingCreated   = "booking_created"
	NotifBookingConfirmed = "booking_confirmed"
	NotifBookingCancelled = "booking_cancelled"
	NotifBookingCompleted = "booking_completed"
	NotifPaymentReceived  = "payment_received"
	NotifPaymentRequired  = "payment_required"
	NotifSalonVerified    = "salon_verified"
	NotifSalonRejected    = "salon_rejected"
	NotifSalonPending     = "salon_pending"
)

type NotificationPayload struct {
	BookingID     string  `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	TransactionID string  `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	SalonID       string  `bson:"salonId,omitempty" json:"salonId,omitempty"`
	Amount        float64 `bson:"amount,omitempty" json:"amount,omitempty"`
	Title         string  `bson:"title" json:"title"`
	Message       string  `bson:"message" json:"message"`
}

type Notification struct {
	NotificationID string              `bson:"notificationid" json:"notificationid"`
	ToUserID       string              `bson:"toUserId" json:"toUserId"`
	Type           string              `bson:"type" json:"type"`
	Payload        NotificationPayload `bson:"payload" json:"payload"`
	Read           bool                `bson:"read" json:"read"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}
