package bookings

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hawurwanda/db"
	"hawurwanda/earnings"
	"hawurwanda/models"
	"hawurwanda/notifications"
	"hawurwanda/policy"
	"hawurwanda/utils"
)

const defaultDepositShare = 0.5

type createInput struct {
	BarberID      string  `json:"barberId"`
	SalonID       string  `json:"salonId"`
	ServiceID     string  `json:"serviceId"`
	TimeSlot      string  `json:"timeSlot"`
	PaymentOption string  `json:"paymentOption"`
	Amount        float64 `json:"amount"`
	Notes         string  `json:"notes"`
}

// CreateBooking reserves a time slot for the authenticated client. The
// pre-check on active bookings gives a clean error message; the unique
// (barberId, timeSlot) index catches the race two concurrent requests can
// still win, so a booking is either fully created or not created at all.
func CreateBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)

	var input createInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.BarberID == "" || input.SalonID == "" || input.ServiceID == "" || input.TimeSlot == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "barberId, salonId, serviceId and timeSlot are required")
		return
	}

	slot, err := time.Parse(time.RFC3339, input.TimeSlot)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "timeSlot must be an RFC3339 timestamp")
		return
	}
	if slot.Before(time.Now()) {
		utils.RespondWithError(w, http.StatusBadRequest, "Cannot book a time slot in the past")
		return
	}

	var service models.Service
	err = db.ServiceCollection.FindOne(r.Context(), bson.M{"serviceid": input.ServiceID, "isActive": true}).Decode(&service)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Service not found")
		return
	}
	if service.SalonID != input.SalonID {
		utils.RespondWithError(w, http.StatusBadRequest, "Service does not belong to this salon")
		return
	}

	count, err := db.BookingCollection.CountDocuments(r.Context(), bson.M{
		"barberId": input.BarberID,
		"timeSlot": slot,
		"status":   bson.M{"$in": models.ActiveStatuses},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check availability")
		return
	}
	if count > 0 {
		utils.RespondWithConflict(w, http.StatusBadRequest, "TIME_SLOT_CONFLICT", "This time slot is already booked")
		return
	}

	total := service.Price
	var deposit float64
	paymentStatus := models.PaymentNone
	paymentMethod := models.MethodCash

	switch input.PaymentOption {
	case models.PayOptionFull:
		deposit = total
		paymentStatus = models.PaymentPaid
		paymentMethod = models.MethodAirtel
	case models.PayOptionDeposit:
		deposit = total * defaultDepositShare
		if input.Amount > 0 && input.Amount < total {
			deposit = input.Amount
		}
		paymentStatus = models.PaymentPartial
		paymentMethod = models.MethodAirtel
	case models.PayOptionCash, "":
		// pay at the salon
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "paymentOption must be full, deposit or cash")
		return
	}

	now := time.Now()
	booking := models.Booking{
		BookingID:        utils.NewBookingID(),
		ClientID:         actor.UserID,
		BarberID:         input.BarberID,
		SalonID:          input.SalonID,
		ServiceID:        input.ServiceID,
		Date:             slot.Truncate(24 * time.Hour),
		TimeSlot:         slot,
		AmountTotal:      total,
		DepositPaid:      deposit,
		BalanceRemaining: total - deposit,
		PaymentStatus:    paymentStatus,
		PaymentMethod:    paymentMethod,
		Status:           models.BookingPending,
		Notes:            input.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := db.BookingCollection.InsertOne(r.Context(), booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithConflict(w, http.StatusBadRequest, "TIME_SLOT_CONFLICT", "This time slot is already booked")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	if deposit > 0 {
		txn := models.Transaction{
			TransactionID: utils.NewTransactionID(),
			BookingID:     booking.BookingID,
			BarberID:      booking.BarberID,
			SalonID:       booking.SalonID,
			Amount:        deposit,
			Method:        models.MethodAirtel,
			Status:        models.TxnPending,
			Timestamp:     now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if _, err := db.TransactionCollection.InsertOne(r.Context(), txn); err != nil {
			log.Printf("failed to record pending deposit for %s: %v", booking.BookingID, err)
		}
	}

	payload := models.NotificationPayload{
		BookingID: booking.BookingID,
		SalonID:   booking.SalonID,
		Amount:    total,
		Title:     "New booking",
		Message:   fmt.Sprintf("%s booked for %s", service.Title, slot.Format("Mon 02 Jan 15:04")),
	}
	if err := notifications.NotifyMany(r.Context(), models.NotifBookingCreated, payload, booking.BarberID, booking.ClientID); err != nil {
		log.Printf("booking notification failed for %s: %v", booking.BookingID, err)
	}

	utils.RespondWithJSON(w, http.StatusCreated, booking)
}

// ListBookings returns the bookings the actor may see: clients their own,
// staff their own schedule, owners their salon's, admins everything.
// Supports ?status= and pagination.
func ListBookings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)

	filter := bson.M{}
	switch {
	case actor.IsAdmin():
		if sid := r.URL.Query().Get("salonId"); sid != "" {
			filter["salonId"] = sid
		}
	case actor.Role == models.RoleOwner || actor.Role == models.RoleManager:
		if actor.SalonID == "" {
			utils.RespondWithConflict(w, http.StatusBadRequest, "NO_SALON_ID", "No salon associated with this account")
			return
		}
		filter["salonId"] = actor.SalonID
	case actor.IsStaff():
		filter["barberId"] = actor.UserID
	default:
		filter["clientId"] = actor.UserID
	}

	if status := r.URL.Query().Get("status"); status != "" {
		if !models.ValidBookingStatus(status) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter["status"] = status
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	cur, err := db.BookingCollection.Find(r.Context(), filter,
		options.Find().SetSort(bson.M{"timeSlot": -1}).SetSkip(skip).SetLimit(limit))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	bookings := []models.Booking{}
	if err := cur.All(r.Context(), &bookings); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode bookings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bookings)
}

func loadBooking(r *http.Request, ps httprouter.Params) (*models.Booking, error) {
	var b models.Booking
	err := db.BookingCollection.FindOne(r.Context(), bson.M{"bookingId": ps.ByName("bookingId")}).Decode(&b)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBooking returns one booking if the actor is a party to it.
func GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)
	booking, err := loadBooking(r, ps)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if !policy.CanAccessBooking(actor, *booking) {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to view this booking")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, booking)
}

type statusInput struct {
	Status string `json:"status"`
}

// UpdateBookingStatus moves a booking between states. Only staff, owners and
// admins may call it; a transition into completed triggers a best-effort
// earnings recompute for the barber's day. The failure of that side effect
// never fails the status change.
func UpdateBookingStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)
	booking, err := loadBooking(r, ps)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if !policy.CanManageBooking(actor, *booking) {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to modify this booking")
		return
	}

	var input statusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || !models.ValidBookingStatus(input.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	wasCompleted := booking.Status == models.BookingCompleted
	res := db.BookingCollection.FindOneAndUpdate(r.Context(),
		bson.M{"bookingId": booking.BookingID},
		bson.M{"$set": bson.M{"status": input.Status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Booking
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	if input.Status == models.BookingCompleted && !wasCompleted {
		earnings.RecomputeAsync(updated.BarberID, updated.SalonID, updated.TimeSlot)
	}

	ntype := map[string]string{
		models.BookingConfirmed: models.NotifBookingConfirmed,
		models.BookingCompleted: models.NotifBookingCompleted,
		models.BookingCancelled: models.NotifBookingCancelled,
	}[input.Status]
	if ntype != "" {
		payload := models.NotificationPayload{
			BookingID: updated.BookingID,
			SalonID:   updated.SalonID,
			Title:     "Booking " + input.Status,
			Message:   fmt.Sprintf("Your booking for %s is now %s", updated.TimeSlot.Format("Mon 02 Jan 15:04"), input.Status),
		}
		if err := notifications.Notify(r.Context(), updated.ClientID, ntype, payload); err != nil {
			log.Printf("status notification failed for %s: %v", updated.BookingID, err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// CancelBooking lets the client (or staff/owner/admin) cancel. Cancelling
// releases the slot; the unique index only spans active statuses via the
// conflict checks, so the slot is immediately rebookable.
func CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)
	booking, err := loadBooking(r, ps)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if !policy.CanCancelBooking(actor, *booking) {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to cancel this booking")
		return
	}
	if booking.Status == models.BookingCompleted {
		utils.RespondWithError(w, http.StatusBadRequest, "Completed bookings cannot be cancelled")
		return
	}
	if booking.Status == models.BookingCancelled {
		utils.RespondWithJSON(w, http.StatusOK, booking)
		return
	}

	res := db.BookingCollection.FindOneAndUpdate(r.Context(),
		bson.M{"bookingId": booking.BookingID},
		bson.M{"$set": bson.M{"status": models.BookingCancelled, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Booking
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel booking")
		return
	}

	payload := models.NotificationPayload{
		BookingID: updated.BookingID,
		SalonID:   updated.SalonID,
		Title:     "Booking cancelled",
		Message:   fmt.Sprintf("Booking for %s was cancelled", updated.TimeSlot.Format("Mon 02 Jan 15:04")),
	}
	if err := notifications.NotifyMany(r.Context(), models.NotifBookingCancelled, payload, updated.BarberID, updated.ClientID); err != nil {
		log.Printf("cancel notification failed for %s: %v", updated.BookingID, err)
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// GetBarberSlots returns the free slots for a staff member on one day
// (?date=YYYY-MM-DD, default today).
func GetBarberSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	barberID := ps.ByName("barberId")

	day := time.Now()
	if q := r.URL.Query().Get("date"); q != "" {
		var err error
		day, err = time.Parse("2006-01-02", q)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
	}

	slots, ok, err := ResolveSlots(r.Context(), barberID, day)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve availability")
		return
	}
	if !ok {
		utils.RespondWithConflict(w, http.StatusNotFound, "NO_AVAILABILITY_SET", "This staff member has not set up availability")
		return
	}

	formatted := make([]string, 0, len(slots))
	for _, s := range slots {
		formatted = append(formatted, s.Format(time.RFC3339))
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"barberId": barberID,
		"date":     day.Format("2006-01-02"),
		"slots":    formatted,
	})
}
