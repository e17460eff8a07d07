// Package transactions records payments against bookings: manual cash or
// airtel entries at the desk, and the airtel money confirmation callback.
package transactions

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hawurwanda/db"
	"hawurwanda/models"
	"hawurwanda/notifications"
	"hawurwanda/policy"
	"hawurwanda/utils"
)

// settle computes a booking's payment position after crediting an amount.
// Overpayments clamp to the total; balanceRemaining is always derived from
// amountTotal so amountTotal = depositPaid + balanceRemaining holds after
// every payment, wherever it came from.
func settle(total, deposit, amount float64) (newDeposit, newBalance float64, paymentStatus string) {
	newDeposit = deposit + amount
	if newDeposit > total {
		newDeposit = total
	}
	newBalance = total - newDeposit
	paymentStatus = models.PaymentPartial
	if newBalance <= 0 {
		paymentStatus = models.PaymentPaid
	}
	return newDeposit, newBalance, paymentStatus
}

// applyPayment credits a completed payment to its booking document.
func applyPayment(r *http.Request, booking *models.Booking, amount float64) (*models.Booking, error) {
	newDeposit, newBalance, paymentStatus := settle(booking.AmountTotal, booking.DepositPaid, amount)

	res := db.BookingCollection.FindOneAndUpdate(r.Context(),
		bson.M{"bookingId": booking.BookingID},
		bson.M{"$set": bson.M{
			"depositPaid":      newDeposit,
			"balanceRemaining": newBalance,
			"paymentStatus":    paymentStatus,
			"updatedAt":        time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Booking
	if err := res.Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

type recordInput struct {
	BookingID string  `json:"bookingId"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Notes     string  `json:"notes"`
}

// RecordPayment logs a payment taken at the salon against a booking. Staff,
// owners and admins only. Cash completes immediately; airtel entries recorded
// here are desk confirmations, so they complete too.
func RecordPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)

	var input recordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.BookingID == "" || input.Amount <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "bookingId and a positive amount are required")
		return
	}
	if input.Method != models.MethodCash && input.Method != models.MethodAirtel {
		utils.RespondWithError(w, http.StatusBadRequest, "method must be cash or airtel")
		return
	}

	var booking models.Booking
	if err := db.BookingCollection.FindOne(r.Context(), bson.M{"bookingId": input.BookingID}).Decode(&booking); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if !policy.CanManageBooking(actor, booking) {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to record payments for this booking")
		return
	}
	if booking.BalanceRemaining <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Booking is already fully paid")
		return
	}

	now := time.Now()
	txn := models.Transaction{
		TransactionID: utils.NewTransactionID(),
		BookingID:     booking.BookingID,
		BarberID:      booking.BarberID,
		SalonID:       booking.SalonID,
		Amount:        input.Amount,
		Method:        input.Method,
		Status:        models.TxnCompleted,
		Timestamp:     now,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := db.TransactionCollection.InsertOne(r.Context(), txn); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record transaction")
		return
	}

	updated, err := applyPayment(r, &booking, input.Amount)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Payment recorded but booking update failed")
		return
	}

	payload := models.NotificationPayload{
		BookingID:     booking.BookingID,
		TransactionID: txn.TransactionID,
		Amount:        input.Amount,
		Title:         "Payment received",
		Message:       fmt.Sprintf("%.0f RWF received for booking %s", input.Amount, booking.BookingID),
	}
	if err := notifications.Notify(r.Context(), booking.ClientID, models.NotifPaymentReceived, payload); err != nil {
		log.Printf("payment notification failed for %s: %v", txn.TransactionID, err)
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"transaction": txn,
		"booking":     updated,
	})
}

type airtelInput struct {
	TransactionID         string `json:"transactionId"`
	AirtelTransactionCode string `json:"airtelTransactionCode"`
	Status                string `json:"status"`
}

// ConfirmAirtel is the airtel money callback. It settles a pending
// transaction; a completed settlement credits the booking, updating both
// depositPaid and balanceRemaining.
func ConfirmAirtel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input airtelInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.TransactionID == "" || !models.ValidTxnStatus(input.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "transactionId and a valid status are required")
		return
	}

	var txn models.Transaction
	if err := db.TransactionCollection.FindOne(r.Context(), bson.M{"transactionId": input.TransactionID}).Decode(&txn); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if txn.Status != models.TxnPending {
		utils.RespondWithError(w, http.StatusBadRequest, "Transaction is already settled")
		return
	}

	res := db.TransactionCollection.FindOneAndUpdate(r.Context(),
		bson.M{"transactionId": txn.TransactionID, "status": models.TxnPending},
		bson.M{"$set": bson.M{
			"status":                input.Status,
			"airtelTransactionCode": input.AirtelTransactionCode,
			"updatedAt":             time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var settled models.Transaction
	if err := res.Decode(&settled); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to settle transaction")
		return
	}

	if settled.Status == models.TxnCompleted && settled.BookingID != "" {
		var booking models.Booking
		if err := db.BookingCollection.FindOne(r.Context(), bson.M{"bookingId": settled.BookingID}).Decode(&booking); err == nil {
			// The pending deposit was already reflected on the booking at
			// creation time, so only credit amounts beyond it.
			if booking.PaymentStatus == models.PaymentNone {
				if _, err := applyPayment(r, &booking, settled.Amount); err != nil {
					log.Printf("airtel settlement: booking credit failed for %s: %v", settled.BookingID, err)
				}
			}
			payload := models.NotificationPayload{
				BookingID:     booking.BookingID,
				TransactionID: settled.TransactionID,
				Amount:        settled.Amount,
				Title:         "Payment confirmed",
				Message:       fmt.Sprintf("Airtel payment of %.0f RWF confirmed", settled.Amount),
			}
			if err := notifications.Notify(r.Context(), booking.ClientID, models.NotifPaymentReceived, payload); err != nil {
				log.Printf("airtel notification failed for %s: %v", settled.TransactionID, err)
			}
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, settled)
}

// ListTransactions returns transactions visible to the actor: staff their
// own, owners their salon's, admins everything.
func ListTransactions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to list transactions")
		return
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	cur, err := db.TransactionCollection.Find(r.Context(), filter,
		options.Find().SetSort(bson.M{"timestamp": -1}).SetSkip(skip).SetLimit(limit))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	txns := []models.Transaction{}
	if err := cur.All(r.Context(), &txns); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode transactions")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, txns)
}

// GetTransaction returns one transaction.
func GetTransaction(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)

	var txn models.Transaction
	if err := db.TransactionCollection.FindOne(r.Context(), bson.M{"transactionId": ps.ByName("transactionId")}).Decode(&txn); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if !policy.CanViewTransaction(actor, txn) {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to view this transaction")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, txn)
}

// BookingPaymentSummary returns a booking's payment position with its
// transaction history.
func BookingPaymentSummary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)

	var booking models.Booking
	if err := db.BookingCollection.FindOne(r.Context(), bson.M{"bookingId": ps.ByName("bookingId")}).Decode(&booking); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if !policy.CanAccessBooking(actor, booking) {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to view this booking")
		return
	}

	cur, err := db.TransactionCollection.Find(r.Context(),
		bson.M{"bookingId": booking.BookingID},
		options.Find().SetSort(bson.M{"timestamp": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	txns := []models.Transaction{}
	if err := cur.All(r.Context(), &txns); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode transactions")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"bookingId":        booking.BookingID,
		"amountTotal":      booking.AmountTotal,
		"depositPaid":      booking.DepositPaid,
		"balanceRemaining": booking.BalanceRemaining,
		"paymentStatus":    booking.PaymentStatus,
		"transactions":     txns,
	})
}
