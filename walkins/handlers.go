// Package walkins records customers served without an appointment. Walk-ins
// feed the same earnings aggregation as bookings.
package walkins

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hawurwanda/db"
	"hawurwanda/earnings"
	"hawurwanda/models"
	"hawurwanda/policy"
	"hawurwanda/utils"
)

type createInput struct {
	ClientName    string  `json:"clientName"`
	ClientPhone   string  `json:"clientPhone"`
	ClientEmail   string  `json:"clientEmail"`
	BarberID      string  `json:"barberId"`
	ServiceID     string  `json:"serviceId"`
	ServiceName   string  `json:"serviceName"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	Notes         string  `json:"notes"`
}

// CreateWalkIn records a walk-in customer. Staff record their own; owners,
// managers and receptionists may record for any staff member of their salon.
// Cash walk-ins are paid on the spot, airtel ones start unpaid until the
// transaction confirms.
func CreateWalkIn(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)
	if !actor.IsStaff() && actor.Role != models.RoleOwner && !actor.IsAdmin() {
		utils.RespondWithError(w, http.StatusForbidden, "Only salon staff can record walk-ins")
		return
	}
	if actor.SalonID == "" {
		utils.RespondWithConflict(w, http.StatusBadRequest, "NO_SALON_ID", "No salon associated with this account")
		return
	}

	var input createInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.ClientName == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "clientName is required")
		return
	}
	if input.ClientPhone != "" && !utils.ValidRwandanPhone(input.ClientPhone) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid Rwandan phone number")
		return
	}
	if input.PaymentMethod != models.MethodCash && input.PaymentMethod != models.MethodAirtel {
		utils.RespondWithError(w, http.StatusBadRequest, "paymentMethod must be cash or airtel")
		return
	}

	barberID := input.BarberID
	if barberID == "" {
		barberID = actor.UserID
	}
	if barberID != actor.UserID && actor.Role != models.RoleOwner &&
		actor.Role != models.RoleManager && actor.Role != models.RoleReceptionist && !actor.IsAdmin() {
		utils.RespondWithError(w, http.StatusForbidden, "Cannot record walk-ins for another staff member")
		return
	}

	serviceName := input.ServiceName
	amount := input.Amount
	if input.ServiceID != "" {
		var service models.Service
		if err := db.ServiceCollection.FindOne(r.Context(), bson.M{"serviceid": input.ServiceID}).Decode(&service); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Service not found")
			return
		}
		serviceName = service.Title
		if amount == 0 {
			amount = service.Price
		}
	}
	if serviceName == "" || amount <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "A service with a positive amount is required")
		return
	}

	paymentStatus := models.PaymentNone
	if input.PaymentMethod == models.MethodCash {
		paymentStatus = models.PaymentPaid
	}

	now := time.Now()
	walkIn := models.WalkInCustomer{
		WalkInID:      utils.NewWalkInID(),
		ClientName:    input.ClientName,
		ClientPhone:   input.ClientPhone,
		ClientEmail:   input.ClientEmail,
		BarberID:      barberID,
		SalonID:       actor.SalonID,
		ServiceID:     input.ServiceID,
		ServiceName:   serviceName,
		Amount:        amount,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: paymentStatus,
		Status:        models.BookingPending,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := db.WalkInCollection.InsertOne(r.Context(), walkIn); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record walk-in")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, walkIn)
}

// ListWalkIns returns the actor's own walk-ins, newest first.
func ListWalkIns(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)

	skip, limit := utils.ParsePagination(r, 20, 100)
	cur, err := db.WalkInCollection.Find(r.Context(),
		bson.M{"barberId": actor.UserID},
		options.Find().SetSort(bson.M{"createdAt": -1}).SetSkip(skip).SetLimit(limit))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch walk-ins")
		return
	}
	walkIns := []models.WalkInCustomer{}
	if err := cur.All(r.Context(), &walkIns); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode walk-ins")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, walkIns)
}

// ListSalonWalkIns returns every walk-in for the actor's salon. Owners and
// managers only; admins may pass ?salonId=.
func ListSalonWalkIns(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)
	if actor.Role != models.RoleOwner && actor.Role != models.RoleManager && !actor.IsAdmin() {
		utils.RespondWithError(w, http.StatusForbidden, "Only salon owners can view salon walk-ins")
		return
	}
	salonID := actor.SalonID
	if actor.IsAdmin() {
		salonID = r.URL.Query().Get("salonId")
	}
	if salonID == "" {
		utils.RespondWithConflict(w, http.StatusBadRequest, "NO_SALON_ID", "No salon associated with this account")
		return
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	cur, err := db.WalkInCollection.Find(r.Context(),
		bson.M{"salonId": salonID},
		options.Find().SetSort(bson.M{"createdAt": -1}).SetSkip(skip).SetLimit(limit))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch walk-ins")
		return
	}
	walkIns := []models.WalkInCustomer{}
	if err := cur.All(r.Context(), &walkIns); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode walk-ins")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, walkIns)
}

func loadWalkIn(r *http.Request, ps httprouter.Params) (*models.WalkInCustomer, error) {
	var wi models.WalkInCustomer
	err := db.WalkInCollection.FindOne(r.Context(), bson.M{"walkInId": ps.ByName("walkInId")}).Decode(&wi)
	if err != nil {
		return nil, err
	}
	return &wi, nil
}

// GetWalkIn returns one walk-in record.
func GetWalkIn(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)
	walkIn, err := loadWalkIn(r, ps)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Walk-in not found")
		return
	}
	if !policy.CanManageWalkIn(actor, *walkIn) {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to view this walk-in")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, walkIn)
}

type updateInput struct {
	Status        *string  `json:"status"`
	PaymentStatus *string  `json:"paymentStatus"`
	Amount        *float64 `json:"amount"`
	Notes         *string  `json:"notes"`
}

// UpdateWalkIn edits a walk-in. Marking it completed stamps completedAt and
// triggers a best-effort earnings recompute for the staff member's day.
func UpdateWalkIn(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)
	walkIn, err := loadWalkIn(r, ps)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Walk-in not found")
		return
	}
	if !policy.CanManageWalkIn(actor, *walkIn) {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to modify this walk-in")
		return
	}

	var input updateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	now := time.Now()
	set := bson.M{"updatedAt": now}
	completing := false
	if input.Status != nil {
		if !models.ValidBookingStatus(*input.Status) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		set["status"] = *input.Status
		if *input.Status == models.BookingCompleted && walkIn.Status != models.BookingCompleted {
			set["completedAt"] = now
			completing = true
		}
	}
	if input.PaymentStatus != nil {
		switch *input.PaymentStatus {
		case models.PaymentNone, models.PaymentPartial, models.PaymentPaid:
			set["paymentStatus"] = *input.PaymentStatus
		default:
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment status")
			return
		}
	}
	if input.Amount != nil {
		if *input.Amount <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Amount must be positive")
			return
		}
		set["amount"] = *input.Amount
	}
	if input.Notes != nil {
		set["notes"] = *input.Notes
	}

	res := db.WalkInCollection.FindOneAndUpdate(r.Context(),
		bson.M{"walkInId": walkIn.WalkInID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.WalkInCustomer
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update walk-in")
		return
	}

	if completing {
		earnings.RecomputeAsync(updated.BarberID, updated.SalonID, updated.CreatedAt)
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DeleteWalkIn removes a mistaken record and recomputes the day's earnings
// in case the walk-in had already been counted.
func DeleteWalkIn(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)
	walkIn, err := loadWalkIn(r, ps)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Walk-in not found")
		return
	}
	if !policy.CanManageWalkIn(actor, *walkIn) {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to delete this walk-in")
		return
	}

	if _, err := db.WalkInCollection.DeleteOne(r.Context(), bson.M{"walkInId": walkIn.WalkInID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete walk-in")
		return
	}

	if walkIn.Status == models.BookingCompleted {
		earnings.RecomputeAsync(walkIn.BarberID, walkIn.SalonID, walkIn.CreatedAt)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"deleted": walkIn.WalkInID})
}
