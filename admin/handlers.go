// Package admin implements platform oversight: salon verification, user
// management and platform-wide statistics.
package admin

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hawurwanda/db"
	"hawurwanda/emailer"
	"hawurwanda/models"
	"hawurwanda/notifications"
	"hawurwanda/utils"
)

// ListPendingSalons returns salons awaiting verification, oldest first.
func ListPendingSalons(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	skip, limit := utils.ParsePagination(r, 20, 100)
	cur, err := db.SalonCollection.Find(r.Context(),
		bson.M{"verified": false},
		options.Find().SetSort(bson.M{"createdAt": 1}).SetSkip(skip).SetLimit(limit))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch salons")
		return
	}
	salons := []models.Salon{}
	if err := cur.All(r.Context(), &salons); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode salons")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, salons)
}

func loadSalonAndOwner(r *http.Request, ps httprouter.Params) (*models.Salon, *models.User, error) {
	var salon models.Salon
	if err := db.SalonCollection.FindOne(r.Context(), bson.M{"salonid": ps.ByName("salonId")}).Decode(&salon); err != nil {
		return nil, nil, err
	}
	var owner models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": salon.OwnerID}).Decode(&owner); err != nil {
		return &salon, nil, nil
	}
	return &salon, &owner, nil
}

// VerifySalon approves a pending salon, making it visible in the public
// directory, and tells the owner by notification and email.
func VerifySalon(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	salon, owner, err := loadSalonAndOwner(r, ps)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Salon not found")
		return
	}
	if salon.Verified {
		utils.RespondWithError(w, http.StatusBadRequest, "Salon is already verified")
		return
	}

	res := db.SalonCollection.FindOneAndUpdate(r.Context(),
		bson.M{"salonid": salon.SalonID},
		bson.M{"$set": bson.M{"verified": true, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Salon
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify salon")
		return
	}

	if owner != nil {
		payload := models.NotificationPayload{
			SalonID: updated.SalonID,
			Title:   "Salon verified",
			Message: updated.Name + " is now live on the platform",
		}
		if err := notifications.Notify(r.Context(), owner.UserID, models.NotifSalonVerified, payload); err != nil {
			log.Printf("verify notification failed for %s: %v", updated.SalonID, err)
		}
		if owner.Email != "" {
			emailer.SendSalonVerified(owner.Email, updated.Name)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// RejectSalon declines a pending salon with a reason. The record is kept so
// the owner can fix the problem and ask again.
func RejectSalon(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	salon, owner, err := loadSalonAndOwner(r, ps)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Salon not found")
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Reason == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "A rejection reason is required")
		return
	}

	_, err = db.SalonCollection.UpdateOne(r.Context(),
		bson.M{"salonid": salon.SalonID},
		bson.M{"$set": bson.M{"verified": false, "updatedAt": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reject salon")
		return
	}

	if owner != nil {
		payload := models.NotificationPayload{
			SalonID: salon.SalonID,
			Title:   "Salon rejected",
			Message: input.Reason,
		}
		if err := notifications.Notify(r.Context(), owner.UserID, models.NotifSalonRejected, payload); err != nil {
			log.Printf("reject notification failed for %s: %v", salon.SalonID, err)
		}
		if owner.Email != "" {
			emailer.SendSalonRejected(owner.Email, salon.Name, input.Reason)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"salonId": salon.SalonID,
		"reason":  input.Reason,
	})
}

// ListUsers returns platform users, filterable by role and salon.
func ListUsers(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	filter := bson.M{}
	if role := r.URL.Query().Get("role"); role != "" {
		filter["role"] = role
	}
	if sid := r.URL.Query().Get("salonId"); sid != "" {
		filter["salonId"] = sid
	}

	skip, limit := utils.ParsePagination(r, 20, 200)
	cur, err := db.UserCollection.Find(r.Context(), filter,
		options.Find().SetSort(bson.M{"createdAt": -1}).SetSkip(skip).SetLimit(limit))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	var users []models.User
	if err := cur.All(r.Context(), &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode users")
		return
	}

	public := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	utils.RespondWithJSON(w, http.StatusOK, public)
}

// SetUserActive activates or deactivates any account.
func SetUserActive(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		IsActive *bool `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.IsActive == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "isActive is required")
		return
	}

	res, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": ps.ByName("userId")},
		bson.M{"$set": bson.M{"isActive": *input.IsActive, "updatedAt": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"userId":   ps.ByName("userId"),
		"isActive": *input.IsActive,
	})
}

// PlatformStats returns headline counts for the admin dashboard.
func PlatformStats(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	users, _ := db.UserCollection.CountDocuments(ctx, bson.M{})
	clients, _ := db.UserCollection.CountDocuments(ctx, bson.M{"role": models.RoleClient})
	staff, _ := db.UserCollection.CountDocuments(ctx, bson.M{"role": bson.M{"$in": models.StaffRoles}})
	salons, _ := db.SalonCollection.CountDocuments(ctx, bson.M{})
	verified, _ := db.SalonCollection.CountDocuments(ctx, bson.M{"verified": true})
	bookings, _ := db.BookingCollection.CountDocuments(ctx, bson.M{})
	completed, _ := db.BookingCollection.CountDocuments(ctx, bson.M{"status": models.BookingCompleted})
	walkIns, _ := db.WalkInCollection.CountDocuments(ctx, bson.M{})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"users":             users,
		"clients":           clients,
		"staff":             staff,
		"salons":            salons,
		"verifiedSalons":    verified,
		"pendingSalons":     salons - verified,
		"bookings":          bookings,
		"completedBookings": completed,
		"walkIns":           walkIns,
	})
}

// RevenueReport aggregates completed transaction volume per salon over a
// date range (?from=&to=, default the last 30 days).
func RevenueReport(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if q := r.URL.Query().Get("from"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		from = t
	}
	if q := r.URL.Query().Get("to"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		to = t
	}
	fromStart, _ := utils.DayBounds(from)
	_, toEnd := utils.DayBounds(to)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"status":    models.TxnCompleted,
			"timestamp": bson.M{"$gte": fromStart, "$lte": toEnd},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":    "$salonId",
			"volume": bson.M{"$sum": "$amount"},
			"count":  bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"volume": -1}}},
	}

	cur, err := db.TransactionCollection.Aggregate(r.Context(), pipeline)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to aggregate revenue")
		return
	}
	rows := []bson.M{}
	if err := cur.All(r.Context(), &rows); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode revenue report")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"from":   fromStart,
		"to":     toEnd,
		"salons": rows,
	})
}
