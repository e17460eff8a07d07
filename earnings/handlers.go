package earnings

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hawurwanda/db"
	"hawurwanda/models"
	"hawurwanda/policy"
	"hawurwanda/utils"
)

// parseDate accepts YYYY-MM-DD; an empty value means today.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Now(), true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func loadStaff(ctx context.Context, staffID string) (*models.User, error) {
	var staff models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": staffID}).Decode(&staff)
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

// GetMyEarnings returns the authenticated staff member's summary for one day
// (?date=YYYY-MM-DD, default today). If no document exists yet the summary is
// computed on the fly, so a barber checking mid-shift sees live numbers.
func GetMyEarnings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)
	if !actor.IsStaff() {
		utils.RespondWithError(w, http.StatusForbidden, "Only staff members have earnings")
		return
	}

	day, ok := parseDate(r.URL.Query().Get("date"))
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	summary, err := Recompute(r.Context(), actor.UserID, actor.SalonID, day)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute earnings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, summary)
}

// GetStaffSummary returns stored daily summaries for one staff member over a
// date range (?from=&to=, default the last 30 days), newest first, plus range
// totals. Visible to the staff member, their salon owner, and admins.
func GetStaffSummary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)
	staffID := ps.ByName("staffId")

	staff, err := loadStaff(r.Context(), staffID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Staff member not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load staff member")
		return
	}
	if !policy.CanViewStaffEarnings(actor, *staff) {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to view these earnings")
		return
	}

	to, ok := parseDate(r.URL.Query().Get("to"))
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
		return
	}
	from, ok := parseDate(r.URL.Query().Get("from"))
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	if r.URL.Query().Get("from") == "" {
		from = to.AddDate(0, 0, -30)
	}
	fromStart, _ := utils.DayBounds(from)
	_, toEnd := utils.DayBounds(to)

	cur, err := db.StaffEarningsCollection.Find(r.Context(),
		bson.M{"staffId": staffID, "date": bson.M{"$gte": fromStart, "$lte": toEnd}},
		options.Find().SetSort(bson.M{"date": -1}),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch earnings")
		return
	}
	days := []models.StaffEarnings{}
	if err := cur.All(r.Context(), &days); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode earnings")
		return
	}

	var total, bookingTotal, walkInTotal float64
	for _, d := range days {
		total += d.TotalEarnings
		bookingTotal += d.BookingEarnings
		walkInTotal += d.WalkInEarnings
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"staffId":         staffID,
		"from":            fromStart,
		"to":              toEnd,
		"totalEarnings":   total,
		"bookingEarnings": bookingTotal,
		"walkInEarnings":  walkInTotal,
		"days":            days,
	})
}

// UpdateStaffEarnings forces a recompute of one staff member's summary for a
// day (?date=). Owners use it after correcting a walk-in or payment by hand.
func UpdateStaffEarnings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)
	staffID := ps.ByName("staffId")

	staff, err := loadStaff(r.Context(), staffID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Staff member not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load staff member")
		return
	}
	if !policy.CanViewStaffEarnings(actor, *staff) {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to update these earnings")
		return
	}

	day, ok := parseDate(r.URL.Query().Get("date"))
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	summary, err := Recompute(r.Context(), staff.UserID, staff.SalonID, day)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to recompute earnings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, summary)
}

// GetSalonEarnings returns every staff member's summary for one day across
// the actor's salon. Owners and managers only.
func GetSalonEarnings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)
	if actor.Role != models.RoleOwner && actor.Role != models.RoleManager && !actor.IsAdmin() {
		utils.RespondWithError(w, http.StatusForbidden, "Only salon owners can view salon earnings")
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

	day, ok := parseDate(r.URL.Query().Get("date"))
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}
	start, _ := utils.DayBounds(day)

	cur, err := db.StaffEarningsCollection.Find(r.Context(),
		bson.M{"salonId": salonID, "date": start},
		options.Find().SetSort(bson.M{"totalEarnings": -1}),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch salon earnings")
		return
	}
	staff := []models.StaffEarnings{}
	if err := cur.All(r.Context(), &staff); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode salon earnings")
		return
	}

	var total float64
	for _, s := range staff {
		total += s.TotalEarnings
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"salonId":       salonID,
		"date":          start,
		"totalEarnings": total,
		"staff":         staff,
	})
}
