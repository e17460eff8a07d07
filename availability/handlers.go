// Package availability manages staff weekly schedules and manual slot
// overrides.
package availability

import (
	"encoding/json"
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

var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

func validSchedule(weekly map[string][]models.TimeWindow) string {
	for day, windows := range weekly {
		if !weekdays[day] {
			return "Unknown weekday: " + day
		}
		for _, win := range windows {
			start, err1 := time.Parse("15:04", win.Start)
			end, err2 := time.Parse("15:04", win.End)
			if err1 != nil || err2 != nil {
				return "Window times must be HH:MM"
			}
			if !start.Before(end) {
				return "Window start must be before end"
			}
		}
	}
	return ""
}

// GetAvailability returns a staff member's weekly schedule. Public so clients
// can see a barber's working pattern before picking a day.
func GetAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var avail models.Availability
	err := db.AvailabilityCollection.FindOne(r.Context(), bson.M{"barberId": ps.ByName("barberId")}).Decode(&avail)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithConflict(w, http.StatusNotFound, "NO_AVAILABILITY_SET", "This staff member has not set up availability")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch availability")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, avail)
}

func authorizeForBarber(r *http.Request, barberID string) (int, string) {
	actor := policy.FromRequest(r)

	var barber models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": barberID}).Decode(&barber)
	if err != nil {
		return http.StatusNotFound, "Staff member not found"
	}
	if !models.IsStaffRole(barber.Role) {
		return http.StatusBadRequest, "User is not a staff member"
	}
	if !policy.CanManageAvailability(actor, barber) {
		return http.StatusForbidden, "Not allowed to manage this schedule"
	}
	return 0, ""
}

type putInput struct {
	SalonID            string                         `json:"salonId"`
	WeeklyAvailability map[string][]models.TimeWindow `json:"weeklyAvailability"`
}

// PutAvailability replaces a staff member's weekly schedule. Upserts, so the
// first save and every later edit go through the same path.
func PutAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	barberID := ps.ByName("barberId")
	if code, msg := authorizeForBarber(r, barberID); code != 0 {
		utils.RespondWithError(w, code, msg)
		return
	}

	var input putInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if len(input.WeeklyAvailability) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "weeklyAvailability is required")
		return
	}
	if msg := validSchedule(input.WeeklyAvailability); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now()
	res := db.AvailabilityCollection.FindOneAndUpdate(r.Context(),
		bson.M{"barberId": barberID},
		bson.M{
			"$set": bson.M{
				"salonId":            input.SalonID,
				"weeklyAvailability": input.WeeklyAvailability,
				"updatedAt":          now,
			},
			"$setOnInsert": bson.M{
				"barberId":             barberID,
				"manuallyBlockedSlots": []time.Time{},
				"addedSlots":           []time.Time{},
				"createdAt":            now,
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	var avail models.Availability
	if err := res.Decode(&avail); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save availability")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, avail)
}

type slotInput struct {
	Slot string `json:"slot"`
}

func parseSlot(r *http.Request) (time.Time, bool) {
	var input slotInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, input.Slot)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// BlockSlot records a manual block on one concrete slot time.
func BlockSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	barberID := ps.ByName("barberId")
	if code, msg := authorizeForBarber(r, barberID); code != 0 {
		utils.RespondWithError(w, code, msg)
		return
	}
	slot, ok := parseSlot(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "slot must be an RFC3339 timestamp")
		return
	}

	res, err := db.AvailabilityCollection.UpdateOne(r.Context(),
		bson.M{"barberId": barberID},
		bson.M{
			"$addToSet": bson.M{"manuallyBlockedSlots": slot},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to block slot")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithConflict(w, http.StatusNotFound, "NO_AVAILABILITY_SET", "Set up a weekly schedule first")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"blocked": slot})
}

// UnblockSlot removes a manual block.
func UnblockSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	barberID := ps.ByName("barberId")
	if code, msg := authorizeForBarber(r, barberID); code != 0 {
		utils.RespondWithError(w, code, msg)
		return
	}
	slot, ok := parseSlot(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "slot must be an RFC3339 timestamp")
		return
	}

	_, err := db.AvailabilityCollection.UpdateOne(r.Context(),
		bson.M{"barberId": barberID},
		bson.M{
			"$pull": bson.M{"manuallyBlockedSlots": slot},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to unblock slot")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"unblocked": slot})
}
