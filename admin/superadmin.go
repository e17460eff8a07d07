package admin

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"hawurwanda/db"
	"hawurwanda/models"
	"hawurwanda/utils"
)

// SetUserRole changes any account's role. Superadmin only; it is the sole
// path to granting admin rights.
func SetUserRole(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Role    string `json:"role"`
		SalonID string `json:"salonId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	switch {
	case input.Role == models.RoleClient || input.Role == models.RoleOwner ||
		models.IsStaffRole(input.Role) || models.IsAdminRole(input.Role):
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown role")
		return
	}
	if (models.IsStaffRole(input.Role) || input.Role == models.RoleOwner) && input.SalonID == "" {
		utils.RespondWithConflict(w, http.StatusBadRequest, "NO_SALON_ID", "Staff and owner roles require a salonId")
		return
	}

	set := bson.M{"role": input.Role, "updatedAt": time.Now()}
	if input.SalonID != "" {
		set["salonId"] = input.SalonID
	}

	res, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": ps.ByName("userId")},
		bson.M{"$set": set})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update role")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"userId": ps.ByName("userId"),
		"role":   input.Role,
	})
}

// DeleteUser removes an account entirely. Deactivation is the normal path;
// deletion exists for data removal requests. Bookings and transactions keep
// their string ids, so history does not dangle into decode errors.
func DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := db.UserCollection.DeleteOne(r.Context(), bson.M{"userid": ps.ByName("userId")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"deleted": ps.ByName("userId")})
}

// BulkSetUsersActive activates or deactivates many accounts in one call,
// e.g. suspending every account of a closed salon.
func BulkSetUsersActive(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		UserIDs  []string `json:"userIds"`
		IsActive *bool    `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.IsActive == nil || len(input.UserIDs) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "userIds and isActive are required")
		return
	}

	res, err := db.UserCollection.UpdateMany(r.Context(),
		bson.M{"userid": bson.M{"$in": input.UserIDs}},
		bson.M{"$set": bson.M{"isActive": *input.IsActive, "updatedAt": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update users")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"matched":  res.MatchedCount,
		"modified": res.ModifiedCount,
		"isActive": *input.IsActive,
	})
}

// DeleteSalon removes a salon and detaches its staff. Superadmin only.
func DeleteSalon(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	salonID := ps.ByName("salonId")

	res, err := db.SalonCollection.DeleteOne(r.Context(), bson.M{"salonid": salonID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete salon")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Salon not found")
		return
	}

	_, _ = db.UserCollection.UpdateMany(r.Context(),
		bson.M{"salonId": salonID},
		bson.M{"$set": bson.M{"salonId": "", "updatedAt": time.Now()}})
	_, _ = db.ServiceCollection.UpdateMany(r.Context(),
		bson.M{"salonId": salonID},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"deleted": salonID})
}
