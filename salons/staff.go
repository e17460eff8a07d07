package salons

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"hawurwanda/db"
	"hawurwanda/emailer"
	"hawurwanda/models"
	"hawurwanda/utils"
)

// ListStaff returns a salon's staff roster. Public, so clients can pick a
// barber; only active staff appear.
func ListStaff(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cur, err := db.UserCollection.Find(r.Context(), bson.M{
		"salonId":  ps.ByName("salonId"),
		"role":     bson.M{"$in": models.StaffRoles},
		"isActive": true,
	}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch staff")
		return
	}
	var staff []models.User
	if err := cur.All(r.Context(), &staff); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode staff")
		return
	}

	public := make([]models.PublicUser, 0, len(staff))
	for _, s := range staff {
		public = append(public, s.Public())
	}
	utils.RespondWithJSON(w, http.StatusOK, public)
}

type staffInput struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Password      string   `json:"password"`
	Role          string   `json:"role"`
	StaffCategory string   `json:"staffCategory"`
	Specialties   []string `json:"specialties"`
}

// CreateStaff lets the owner add a staff member to their salon. Staff
// accounts are created here or by admins, never by self-registration.
func CreateStaff(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	salon, ok := loadOwnedSalon(w, r, ps)
	if !ok {
		return
	}

	var input staffInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and password are required")
		return
	}
	if input.Email == "" && input.Phone == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email or phone number is required")
		return
	}
	if input.Phone != "" && !utils.ValidRwandanPhone(input.Phone) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid Rwandan phone number")
		return
	}
	if !models.IsStaffRole(input.Role) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid staff role")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to process password")
		return
	}

	now := time.Now()
	staff := models.User{
		UserID:        "u-" + utils.GetUUID(),
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		PasswordHash:  string(hash),
		Role:          input.Role,
		SalonID:       salon.SalonID,
		StaffCategory: input.StaffCategory,
		Specialties:   input.Specialties,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := db.UserCollection.InsertOne(r.Context(), staff); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "An account with this email or phone already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create staff account")
		return
	}

	_, _ = db.SalonCollection.UpdateOne(r.Context(),
		bson.M{"salonid": salon.SalonID},
		bson.M{"$addToSet": bson.M{"barbers": staff.UserID}})

	if staff.Email != "" {
		emailer.SendWelcome(staff.Email, staff.Name)
	}

	utils.RespondWithJSON(w, http.StatusCreated, staff.Public())
}

func loadSalonStaff(w http.ResponseWriter, r *http.Request, ps httprouter.Params, salonID string) (*models.User, bool) {
	var staff models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": ps.ByName("staffId"), "salonId": salonID}).Decode(&staff)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Staff member not found in this salon")
		return nil, false
	}
	return &staff, true
}

// AssignServices sets which catalogue services a staff member performs.
func AssignServices(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	salon, ok := loadOwnedSalon(w, r, ps)
	if !ok {
		return
	}
	staff, ok := loadSalonStaff(w, r, ps, salon.SalonID)
	if !ok {
		return
	}

	var input struct {
		ServiceIDs []string `json:"serviceIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	count, err := db.ServiceCollection.CountDocuments(r.Context(),
		bson.M{"serviceid": bson.M{"$in": input.ServiceIDs}, "salonId": salon.SalonID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify services")
		return
	}
	if int(count) != len(input.ServiceIDs) {
		utils.RespondWithError(w, http.StatusBadRequest, "All services must belong to this salon")
		return
	}

	_, err = db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": staff.UserID},
		bson.M{"$set": bson.M{"assignedServices": input.ServiceIDs, "updatedAt": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to assign services")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"staffId":          staff.UserID,
		"assignedServices": input.ServiceIDs,
	})
}

// SetStaffActive activates or deactivates a staff member. Deactivated staff
// cannot log in and disappear from the public roster; their history stays.
func SetStaffActive(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	salon, ok := loadOwnedSalon(w, r, ps)
	if !ok {
		return
	}
	staff, ok := loadSalonStaff(w, r, ps, salon.SalonID)
	if !ok {
		return
	}

	var input struct {
		IsActive *bool `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.IsActive == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "isActive is required")
		return
	}

	_, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": staff.UserID},
		bson.M{"$set": bson.M{"isActive": *input.IsActive, "updatedAt": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update staff member")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"staffId":  staff.UserID,
		"isActive": *input.IsActive,
	})
}
