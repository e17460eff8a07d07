// Package salons covers the public salon directory and owner-side salon
// management: registration, profile edits, gallery and service catalogue.
package salons

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
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

// ListSalons is the public directory: verified salons only, filterable by
// province, district and service category.
func ListSalons(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	filter := bson.M{"verified": true}
	if p := r.URL.Query().Get("province"); p != "" {
		filter["province"] = p
	}
	if d := r.URL.Query().Get("district"); d != "" {
		filter["district"] = d
	}
	if c := r.URL.Query().Get("category"); c != "" {
		filter["serviceCategories"] = c
	}
	if q := r.URL.Query().Get("q"); q != "" {
		filter["name"] = bson.M{"$regex": q, "$options": "i"}
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	cur, err := db.SalonCollection.Find(r.Context(), filter,
		options.Find().SetSort(bson.M{"name": 1}).SetSkip(skip).SetLimit(limit))
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

// GetSalon returns one salon's public profile with its active services.
func GetSalon(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var salon models.Salon
	if err := db.SalonCollection.FindOne(r.Context(), bson.M{"salonid": ps.ByName("salonId")}).Decode(&salon); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Salon not found")
		return
	}

	cur, err := db.ServiceCollection.Find(r.Context(),
		bson.M{"salonId": salon.SalonID, "isActive": true},
		options.Find().SetSort(bson.M{"category": 1, "title": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch services")
		return
	}
	services := []models.Service{}
	if err := cur.All(r.Context(), &services); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode services")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"salon":    salon,
		"services": services,
	})
}

type createSalonInput struct {
	Name              string                       `json:"name"`
	Address           string                       `json:"address"`
	Province          string                       `json:"province"`
	District          string                       `json:"district"`
	Sector            string                       `json:"sector"`
	Latitude          float64                      `json:"latitude"`
	Longitude         float64                      `json:"longitude"`
	OwnerIDNumber     string                       `json:"ownerIdNumber"`
	OwnerContactPhone string                       `json:"ownerContactPhone"`
	OwnerContactEmail string                       `json:"ownerContactEmail"`
	NumberOfEmployees int                          `json:"numberOfEmployees"`
	ServiceCategories []string                     `json:"serviceCategories"`
	CustomServices    string                       `json:"customServices"`
	Description       string                       `json:"description"`
	Phone             string                       `json:"phone"`
	Email             string                       `json:"email"`
	WorkingHours      map[string]models.WorkingDay `json:"workingHours"`
}

// CreateSalon registers a new salon, unverified, and promotes the caller to
// owner. An admin must verify it before it appears in the public directory.
func CreateSalon(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)

	var input createSalonInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" || input.Province == "" || input.District == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name, province and district are required")
		return
	}
	if input.OwnerContactPhone != "" && !utils.ValidRwandanPhone(input.OwnerContactPhone) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid Rwandan phone number")
		return
	}
	for _, c := range input.ServiceCategories {
		if !validCategory(c) {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown service category: "+c)
			return
		}
	}

	existing, err := db.SalonCollection.CountDocuments(r.Context(), bson.M{"ownerId": actor.UserID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check existing salons")
		return
	}
	if existing > 0 {
		utils.RespondWithError(w, http.StatusConflict, "You already own a salon")
		return
	}

	now := time.Now()
	salon := models.Salon{
		SalonID:           "sal-" + utils.GetUUID(),
		Name:              input.Name,
		Address:           input.Address,
		Province:          input.Province,
		District:          input.District,
		Sector:            input.Sector,
		Latitude:          input.Latitude,
		Longitude:         input.Longitude,
		OwnerID:           actor.UserID,
		OwnerIDNumber:     input.OwnerIDNumber,
		OwnerContactPhone: input.OwnerContactPhone,
		OwnerContactEmail: input.OwnerContactEmail,
		NumberOfEmployees: input.NumberOfEmployees,
		ServiceCategories: input.ServiceCategories,
		CustomServices:    input.CustomServices,
		Description:       input.Description,
		Phone:             input.Phone,
		Email:             input.Email,
		WorkingHours:      input.WorkingHours,
		Verified:          false,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err := db.SalonCollection.InsertOne(r.Context(), salon); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register salon")
		return
	}

	// The registering user becomes the salon's owner.
	_, err = db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": actor.UserID},
		bson.M{"$set": bson.M{"role": models.RoleOwner, "salonId": salon.SalonID, "updatedAt": now}})
	if err != nil {
		log.Printf("owner promotion failed for salon %s: %v", salon.SalonID, err)
	}

	notifyAdmins(r, models.NotifSalonPending, models.NotificationPayload{
		SalonID: salon.SalonID,
		Title:   "Salon pending verification",
		Message: salon.Name + " is waiting for verification",
	})

	utils.RespondWithJSON(w, http.StatusCreated, salon)
}

func notifyAdmins(r *http.Request, ntype string, payload models.NotificationPayload) {
	cur, err := db.UserCollection.Find(r.Context(), bson.M{"role": bson.M{"$in": []string{models.RoleAdmin, models.RoleSuperAdmin}}})
	if err != nil {
		log.Printf("admin lookup for notification failed: %v", err)
		return
	}
	var admins []models.User
	if err := cur.All(r.Context(), &admins); err != nil {
		return
	}
	ids := make([]string, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.UserID)
	}
	if len(ids) == 0 {
		return
	}
	if err := notifications.NotifyMany(r.Context(), ntype, payload, ids...); err != nil {
		log.Printf("admin notification failed: %v", err)
	}
}

func validCategory(c string) bool {
	for _, known := range models.ServiceCategories {
		if known == c {
			return true
		}
	}
	return false
}

func loadOwnedSalon(w http.ResponseWriter, r *http.Request, ps httprouter.Params) (*models.Salon, bool) {
	actor := policy.FromRequest(r)
	var salon models.Salon
	if err := db.SalonCollection.FindOne(r.Context(), bson.M{"salonid": ps.ByName("salonId")}).Decode(&salon); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Salon not found")
		return nil, false
	}
	if !policy.CanManageSalon(actor, salon) {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to manage this salon")
		return nil, false
	}
	return &salon, true
}

// UpdateSalon edits salon profile fields. Verification status is admin-only
// and never touched here.
func UpdateSalon(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	salon, ok := loadOwnedSalon(w, r, ps)
	if !ok {
		return
	}

	var input createSalonInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if strings.TrimSpace(input.Name) != "" {
		set["name"] = strings.TrimSpace(input.Name)
	}
	if input.Address != "" {
		set["address"] = input.Address
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if input.Phone != "" {
		set["phone"] = input.Phone
	}
	if input.Email != "" {
		set["email"] = input.Email
	}
	if input.WorkingHours != nil {
		set["workingHours"] = input.WorkingHours
	}
	if input.ServiceCategories != nil {
		for _, c := range input.ServiceCategories {
			if !validCategory(c) {
				utils.RespondWithError(w, http.StatusBadRequest, "Unknown service category: "+c)
				return
			}
		}
		set["serviceCategories"] = input.ServiceCategories
	}

	res := db.SalonCollection.FindOneAndUpdate(r.Context(),
		bson.M{"salonid": salon.SalonID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Salon
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update salon")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// UploadGalleryImage adds a photo (with thumbnail) to the salon gallery.
func UploadGalleryImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	salon, ok := loadOwnedSalon(w, r, ps)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	path, err := utils.SaveImageWithThumb(file, header, "uploads/salons/"+salon.SalonID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Could not save image: "+err.Error())
		return
	}

	_, err = db.SalonCollection.UpdateOne(r.Context(),
		bson.M{"salonid": salon.SalonID},
		bson.M{
			"$push": bson.M{"gallery": path},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update gallery")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"image": path})
}
