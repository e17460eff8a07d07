package salons

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hawurwanda/db"
	"hawurwanda/models"
	"hawurwanda/utils"
)

type serviceInput struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           float64  `json:"price"`
	Category        string   `json:"category"`
	TargetAudience  []string `json:"targetAudience"`
}

// CreateService adds a service to the salon's catalogue.
func CreateService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	salon, ok := loadOwnedSalon(w, r, ps)
	if !ok {
		return
	}

	var input serviceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" || input.Price <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Title and a positive price are required")
		return
	}
	if input.Category != "" && !validCategory(input.Category) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown service category: "+input.Category)
		return
	}
	if input.DurationMinutes <= 0 {
		input.DurationMinutes = 30
	}

	now := time.Now()
	service := models.Service{
		ServiceID:       "svc-" + utils.GetUUID(),
		SalonID:         salon.SalonID,
		Title:           input.Title,
		Description:     input.Description,
		DurationMinutes: input.DurationMinutes,
		Price:           input.Price,
		Category:        input.Category,
		TargetAudience:  input.TargetAudience,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := db.ServiceCollection.InsertOne(r.Context(), service); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create service")
		return
	}

	_, _ = db.SalonCollection.UpdateOne(r.Context(),
		bson.M{"salonid": salon.SalonID},
		bson.M{"$addToSet": bson.M{"services": service.ServiceID}})

	utils.RespondWithJSON(w, http.StatusCreated, service)
}

// UpdateService edits a catalogue entry. Price changes apply to future
// bookings only; existing bookings keep the amount captured at creation.
func UpdateService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	salon, ok := loadOwnedSalon(w, r, ps)
	if !ok {
		return
	}

	var input serviceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if strings.TrimSpace(input.Title) != "" {
		set["title"] = strings.TrimSpace(input.Title)
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if input.Price > 0 {
		set["price"] = input.Price
	}
	if input.DurationMinutes > 0 {
		set["durationMinutes"] = input.DurationMinutes
	}
	if input.Category != "" {
		if !validCategory(input.Category) {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown service category: "+input.Category)
			return
		}
		set["category"] = input.Category
	}
	if input.TargetAudience != nil {
		set["targetAudience"] = input.TargetAudience
	}

	res := db.ServiceCollection.FindOneAndUpdate(r.Context(),
		bson.M{"serviceid": ps.ByName("serviceId"), "salonId": salon.SalonID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Service
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Service not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DeactivateService hides a service from booking without deleting it, so
// past bookings and earnings lines keep resolving its title and price.
func DeactivateService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	salon, ok := loadOwnedSalon(w, r, ps)
	if !ok {
		return
	}

	res, err := db.ServiceCollection.UpdateOne(r.Context(),
		bson.M{"serviceid": ps.ByName("serviceId"), "salonId": salon.SalonID},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to deactivate service")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Service not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"deactivated": ps.ByName("serviceId")})
}
